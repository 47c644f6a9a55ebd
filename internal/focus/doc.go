// Package focus derives tab order and focus targets for composites and
// keeps keyboard focus inside a composite when the active item disappears.
//
// Two strategies are supported. With roving tabindex the active item itself
// is focusable (tabindex 0) and receives focus. With active descendant the
// container keeps focus (tabindex 0) and names the active item through
// activeDescendantId.
//
// The focus sync function only acts while focus is already inside the
// composite, so updating state never steals focus from elsewhere. Hosts call
// it after every state change.
//
// Focus recapture is deferred: when the active item loses focus, the check
// runs on a Scheduler so the host can finish removing the element first.
package focus
