// Package event routes keyboard, mouse and focus events to behavior
// handlers.
//
// A Router holds an ordered list of rules. Each rule pairs a predicate with a
// handler and carries its own PreventDefault/StopPropagation options. Handle
// collects the matching rules of every composed sub-router (in composition
// order) followed by the router's own rules, then:
//
//   - if any matching rule is an override, the list is cut so the last
//     matching override is first and only the rules after it remain;
//   - every remaining handler runs in order;
//   - a handler that returns false does not count as handling the event;
//   - for every rule that handled the event its options decide whether
//     PreventDefault and StopPropagation are called on the event.
//
// Keyboard and Mouse routers default to preventing and stopping; the generic
// Router defaults to neither.
package event
