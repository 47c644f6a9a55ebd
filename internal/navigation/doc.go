// Package navigation moves the active item of list and grid composites.
//
// The active item is stored as the element the user last activated
// (activatedElement), not as an index, so it survives reordering. The
// derived activeIndex falls back to the first enabled item when the
// activated element is no longer present, and is -1 for an empty or fully
// disabled collection.
//
// Every navigation operation is a silent no-op when it cannot find a target:
// stepping off the end without wrap, a disabled target with skipping off, or
// a full loop over disabled items with wrap on.
package navigation
