// Package reactive provides the single-threaded dependency-tracking cells
// that every widget behavior is built from.
//
// Three kinds of cells exist:
//
//   - Cell: a writable source value.
//   - Derived: a read-only value computed from other cells. Dependencies are
//     recorded automatically while the computation runs and the value is
//     recomputed lazily on the next read after any dependency changes.
//   - Linked: a derived value that may also be written. A write overrides the
//     computed value until any upstream dependency changes, at which point the
//     cell goes back to tracking its computation.
//
// Change propagation is push-dirty/pull-value: a write marks downstream
// computations as possibly stale, and each stale computation re-validates its
// dependencies' versions when read. A computation that reads itself,
// directly or through other computations, panics with *CycleError.
//
// Cells are not safe for concurrent use. All reads and writes for one graph
// must happen on a single goroutine.
package reactive
