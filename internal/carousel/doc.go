// Package carousel implements the navigation state machine behind the slide
// viewer.
//
// # Overview
//
// An Engine tracks which slide sits at the left edge of the viewport, how many
// slides are visible, and how far each step scrolls. It never draws anything:
// layout percentages and transforms are pushed to a Renderer, and pixel sizes
// are pulled from Metrics on demand.
//
// # Navigation Rules
//
// GoTo is the single state transition. Next and Prev call it with the current
// index plus or minus the effective scroll step.
//
//   - A negative target wraps to the last full window when looping, and is
//     ignored otherwise.
//   - A target past the item count, or any forward move while the visible
//     window already reaches the last slide, wraps to 0 when looping, and is
//     ignored otherwise.
//   - Any other target is accepted: the transform is pushed, the index is
//     updated, and listeners are notified in subscription order.
//
// Out of range targets are routine input (holding the right arrow at the end of
// a deck) and are never reported as errors. Only constructor preconditions
// fail, with ErrInvalidOptions.
//
// # Responsive Layout
//
// When the viewport is narrower than Options.CompactBelow pixels the engine is
// compact: one slide is visible and each step scrolls one slide, regardless of
// Options. The effective values are derived on every call and never stored.
// Crossing the breakpoint re-lays out the carousel and re-notifies listeners
// with the unchanged index; it does not re-run the bound checks.
//
// # Concurrency
//
// Engine is single-threaded. Every call, including listener fan-out, completes
// before it returns. Listeners that navigate from inside a notification are
// re-entering the engine at their own risk.
package carousel
