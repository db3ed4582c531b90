// Package layout places moodboard items without overlap, biased toward the
// visual center of the board.
//
// # Algorithm
//
// [Solve] runs a small force-directed simulation over one rectangle per item:
//
//  1. Every rectangle starts centered in the frame with a random offset of up
//     to [Options.Jitter] pixels per axis, so identical boxes do not stack.
//  2. For a fixed number of iterations:
//     gravity pulls each rectangle's center toward the frame center,
//     every overlapping pair (boxes inflated by [Options.Spacing]) is pushed
//     apart along the line between their centers with equal and opposite
//     velocity deltas, and velocities are integrated and damped.
//  3. Final positions are clamped into the frame below the top margin.
//
// The cost is O(n²) per iteration with a fixed iteration count, which is fine
// for boards of tens of items. The solver is a heuristic: if the frame is too
// small for all boxes, overlap is reduced but not eliminated.
//
// # Determinism
//
// The initial jitter is the only source of randomness. Pass a seeded
// [math/rand/v2.Rand] in [Options.Rand] (or set [Options.Seed]) to reproduce a
// layout exactly:
//
//	pos := layout.Solve(items, layout.Frame{Width: 1200, Height: 900}, &layout.Options{Seed: 42})
//
// # Boxes
//
// [Boxes] combines solved positions with item sizes into [Box] values that
// renderers can draw directly.
package layout
