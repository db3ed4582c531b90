// Package timeline stores the history of board arrangements.
//
// A [Store] is an append-only log of immutable [Snapshot] values plus a
// navigation pointer. The pointer ranges over [-1, Len()-1]; the value
// [Live] (-1) addresses the current, still-editable board rather than any
// stored snapshot.
//
// # Copy Semantics
//
// Snapshots are deep copies of the board at the time they were taken.
// Every snapshot handed out by [Store.Current], [Store.JumpTo] or
// [Store.Snapshots] is a fresh copy, so callers may mutate what they get
// without corrupting history.
//
// # Concurrency
//
// Store is not safe for concurrent use. Hosts that share a store across
// goroutines serialize access themselves (the HTTP API holds one mutex per
// board).
//
// # Serialization
//
// [Encode] and [Decode] read and write the persisted list:
//
//	[{"timestamp": 1700000000000, "positions": {"a": {"x": 1, "y": 2}},
//	  "styles": {"a": "opacity:0.8"}, "items": [...]}]
package timeline
