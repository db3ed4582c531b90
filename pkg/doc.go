// Package pkg provides the core libraries for Moodboard.
//
// # Overview
//
// Moodboard lays out a person's interests as weighted image clusters on a
// fixed board: every item is sized by its weight, pulled toward the center of
// the board and pushed away from anything it overlaps. Each saved arrangement
// becomes a snapshot on the board's timeline, which can be scrubbed or played
// back one snapshot per tick.
//
// # Architecture
//
// The typical data flow through Moodboard:
//
//	Items (JSON file, API request or latest snapshot)
//	         ↓
//	    [board] package (normalize, size by weight)
//	         ↓
//	    [board/layout] package (overlap-free positions)
//	         ↓
//	    [arrange] package (cache, save snapshot)
//	         ↓
//	    [timeline] + [storage] (snapshot history, persistence)
//	         ↓
//	    [playback] / [render] (replay, SVG/PNG output)
//
// # Quick Start
//
// Arrange a board and save the result:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/moodboard/pkg/arrange"
//	    "github.com/matzehuels/moodboard/pkg/board"
//	    "github.com/matzehuels/moodboard/pkg/board/layout"
//	    "github.com/matzehuels/moodboard/pkg/storage"
//	)
//
//	store, _ := storage.Open(ctx, storage.Options{Backend: storage.BackendMemory})
//	orch := arrange.New(arrange.Options{Store: store})
//
//	items, _ := board.ReadItemsFile("items.json")
//	b := arrange.NewBoard("default", layout.Frame{Width: 1600, Height: 1200}, items)
//	res, _ := orch.Arrange(ctx, b, arrange.Save)
//
// # Main Packages
//
// [board] - Items, sizing from weights, and JSON item files.
//
// [board/layout] - The iterative overlap solver. Deterministic for a fixed
// seed.
//
// [timeline] - Append-only snapshot history with a navigation pointer and a
// live position. Includes the JSON snapshot codec.
//
// [playback] - A controller that advances the timeline on a scheduler and
// returns to the live board after the last snapshot.
//
// [arrange] - Boards and the orchestrator that ties solving, caching and
// saving together.
//
// [storage] - Snapshot persistence: memory, file, Redis and MongoDB backends.
//
// [cache] - Layout result caching with file, Redis and null backends.
//
// [render] - Frames and output sinks: [render/svg] draws boards directly,
// [render/dot] renders through Graphviz.
//
// [api] - The HTTP server behind "moodboard serve".
//
// [config], [errors], [observability], [buildinfo] - Shared settings,
// structured errors, hooks and version information.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/board/layout/...       # Specific package
//	go test -run Example                 # Examples only
//
// [board]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/board
// [board/layout]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/board/layout
// [timeline]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/timeline
// [playback]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/playback
// [arrange]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/arrange
// [storage]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/storage
// [cache]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/render/svg
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/render/dot
// [api]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/api
// [config]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/moodboard/pkg/buildinfo
package pkg
