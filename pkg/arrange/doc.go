// Package arrange is the use-case layer of a moodboard: it owns each board's
// live items and timeline and runs the layout solver over them.
//
// # Boards
//
// A [Board] is the single owned state object for one moodboard: the live
// (editable) items, the canvas, and the snapshot timeline. All access goes
// through its lock, so a [playback.Controller], an HTTP handler and a CLI
// command can share one board safely. *Board satisfies
// [playback.Timeline].
//
// # Arranging
//
// [Orchestrator.ArrangeNow] sizes items, solves positions and merges them
// back into the items. It only fails for an invalid canvas; malformed item
// fields are defaulted. Snapshots are appended only on an explicit save:
//
//	o := arrange.New(arrange.Options{Store: store, Logger: logger})
//	res, err := o.Arrange(ctx, b, arrange.Save)
//
// Solved layouts are cached by content when a [cache.Cache] is configured.
//
// [playback.Controller]: github.com/matzehuels/moodboard/pkg/playback.Controller
// [playback.Timeline]: github.com/matzehuels/moodboard/pkg/playback.Timeline
// [cache.Cache]: github.com/matzehuels/moodboard/pkg/cache.Cache
package arrange
