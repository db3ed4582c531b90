// Package playback replays a board timeline on a fixed cadence.
//
// A [Controller] is a two-state machine (Stopped, Playing) on top of a
// [Timeline]. While playing, every tick advances the timeline pointer by one
// and notifies subscribers with the new view. Running off the end stops
// playback and returns the pointer to the live board, so one Start plays the
// whole history once.
//
// # Scheduling
//
// The controller never sleeps or owns a clock. [Controller.Tick] is a plain
// synchronous step; the periodic trigger comes from a [Scheduler] supplied by
// the host:
//
//   - [TickerScheduler] drives ticks from a time.Ticker goroutine
//   - the terminal player in internal/cli feeds ticks from bubbletea's tea.Tick
//   - tests call Tick directly or use a manual scheduler
//
// At most one trigger is active per controller. Stop cancels it, and a tick
// that was already in flight when Stop ran is discarded.
package playback
