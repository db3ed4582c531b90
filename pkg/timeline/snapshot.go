package timeline

import (
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/moodboard/pkg/board"
)

// Snapshot is an immutable capture of the board at one moment.
type Snapshot struct {
	Timestamp int64                     `json:"timestamp"` // unix milliseconds
	Positions map[string]board.Position `json:"positions"`
	Styles    map[string]string         `json:"styles"`
	Items     []board.Item              `json:"items"`
}

// NewSnapshot captures items at time at. Positions and styles are derived
// from the items; the inputs are copied, never retained.
func NewSnapshot(items []board.Item, at time.Time) Snapshot {
	return Snapshot{
		Timestamp: at.UnixMilli(),
		Positions: board.Positions(items),
		Styles:    board.Styles(items),
		Items:     slices.Clone(items),
	}
}

// Clone returns a deep copy of s. Nil maps and slices become empty ones so
// that copies always encode to the same JSON shape.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Timestamp: s.Timestamp,
		Positions: maps.Clone(s.Positions),
		Styles:    maps.Clone(s.Styles),
		Items:     slices.Clone(s.Items),
	}
	if out.Positions == nil {
		out.Positions = map[string]board.Position{}
	}
	if out.Styles == nil {
		out.Styles = map[string]string{}
	}
	if out.Items == nil {
		out.Items = []board.Item{}
	}
	return out
}

// Time returns the snapshot timestamp as a time.Time.
func (s Snapshot) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}
