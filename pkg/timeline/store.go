package timeline

import (
	"github.com/matzehuels/moodboard/pkg/errors"
)

// Live is the pointer value that addresses the current, uncommitted board.
const Live = -1

// View is what the pointer references: either the live board (Index ==
// Live, Snapshot zero) or a copy of a stored snapshot.
type View struct {
	Index    int
	Snapshot Snapshot
}

// IsLive reports whether the view addresses the live board.
func (v View) IsLive() bool { return v.Index == Live }

// Store is an append-only snapshot log with a navigation pointer.
// The zero value is an empty store pointing at the live board.
type Store struct {
	snapshots []Snapshot
	pointer   int
	init      bool
}

// NewStore returns an empty store pointing at the live board.
func NewStore() *Store {
	return &Store{pointer: Live, init: true}
}

func (s *Store) ensureInit() {
	if !s.init {
		s.pointer = Live
		s.init = true
	}
}

// Append stores a copy of snap at the end of the log and returns its index.
// The pointer does not move.
func (s *Store) Append(snap Snapshot) int {
	s.ensureInit()
	s.snapshots = append(s.snapshots, snap.Clone())
	return len(s.snapshots) - 1
}

// JumpTo moves the pointer to index and returns the view there. Valid
// indexes are [Live, Len()-1]; anything else returns an OUT_OF_RANGE error
// and leaves the pointer unchanged.
func (s *Store) JumpTo(index int) (View, error) {
	s.ensureInit()
	if !s.InRange(index) {
		return View{}, errors.OutOfRange(index, len(s.snapshots))
	}
	s.pointer = index
	return s.view(index), nil
}

// Current returns the view the pointer references.
func (s *Store) Current() View {
	s.ensureInit()
	return s.view(s.pointer)
}

// At returns a copy of the snapshot at index without moving the pointer.
func (s *Store) At(index int) (Snapshot, error) {
	if index < 0 || index >= len(s.snapshots) {
		return Snapshot{}, errors.OutOfRange(index, len(s.snapshots))
	}
	return s.snapshots[index].Clone(), nil
}

// Load replaces the whole log with copies of snaps and resets the pointer
// to the live board.
func (s *Store) Load(snaps []Snapshot) {
	s.snapshots = make([]Snapshot, len(snaps))
	for i, snap := range snaps {
		s.snapshots[i] = snap.Clone()
	}
	s.pointer = Live
	s.init = true
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int { return len(s.snapshots) }

// Pointer returns the current pointer value.
func (s *Store) Pointer() int {
	s.ensureInit()
	return s.pointer
}

// InRange reports whether index is a valid pointer value.
func (s *Store) InRange(index int) bool {
	return index >= Live && index < len(s.snapshots)
}

// Snapshots returns copies of every stored snapshot in order.
func (s *Store) Snapshots() []Snapshot {
	out := make([]Snapshot, len(s.snapshots))
	for i, snap := range s.snapshots {
		out[i] = snap.Clone()
	}
	return out
}

func (s *Store) view(index int) View {
	if index == Live {
		return View{Index: Live}
	}
	return View{Index: index, Snapshot: s.snapshots[index].Clone()}
}
