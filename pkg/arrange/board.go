package arrange

import (
	"slices"
	"sync"

	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/board/layout"
	"github.com/matzehuels/moodboard/pkg/render"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

// Board is one moodboard: live items, canvas and timeline behind one lock.
type Board struct {
	id string

	mu     sync.RWMutex
	items  []board.Item
	canvas layout.Frame
	tl     *timeline.Store
}

// NewBoard creates a board with an empty timeline. items are copied.
func NewBoard(id string, canvas layout.Frame, items []board.Item) *Board {
	return &Board{
		id:     id,
		items:  slices.Clone(items),
		canvas: canvas,
		tl:     timeline.NewStore(),
	}
}

// ID returns the board ID.
func (b *Board) ID() string { return b.id }

// Items returns a copy of the live items.
func (b *Board) Items() []board.Item {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.items)
}

// SetItems replaces the live items with a copy of items.
func (b *Board) SetItems(items []board.Item) {
	b.mu.Lock()
	b.items = slices.Clone(items)
	b.mu.Unlock()
}

// Canvas returns the frame the board is laid out in.
func (b *Board) Canvas() layout.Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.canvas
}

// SetCanvas changes the frame used by later arrangements.
func (b *Board) SetCanvas(f layout.Frame) {
	b.mu.Lock()
	b.canvas = f
	b.mu.Unlock()
}

// Len returns the number of snapshots.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tl.Len()
}

// Pointer returns the timeline pointer.
func (b *Board) Pointer() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tl.Pointer()
}

// JumpTo moves the timeline pointer. See [timeline.Store.JumpTo].
func (b *Board) JumpTo(index int) (timeline.View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tl.JumpTo(index)
}

// Current returns the view at the pointer.
func (b *Board) Current() timeline.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tl.Current()
}

// Snapshot returns a copy of the snapshot at index.
func (b *Board) Snapshot(index int) (timeline.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tl.At(index)
}

// Snapshots returns copies of every snapshot.
func (b *Board) Snapshots() []timeline.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tl.Snapshots()
}

// Load replaces the timeline with snaps and points it at the live board.
func (b *Board) Load(snaps []timeline.Snapshot) {
	b.mu.Lock()
	b.tl.Load(snaps)
	b.mu.Unlock()
}

func (b *Board) append(snap timeline.Snapshot) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tl.Append(snap)
}

// Frame resolves a view to something a render sink can draw. The live view
// resolves to the live items.
func (b *Board) Frame(v timeline.View) render.Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if v.IsLive() {
		return render.Frame{
			Index:     timeline.Live,
			Canvas:    b.canvas,
			Items:     slices.Clone(b.items),
			Positions: board.Positions(b.items),
			Styles:    board.Styles(b.items),
		}
	}
	s := v.Snapshot.Clone()
	return render.Frame{
		Index:     v.Index,
		Timestamp: s.Timestamp,
		Canvas:    b.canvas,
		Items:     s.Items,
		Positions: s.Positions,
		Styles:    s.Styles,
	}
}

// CurrentFrame resolves the view at the pointer.
func (b *Board) CurrentFrame() render.Frame {
	return b.Frame(b.Current())
}

// Registry holds boards by ID.
type Registry struct {
	mu     sync.RWMutex
	boards map[string]*Board
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{boards: make(map[string]*Board)}
}

// Get returns the board with id.
func (r *Registry) Get(id string) (*Board, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boards[id]
	return b, ok
}

// Put adds or replaces b.
func (r *Registry) Put(b *Board) {
	r.mu.Lock()
	r.boards[b.ID()] = b
	r.mu.Unlock()
}

// IDs returns the registered board IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.boards))
	for id := range r.boards {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
