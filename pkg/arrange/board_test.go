package arrange

import (
	"testing"
	"time"

	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

func TestBoardCopiesItems(t *testing.T) {
	items := testItems()
	b := NewBoard("b", testCanvas, items)

	items[0].ID = "mutated"
	if b.Items()[0].ID != "ceramics" {
		t.Error("NewBoard retained caller's slice")
	}

	got := b.Items()
	got[0].Weight = 9
	if b.Items()[0].Weight == 9 {
		t.Error("Items returned internal slice")
	}
}

func TestBoardFrame(t *testing.T) {
	b := NewBoard("b", testCanvas, []board.Item{
		{ID: "x", Position: board.Position{X: 1, Y: 2}, Style: "opacity:0.1"},
	})
	snap := timeline.NewSnapshot([]board.Item{{ID: "x", Position: board.Position{X: 5, Y: 6}}}, time.UnixMilli(42))
	b.append(snap)

	live := b.Frame(timeline.View{Index: timeline.Live})
	if live.Index != timeline.Live || live.Positions["x"] != (board.Position{X: 1, Y: 2}) {
		t.Errorf("live frame = %+v", live)
	}
	if live.Styles["x"] != "opacity:0.1" || live.Canvas != testCanvas {
		t.Errorf("live frame styles/canvas = %v/%v", live.Styles, live.Canvas)
	}

	v, err := b.JumpTo(0)
	if err != nil {
		t.Fatal(err)
	}
	f := b.Frame(v)
	if f.Index != 0 || f.Timestamp != 42 || f.Positions["x"] != (board.Position{X: 5, Y: 6}) {
		t.Errorf("snapshot frame = %+v", f)
	}
	if cur := b.CurrentFrame(); cur.Index != 0 {
		t.Errorf("CurrentFrame().Index = %d, want 0", cur.Index)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("a"); ok {
		t.Error("empty registry returned a board")
	}
	r.Put(NewBoard("b", testCanvas, nil))
	r.Put(NewBoard("a", testCanvas, nil))

	if b, ok := r.Get("a"); !ok || b.ID() != "a" {
		t.Errorf("Get(a) = %v, %v", b, ok)
	}
	if ids := r.IDs(); len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs() = %v", ids)
	}
}
