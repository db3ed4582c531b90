package layout

import (
	"testing"

	"github.com/matzehuels/moodboard/pkg/board"
)

func TestBoxDimensions(t *testing.T) {
	box := Box{ID: "test", Left: 10, Right: 60, Top: 20, Bottom: 70}

	if box.Width() != 50 {
		t.Errorf("Width() = %v, want 50", box.Width())
	}
	if box.Height() != 50 {
		t.Errorf("Height() = %v, want 50", box.Height())
	}
	if box.CenterX() != 35 {
		t.Errorf("CenterX() = %v, want 35", box.CenterX())
	}
	if box.CenterY() != 45 {
		t.Errorf("CenterY() = %v, want 45", box.CenterY())
	}
}

func TestBoxOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want float64
	}{
		{
			name: "disjoint",
			a:    Box{Left: 0, Right: 10, Top: 0, Bottom: 10},
			b:    Box{Left: 20, Right: 30, Top: 0, Bottom: 10},
			want: 0,
		},
		{
			name: "touching",
			a:    Box{Left: 0, Right: 10, Top: 0, Bottom: 10},
			b:    Box{Left: 10, Right: 20, Top: 0, Bottom: 10},
			want: 0,
		},
		{
			name: "partial",
			a:    Box{Left: 0, Right: 10, Top: 0, Bottom: 10},
			b:    Box{Left: 5, Right: 15, Top: 5, Bottom: 15},
			want: 25,
		},
		{
			name: "contained",
			a:    Box{Left: 0, Right: 100, Top: 0, Bottom: 100},
			b:    Box{Left: 10, Right: 20, Top: 10, Bottom: 30},
			want: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlap(tt.b); got != tt.want {
				t.Errorf("Overlap() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlap(tt.a); got != tt.want {
				t.Errorf("Overlap() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxes(t *testing.T) {
	items := []board.Item{
		{ID: "b", Weight: 0.1},
		{ID: "a", Weight: 0.2},
		{ID: "missing"},
	}
	pos := map[string]board.Position{
		"a": {X: 10, Y: 20},
		"b": {X: 300, Y: 40},
	}

	boxes := Boxes(items, pos)
	if len(boxes) != 2 {
		t.Fatalf("Boxes() returned %d boxes, want 2", len(boxes))
	}
	if boxes[0].ID != "a" || boxes[1].ID != "b" {
		t.Errorf("Boxes() order = %s, %s; want a, b", boxes[0].ID, boxes[1].ID)
	}
	if boxes[0].Width() != 200 || boxes[0].Height() != 360 {
		t.Errorf("box a = %vx%v, want 200x360", boxes[0].Width(), boxes[0].Height())
	}
	if boxes[1].Left != 300 || boxes[1].Top != 40 {
		t.Errorf("box b origin = (%v, %v), want (300, 40)", boxes[1].Left, boxes[1].Top)
	}
}
