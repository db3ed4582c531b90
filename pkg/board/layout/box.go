package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/moodboard/pkg/board"
)

// Box is a placed item: its solved top-left corner combined with its size.
// Coordinates grow rightward and downward.
type Box struct {
	ID          string
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Overlap returns the intersection area of two boxes.
func (b Box) Overlap(o Box) float64 {
	w := min(b.Right, o.Right) - max(b.Left, o.Left)
	h := min(b.Bottom, o.Bottom) - max(b.Top, o.Top)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Boxes builds one box per item that has a position, sorted by ID.
// Items without a position entry are skipped.
func Boxes(items []board.Item, pos map[string]board.Position) []Box {
	boxes := make([]Box, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		p, ok := pos[it.ID]
		if !ok || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		sz := board.SizeOf(it)
		boxes = append(boxes, Box{
			ID:     it.ID,
			Left:   p.X,
			Right:  p.X + sz.Width,
			Top:    p.Y,
			Bottom: p.Y + sz.Height,
		})
	}
	slices.SortFunc(boxes, func(a, b Box) int { return cmp.Compare(a.ID, b.ID) })
	return boxes
}
