package render

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/board/layout"
)

// Frame is one drawable state of a board.
type Frame struct {
	Index     int                       `json:"index"` // timeline index, -1 for live
	Timestamp int64                     `json:"timestamp,omitempty"`
	Canvas    layout.Frame              `json:"canvas"`
	Items     []board.Item              `json:"items"`
	Positions map[string]board.Position `json:"positions"`
	Styles    map[string]string         `json:"styles"`
}

// Block is an item resolved to a rectangle on the canvas.
type Block struct {
	ID      string
	X, Y    float64 // top-left
	W, H    float64
	Special bool
	Style   string
}

// CenterX returns the horizontal center of the block.
func (b Block) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center of the block.
func (b Block) CenterY() float64 { return b.Y + b.H/2 }

// Blocks resolves the frame's items to rectangles, sorted by ID. Positions
// come from the frame's position map when present, otherwise from the item.
// Styles follow the same rule. Duplicate IDs resolve to the last item.
func (f Frame) Blocks() []Block {
	byID := make(map[string]Block, len(f.Items))
	for _, it := range f.Items {
		n := it.Normalized()
		pos := n.Position
		if p, ok := f.Positions[n.ID]; ok {
			pos = p
		}
		style := n.Style
		if s, ok := f.Styles[n.ID]; ok {
			style = s
		}
		size := board.SizeOf(n)
		byID[n.ID] = Block{
			ID:      n.ID,
			X:       pos.X,
			Y:       pos.Y,
			W:       size.Width,
			H:       size.Height,
			Special: n.IsSpecial,
			Style:   style,
		}
	}
	blocks := make([]Block, 0, len(byID))
	for _, b := range byID {
		blocks = append(blocks, b)
	}
	slices.SortFunc(blocks, func(a, b Block) int { return cmp.Compare(a.ID, b.ID) })
	return blocks
}

// Bounds returns the canvas size, grown to fit any block that lies outside
// it. A zero canvas is sized to the blocks alone.
func (f Frame) Bounds() (w, h float64) {
	w, h = f.Canvas.Width, f.Canvas.Height
	for _, b := range f.Blocks() {
		w = max(w, b.X+b.W)
		h = max(h, b.Y+b.H)
	}
	return w, h
}

// Sink renders frames into one output format.
type Sink interface {
	// Format names the output, e.g. "svg" or "png".
	Format() string

	// ContentType is the MIME type of the rendered bytes.
	ContentType() string

	// Render draws f.
	Render(ctx context.Context, f Frame) ([]byte, error)
}
