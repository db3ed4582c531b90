package board

import (
	"maps"
	"math"
	"slices"
)

// Defaults applied by [Item.Normalized].
const (
	DefaultWeight     = 0.1
	DefaultBaseWidth  = 100.0
	DefaultBaseHeight = 100.0

	// CaptionHeight is the vertical space added below every image.
	CaptionHeight = 80.0

	// InterestScale amplifies ordinary interest weights.
	InterestScale = 10.0
)

// Position is the top-left corner of an item in board coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the bounding box of an item.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Item is a single moodboard entity.
type Item struct {
	ID         string   `json:"id"`
	BaseWidth  float64  `json:"baseWidth,omitempty"`
	BaseHeight float64  `json:"baseHeight,omitempty"`
	Weight     float64  `json:"weight,omitempty"`
	IsSpecial  bool     `json:"isSpecial,omitempty"`
	Position   Position `json:"position"`
	Style      string   `json:"style,omitempty"`
}

// Normalized returns a copy of the item with every missing, non-finite or
// non-positive numeric field replaced by its default. Non-finite positions
// are reset to the origin.
func (it Item) Normalized() Item {
	it.Weight = positiveOr(it.Weight, DefaultWeight)
	it.BaseWidth = positiveOr(it.BaseWidth, DefaultBaseWidth)
	it.BaseHeight = positiveOr(it.BaseHeight, DefaultBaseHeight)
	if !finite(it.Position.X) {
		it.Position.X = 0
	}
	if !finite(it.Position.Y) {
		it.Position.Y = 0
	}
	return it
}

// SizeOf computes the bounding box for an item. The item is normalized first,
// so the result is always strictly positive and finite.
func SizeOf(it Item) Size {
	it = it.Normalized()
	scale := it.Weight
	if !it.IsSpecial {
		scale *= InterestScale
	}
	return Size{
		Width:  it.BaseWidth * scale,
		Height: (it.BaseHeight + CaptionHeight) * scale,
	}
}

// WithPositions returns copies of items with positions replaced from pos.
// Items without an entry keep their current position.
func WithPositions(items []Item, pos map[string]Position) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if p, ok := pos[it.ID]; ok {
			it.Position = p
		}
		out[i] = it
	}
	return out
}

// Positions collects the current position of every item keyed by ID.
func Positions(items []Item) map[string]Position {
	out := make(map[string]Position, len(items))
	for _, it := range items {
		out[it.ID] = it.Position
	}
	return out
}

// Styles collects the non-empty style of every item keyed by ID.
func Styles(items []Item) map[string]string {
	out := make(map[string]string, len(items))
	for _, it := range items {
		if it.Style != "" {
			out[it.ID] = it.Style
		}
	}
	return out
}

// IDs returns the item IDs in sorted order.
func IDs(pos map[string]Position) []string {
	return slices.Sorted(maps.Keys(pos))
}

func positiveOr(v, def float64) float64 {
	if !finite(v) || v <= 0 {
		return def
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
