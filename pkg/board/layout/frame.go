package layout

import (
	"math"

	"github.com/matzehuels/moodboard/pkg/errors"
)

// Frame is the container the board is laid out in. Items are kept below
// TopMargin, which reserves space for a header strip.
type Frame struct {
	Width     float64 `json:"width" toml:"width"`
	Height    float64 `json:"height" toml:"height"`
	TopMargin float64 `json:"top_margin,omitempty" toml:"top_margin"`
}

// Validate reports whether the frame can hold a layout. A non-positive or
// non-finite dimension, or a top margin outside [0, Height), is a caller
// precondition violation.
func (f Frame) Validate() error {
	if !positiveFinite(f.Width) || !positiveFinite(f.Height) {
		return errors.New(errors.ErrCodeInvalidContainer, "container must be positive, got %gx%g", f.Width, f.Height)
	}
	if math.IsNaN(f.TopMargin) || f.TopMargin < 0 || f.TopMargin >= f.Height {
		return errors.New(errors.ErrCodeInvalidContainer, "top margin %g outside [0, %g)", f.TopMargin, f.Height)
	}
	return nil
}

// Center returns the point items gravitate toward: the horizontal center and
// the vertical center of the area below the top margin.
func (f Frame) Center() (x, y float64) {
	return f.Width / 2, f.TopMargin + (f.Height-f.TopMargin)/2
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
