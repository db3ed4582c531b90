package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/moodboard/pkg/board"
)

// Options configures the simulation run by [Solve]. A zero or negative
// coefficient selects its default, as does a damping above 1.
type Options struct {
	// Iterations is the fixed number of simulation steps. Default: 120.
	Iterations int

	// Gravity scales the pull of each rectangle's center toward the frame
	// center. Default: 0.015.
	Gravity float64

	// Repulsion scales the push applied to an overlapping pair, relative to
	// the smaller axis overlap. Default: 0.8.
	Repulsion float64

	// Damping multiplies velocities after each step. Default: 0.85.
	Damping float64

	// Spacing inflates every half-extent when testing for overlap, keeping
	// boxes apart by a visible gutter. Default: 20.
	Spacing float64

	// Jitter is the maximum initial offset per axis in pixels. Default: 25.
	Jitter float64

	// MaxSpeed caps the distance a rectangle travels in one step. Large boxes
	// otherwise fly apart on the first step and collide again on the
	// rebound. Default: 20 (the spacing).
	MaxSpeed float64

	// Seed seeds the jitter generator when Rand is nil.
	Seed uint64

	// Rand overrides the jitter generator.
	Rand *rand.Rand

	// Observer, if set, is called after every iteration with the live
	// rectangles. It must not retain or modify the slice.
	Observer func(iter int, rects []Rect)
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Iterations: 120,
		Gravity:    0.015,
		Repulsion:  0.8,
		Damping:    0.85,
		Spacing:    20,
		Jitter:     25,
		MaxSpeed:   20,
	}
}

// withDefaults fills zero-valued coefficients from DefaultOptions and seeds
// the generator.
func (o Options) withDefaults() Options {
	o = o.Resolved()
	if o.Rand == nil {
		o.Rand = NewRand(o.Seed)
	}
	return o
}

// Resolved returns the coefficients Solve will actually use, with defaults
// filled in. Rand is left as given.
func (o Options) Resolved() Options {
	d := DefaultOptions()
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
	if o.Gravity <= 0 {
		o.Gravity = d.Gravity
	}
	if o.Repulsion <= 0 {
		o.Repulsion = d.Repulsion
	}
	if o.Damping <= 0 || o.Damping > 1 {
		o.Damping = d.Damping
	}
	if o.Spacing <= 0 {
		o.Spacing = d.Spacing
	}
	if o.Jitter <= 0 {
		o.Jitter = d.Jitter
	}
	if o.MaxSpeed <= 0 {
		o.MaxSpeed = d.MaxSpeed
	}
	return o
}

// NewRand returns the jitter generator used for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Rect is the solver's working state for one item. X and Y are the top-left
// corner; VX and VY the current velocity.
type Rect struct {
	ID     string
	X, Y   float64
	W, H   float64
	VX, VY float64
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Box converts the rectangle to a [Box].
func (r Rect) Box() Box {
	return Box{ID: r.ID, Left: r.X, Right: r.X + r.W, Top: r.Y, Bottom: r.Y + r.H}
}

// Solve computes non-overlapping, center-biased positions for items inside
// frame. The result holds exactly one position per distinct item ID; when IDs
// repeat, the last item wins. Pass nil opts for defaults.
//
// Solve does not validate frame; callers check [Frame.Validate] first.
func Solve(items []board.Item, frame Frame, opts *Options) map[string]board.Position {
	if len(items) == 0 {
		return map[string]board.Position{}
	}

	var o Options
	if opts != nil {
		o = *opts
	}
	o = o.withDefaults()

	rects := initRects(items, frame, o)
	cx, cy := frame.Center()

	for iter := range o.Iterations {
		applyGravity(rects, cx, cy, o.Gravity)
		applyRepulsion(rects, o.Spacing, o.Repulsion)
		integrate(rects, o.Damping, o.MaxSpeed)
		if o.Observer != nil {
			o.Observer(iter, rects)
		}
	}

	out := make(map[string]board.Position, len(rects))
	for _, r := range rects {
		out[r.ID] = clamp(r, frame)
	}
	return out
}

// initRects builds one rectangle per distinct ID, centered in the frame with
// independent jitter on each axis.
func initRects(items []board.Item, frame Frame, o Options) []Rect {
	cx, cy := frame.Center()
	index := make(map[string]int, len(items))
	rects := make([]Rect, 0, len(items))

	for _, it := range items {
		sz := board.SizeOf(it)
		r := Rect{
			ID: it.ID,
			X:  cx - sz.Width/2 + jitter(o.Rand, o.Jitter),
			Y:  cy - sz.Height/2 + jitter(o.Rand, o.Jitter),
			W:  sz.Width,
			H:  sz.Height,
		}
		if i, ok := index[it.ID]; ok {
			rects[i] = r
			continue
		}
		index[it.ID] = len(rects)
		rects = append(rects, r)
	}
	return rects
}

func jitter(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}

func applyGravity(rects []Rect, cx, cy, g float64) {
	for i := range rects {
		r := &rects[i]
		r.VX += (cx - r.CenterX()) * g
		r.VY += (cy - r.CenterY()) * g
	}
}

// applyRepulsion pushes every overlapping pair apart. Overlap is measured
// with each half-extent inflated by spacing.
func applyRepulsion(rects []Rect, spacing, k float64) {
	for i := range rects {
		a := &rects[i]
		for j := i + 1; j < len(rects); j++ {
			b := &rects[j]

			dx := b.CenterX() - a.CenterX()
			dy := b.CenterY() - a.CenterY()
			overlapX := (a.W+b.W)/2 + 2*spacing - math.Abs(dx)
			overlapY := (a.H+b.H)/2 + 2*spacing - math.Abs(dy)
			if overlapX <= 0 || overlapY <= 0 {
				continue
			}

			ux, uy := 1.0, 0.0
			if dist := math.Hypot(dx, dy); dist > 1e-9 {
				ux, uy = dx/dist, dy/dist
			}
			f := k * min(overlapX, overlapY)
			a.VX -= ux * f
			a.VY -= uy * f
			b.VX += ux * f
			b.VY += uy * f
		}
	}
}

func integrate(rects []Rect, damping, maxSpeed float64) {
	for i := range rects {
		r := &rects[i]
		if s := math.Hypot(r.VX, r.VY); s > maxSpeed {
			r.VX *= maxSpeed / s
			r.VY *= maxSpeed / s
		}
		r.X += r.VX
		r.Y += r.VY
		r.VX *= damping
		r.VY *= damping
	}
}

// clamp keeps the rectangle inside the frame. When a box is larger than the
// frame, the left and top edges win.
func clamp(r Rect, frame Frame) board.Position {
	x := max(0, min(r.X, frame.Width-r.W))
	y := max(frame.TopMargin, min(r.Y, frame.Height-r.H))
	return board.Position{X: x, Y: y}
}
