// Package svg renders board frames as standalone SVG documents.
//
// Each item becomes a <g> holding a rounded rectangle and, optionally, its
// ID as a label. The item's style string is copied into the group's style
// attribute so hosts can drive opacity or filters per item.
//
//	data := svg.RenderSVG(frame, svg.WithLabels())
package svg

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/moodboard/pkg/render"
)

const (
	fontHeightRatio = 0.3
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 18.0
	cornerRadius    = 6.0
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	labels     bool
	background string
	headerFill string
}

// WithLabels draws each item's ID inside its rectangle.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithBackground sets the canvas fill color.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// WithHeader shades the top margin strip with color.
func WithHeader(color string) Option { return func(r *renderer) { r.headerFill = color } }

// RenderSVG draws f. The viewBox covers the canvas, grown to fit any item
// that lies outside it.
func RenderSVG(f render.Frame, opts ...Option) []byte {
	r := renderer{background: "#fafafa"}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := f.Bounds()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect class="canvas" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, escape(r.background))
	if r.headerFill != "" && f.Canvas.TopMargin > 0 {
		fmt.Fprintf(&buf, `  <rect class="header" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			w, f.Canvas.TopMargin, escape(r.headerFill))
	}

	for _, b := range f.Blocks() {
		renderBlock(&buf, b, r.labels)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="shadow" x="-10%" y="-10%" width="120%" height="120%">
      <feDropShadow dx="0" dy="2" stdDeviation="3" flood-opacity="0.2"/>
    </filter>
  </defs>
`)
}

func renderBlock(buf *bytes.Buffer, b render.Block, labels bool) {
	class := "item"
	fill, stroke := "#ffffff", "#333333"
	if b.Special {
		class += " special"
		fill, stroke = "#fff4d6", "#c98a00"
	}
	fmt.Fprintf(buf, `  <g class="%s" id="item-%s"`, class, escape(b.ID))
	if b.Style != "" {
		fmt.Fprintf(buf, ` style="%s"`, escape(b.Style))
	}
	buf.WriteString(">\n")
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" fill="%s" stroke="%s" stroke-width="1.5" filter="url(#shadow)"/>`+"\n",
		b.X, b.Y, b.W, b.H, min(cornerRadius, b.W/4, b.H/4), fill, stroke)
	if labels {
		size := fontSize(b)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif">%s</text>`+"\n",
			b.CenterX(), b.CenterY(), size, escape(truncate(b.ID, b.W, size)))
	}
	buf.WriteString("  </g>\n")
}

func fontSize(b render.Block) float64 {
	n := max(1, len(b.ID))
	byHeight := b.H * fontHeightRatio
	byWidth := b.W * 0.9 / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byHeight, byWidth))
}

func truncate(label string, width, size float64) string {
	maxChars := max(3, int(width*0.9/(size*fontCharWidth)))
	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Sink renders frames with a fixed set of options.
type Sink struct {
	opts []Option
}

// NewSink returns a sink that renders with opts.
func NewSink(opts ...Option) *Sink { return &Sink{opts: opts} }

func (s *Sink) Format() string      { return "svg" }
func (s *Sink) ContentType() string { return "image/svg+xml" }

func (s *Sink) Render(_ context.Context, f render.Frame) ([]byte, error) {
	return RenderSVG(f, s.opts...), nil
}

var _ render.Sink = (*Sink)(nil)
