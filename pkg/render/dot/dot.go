// Package dot renders board frames through Graphviz.
//
// [ToDOT] emits an undirected graph with one fixed-size box per item, pinned
// at the item's position with pos="x,y!". [RenderSVG] and [RenderPNG] run
// the neato engine, which honors pinned positions, so the output matches
// the solved layout. Graphviz's y axis points up; positions are flipped
// against the canvas height.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/moodboard/pkg/render"
)

// pointsPerInch converts pixels (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Labels shows item IDs inside the boxes.
	Labels bool
}

// ToDOT converts a frame to Graphviz DOT source.
func ToDOT(f render.Frame, opts Options) string {
	_, h := f.Bounds()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontsize=12];\n")
	buf.WriteString("\n")

	for _, b := range f.Blocks() {
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(nodeAttrs(b, h, opts), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(b render.Block, canvasHeight float64, opts Options) []string {
	label := ""
	if opts.Labels {
		label = b.ID
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", b.CenterX(), canvasHeight-b.CenterY()),
		fmt.Sprintf("width=%.4f", b.W/pointsPerInch),
		fmt.Sprintf("height=%.4f", b.H/pointsPerInch),
	}
	if b.Special {
		attrs = append(attrs, "fillcolor=\"#fff4d6\"", "color=\"#c98a00\"")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT source to PNG with the neato engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Sink renders frames to one Graphviz output format.
type Sink struct {
	format graphviz.Format
	opts   Options
}

// NewSVGSink returns a sink producing Graphviz SVG.
func NewSVGSink(opts Options) *Sink { return &Sink{format: graphviz.SVG, opts: opts} }

// NewPNGSink returns a sink producing PNG.
func NewPNGSink(opts Options) *Sink { return &Sink{format: graphviz.PNG, opts: opts} }

func (s *Sink) Format() string { return string(s.format) }

func (s *Sink) ContentType() string {
	if s.format == graphviz.PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (s *Sink) Render(ctx context.Context, f render.Frame) ([]byte, error) {
	return renderFormat(ctx, ToDOT(f, s.opts), s.format)
}

var _ render.Sink = (*Sink)(nil)
