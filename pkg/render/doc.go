// Package render turns a board frame into visual output.
//
// A [Frame] is what a render sink draws: the items of one timeline view,
// their positions and styles, and the canvas they were laid out on. The
// orchestrator resolves timeline views into frames; playback subscribers and
// the HTTP API hand those frames to a [Sink].
//
// Sinks live in subpackages:
//
//   - [svg]: hand-built SVG with one group per item
//   - [dot]: Graphviz output with pinned node positions (SVG, PNG)
//
// [svg]: github.com/matzehuels/moodboard/pkg/render/svg
// [dot]: github.com/matzehuels/moodboard/pkg/render/dot
package render
