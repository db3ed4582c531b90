package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moodboard/pkg/arrange"
	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/board/layout"
	"github.com/matzehuels/moodboard/pkg/errors"
	"github.com/matzehuels/moodboard/pkg/render"
	"github.com/matzehuels/moodboard/pkg/render/dot"
	"github.com/matzehuels/moodboard/pkg/render/svg"
)

// arrangeFlags holds the options of the arrange command.
type arrangeFlags struct {
	boardID   string
	save      bool
	output    string
	svgOut    string
	pngOut    string
	labels    bool
	noCache   bool
	seed      uint64
	width     float64
	height    float64
	topMargin float64
}

// arrangeCommand creates the arrange command.
func (c *CLI) arrangeCommand() *cobra.Command {
	var f arrangeFlags

	cmd := &cobra.Command{
		Use:   "arrange [items.json]",
		Short: "Lay out board items without overlap",
		Long: `Arrange reads items from a JSON file (or the board's latest snapshot when
no file is given), solves their positions, and writes the arranged items.

With --save the arrangement is appended to the board's timeline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if cmd.Flags().Changed("seed") {
				c.cfg.Solver.Seed = f.seed
			}
			return c.runArrange(cmd.Context(), input, c.canvasFromFlags(cmd, f), f)
		},
	}

	cmd.Flags().StringVarP(&f.boardID, "board", "b", defaultBoard, "board ID")
	cmd.Flags().BoolVarP(&f.save, "save", "s", false, "append the arrangement to the timeline")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write arranged items to this file (default: stdout)")
	cmd.Flags().StringVar(&f.svgOut, "svg", "", "also render the board as SVG to this file")
	cmd.Flags().StringVar(&f.pngOut, "png", "", "also render the board as PNG (via Graphviz) to this file")
	cmd.Flags().BoolVar(&f.labels, "labels", true, "draw item IDs in rendered output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "jitter seed (default from config)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "board width (default from config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "board height (default from config)")
	cmd.Flags().Float64Var(&f.topMargin, "top-margin", 0, "reserved header height (default from config)")

	return cmd
}

// canvasFromFlags overlays explicitly set size flags on the configured board.
func (c *CLI) canvasFromFlags(cmd *cobra.Command, f arrangeFlags) layout.Frame {
	canvas := c.cfg.Board
	if cmd.Flags().Changed("width") {
		canvas.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		canvas.Height = f.height
	}
	if cmd.Flags().Changed("top-margin") {
		canvas.TopMargin = f.topMargin
	}
	return canvas
}

func (c *CLI) runArrange(ctx context.Context, input string, canvas layout.Frame, f arrangeFlags) error {
	orch, closeFn, err := c.newOrchestrator(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer closeFn()

	b, err := orch.LoadBoard(ctx, f.boardID, canvas)
	if err != nil {
		return err
	}
	if input != "" {
		items, err := board.ReadItemsFile(input)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "read items")
		}
		b.SetItems(items)
	}
	if len(b.Items()) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "board %s has no items; pass an items file", f.boardID)
	}

	prog := newProgress(c.Logger)
	res, err := orch.Arrange(ctx, b, f.save)
	if err != nil {
		return err
	}
	prog.done("arranged", "items", len(res.Items), "cached", res.Cached)

	// Without --output the items go to stdout, so status lines stay off it.
	if f.output == "" {
		if err := board.WriteItems(res.Items, os.Stdout); err != nil {
			return err
		}
		return c.renderOutputs(ctx, b.CurrentFrame(), f, false)
	}

	if err := board.WriteItemsFile(res.Items, f.output); err != nil {
		return err
	}
	printSuccess("Arranged %d items", len(res.Items))
	printFile(f.output)
	if res.Index != arrange.NotSaved {
		printSuccess("Saved snapshot %s on board %s", StyleNumber.Render(fmt.Sprint(res.Index)), StyleHighlight.Render(b.ID()))
	}
	printArrangeStats(len(res.Items), b.Len(), res.Cached)

	return c.renderOutputs(ctx, b.CurrentFrame(), f, true)
}

func (c *CLI) renderOutputs(ctx context.Context, frame render.Frame, f arrangeFlags, announce bool) error {
	if f.svgOut != "" {
		var opts []svg.Option
		if f.labels {
			opts = append(opts, svg.WithLabels())
		}
		if err := os.WriteFile(f.svgOut, svg.RenderSVG(frame, opts...), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		if announce {
			printFile(f.svgOut)
		}
	}
	if f.pngOut != "" {
		data, err := dot.NewPNGSink(dot.Options{Labels: f.labels}).Render(ctx, frame)
		if err != nil {
			return fmt.Errorf("render png: %w", err)
		}
		if err := os.WriteFile(f.pngOut, data, 0o644); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		if announce {
			printFile(f.pngOut)
		}
	}
	return nil
}
