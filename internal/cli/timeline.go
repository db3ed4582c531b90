package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/moodboard/pkg/arrange"
	"github.com/matzehuels/moodboard/pkg/render/svg"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

// timelineCommand creates the timeline command group.
func (c *CLI) timelineCommand() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Inspect a board's saved arrangements",
	}
	cmd.PersistentFlags().StringVarP(&boardID, "board", "b", defaultBoard, "board ID")

	cmd.AddCommand(c.timelineListCommand(&boardID))
	cmd.AddCommand(c.timelineShowCommand(&boardID))
	cmd.AddCommand(c.timelineExportCommand(&boardID))

	return cmd
}

// loadBoard opens storage and loads boardID with the configured canvas.
func (c *CLI) loadBoard(cmd *cobra.Command, boardID string) (*arrange.Board, func(), error) {
	orch, closeFn, err := c.newOrchestrator(cmd.Context(), true)
	if err != nil {
		return nil, nil, err
	}
	b, err := orch.LoadBoard(cmd.Context(), boardID, c.cfg.Board)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return b, closeFn, nil
}

func (c *CLI) timelineListCommand(boardID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := c.loadBoard(cmd, *boardID)
			if err != nil {
				return err
			}
			defer closeFn()

			snaps := b.Snapshots()
			if len(snaps) == 0 {
				printInfo("Board %s has no snapshots", StyleHighlight.Render(b.ID()))
				printNextStep("Save one with", "moodboard arrange items.json --save --board "+b.ID())
				return nil
			}
			fmt.Println(snapshotTable(snaps))
			printDetail("%d snapshots on board %s", len(snaps), b.ID())
			return nil
		},
	}
}

// snapshotTable renders one row per snapshot.
func snapshotTable(snaps []timeline.Snapshot) string {
	rows := make([][]string, len(snaps))
	for i, s := range snaps {
		rows[i] = []string{
			strconv.Itoa(i),
			s.Time().Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(len(s.Items)),
			strconv.Itoa(len(s.Styles)),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Saved", "Items", "Styled").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		}).
		Render()
}

func (c *CLI) timelineShowCommand(boardID *string) *cobra.Command {
	var svgOut string

	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Print a snapshot as JSON, or render it with --svg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be an integer: %w", err)
			}
			b, closeFn, err := c.loadBoard(cmd, *boardID)
			if err != nil {
				return err
			}
			defer closeFn()

			view, err := b.JumpTo(index)
			if err != nil {
				return err
			}
			frame := b.Frame(view)

			if svgOut != "" {
				if err := os.WriteFile(svgOut, svg.RenderSVG(frame, svg.WithLabels()), 0o644); err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
				printSuccess("Rendered snapshot %d", index)
				printFile(svgOut)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(frame)
		},
	}
	cmd.Flags().StringVar(&svgOut, "svg", "", "render the snapshot to this SVG file")
	return cmd
}

func (c *CLI) timelineExportCommand(boardID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write every snapshot as a JSON array to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := c.loadBoard(cmd, *boardID)
			if err != nil {
				return err
			}
			defer closeFn()
			return timeline.Encode(b.Snapshots(), cmd.OutOrStdout())
		},
	}
}
