package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// playCommand creates the play command.
func (c *CLI) playCommand() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Replay a board's timeline in the terminal",
		Long: `Play opens an interactive player for the board's saved snapshots.

Playback advances one snapshot per period (see [playback] period in the
config) and returns to the live board after the last one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := c.loadBoard(cmd, boardID)
			if err != nil {
				return err
			}
			defer closeFn()

			if b.Len() == 0 {
				printWarning("Board %s has no snapshots to play", b.ID())
				printNextStep("Save one with", "moodboard arrange items.json --save --board "+b.ID())
				return nil
			}

			model := NewPlayerModel(b, c.cfg.Playback.Period.Duration)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&boardID, "board", "b", defaultBoard, "board ID")
	return cmd
}
