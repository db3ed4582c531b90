package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moodboard/pkg/storage"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for moodboard.

Completions include board IDs from the configured file or memory storage.

  bash:        source <(moodboard completion bash)
  zsh:         moodboard completion zsh > "${fpath[1]}/_moodboard"
  fish:        moodboard completion fish | source
  powershell:  moodboard completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// registerBoardCompletion completes the --board flag of cmd with stored
// board IDs.
func (c *CLI) registerBoardCompletion(cmd *cobra.Command) {
	if cmd.Flag("board") == nil {
		return
	}
	_ = cmd.RegisterFlagCompletionFunc("board", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		// Completion runs without the root pre-run, so load the config here.
		if err := c.loadConfig(); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return c.boardIDs(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// boardIDs lists stored boards whose ID starts with prefix. Backends that
// cannot enumerate boards yield nothing.
func (c *CLI) boardIDs(ctx context.Context, prefix string) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := storage.Open(ctx, c.cfg.StorageOptions())
	if err != nil {
		return nil
	}
	defer store.Close()

	var ids []string
	switch s := store.(type) {
	case *storage.FileStore:
		ids, _ = s.Boards()
	case *storage.MemoryStore:
		ids = s.Boards()
	}

	var out []string
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			out = append(out, id)
		}
	}
	return out
}
