package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moodboard/pkg/api"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over HTTP",
		Long: `Serve exposes boards, arrangement, timelines and rendering over a JSON API.

Boards are persisted in the configured storage backend and loaded on first use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	orch, closeFn, err := c.newOrchestrator(ctx, noCache)
	if err != nil {
		return err
	}
	defer closeFn()

	srv := api.New(api.Options{
		Orchestrator: orch,
		Canvas:       c.cfg.Board,
		Persistent:   true,
		Logger:       c.Logger,
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpSrv.ListenAndServe()
	}()

	c.Logger.Info("listening", "addr", addr, "storage", c.cfg.Storage.Backend)
	printSuccess("Serving on %s", StyleHighlight.Render(addr))
	printKeyValue("storage", c.cfg.Storage.Backend)
	printKeyValue("cache", c.cacheDescription(noCache))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (c *CLI) cacheDescription(noCache bool) string {
	cc := c.cfg.Cache
	switch {
	case noCache || !cc.Enabled:
		return "off"
	case cc.Backend == "redis":
		return "redis " + cc.RedisAddr
	default:
		return "file " + cc.Dir
	}
}
