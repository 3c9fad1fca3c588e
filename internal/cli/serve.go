package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/server"
	"github.com/matzehuels/mosaic/pkg/session"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		sessionTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Clients open a session for their viewport, stream item batches into it and
query the visible window while scrolling. Sessions idle for longer than
--session-ttl are dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			ttl := cfg.Server.SessionTTL.Std()
			if sessionTTL != 0 {
				if sessionTTL < 0 {
					return errors.New(errors.ErrCodeInvalidInput, "session-ttl must be positive")
				}
				ttl = sessionTTL
			}

			srv := server.New(session.NewMemoryStore(ttl), server.Options{
				Layout: cfg.Layout.Options(),
				Logger: c.Logger,
			})
			printInfo("Serving layouts on %s", StyleHighlight.Render(cfg.Server.Addr))
			printDetail("Sessions expire after %s idle", ttl)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", 0, "idle session lifetime (default from config)")

	return cmd
}
