package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/server"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve palettes over HTTP",
		Long: `Serve palettes over HTTP until interrupted.

Endpoints:
  GET /mix?a=&b=&algo=&n=&method=&hue=&schedule=&gamma=
      JSON array of hex colours. Defaults: a=ff0000, b=0000ff,
      algo=srgb, n=21. n is clamped to the algorithm's range.
  GET /algorithms
      JSON array of algorithm keys.
  GET /healthz
      Liveness check.

The gamut, fast transfer and cache settings come from the configuration
file, TINCTURE_* environment variables and the flags below.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.loadSettings(cmd)
			if err != nil {
				return err
			}
			engine, err := s.engine()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(engine, s.logger.Named("http")).Run(ctx, s.cfg.Listen)
		},
	}

	cmd.Flags().String("listen", ":8080", "address to listen on")
	engineFlags(cmd)
	return cmd
}
