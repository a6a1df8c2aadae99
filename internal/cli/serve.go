package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/highway/pkg/api"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the checker over HTTP",
		Long: `Serve exposes the checker as a JSON API:

  POST /v1/check          {"tokens":[...]} or {"nodes":n,"edges":[[x,y],...]}
  POST /v1/render         same body, ?format=svg|dot|json
  GET  /v1/reports        recent reports
  GET  /v1/reports/{id}   one report
  GET  /healthz           liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	c.Logger.Info("starting server",
		"cache", c.Config.Cache.Backend,
		"history", c.Config.History.Backend,
		"max_depth", c.Config.Check.MaxDepth)
	return api.New(runner, c.Logger).ListenAndServe(ctx, addr)
}
