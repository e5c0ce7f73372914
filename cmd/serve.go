package cmd

import (
	"github.com/ortelius/pdvd-changelog/internal/api"
	"github.com/spf13/cobra"
)

// NewServeCommand starts the REST and GraphQL API.
func NewServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the changelog REST and GraphQL API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.logger.Sync() //nolint:errcheck

	port := rt.cfg.Server.Port
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	app, err := api.NewFiberApp(rt.service)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		rt.logger.Info("Shutting down server")
		_ = app.Shutdown()
	}()

	rt.logger.Sugar().Infof("Starting server on port %s", port)
	rt.logger.Info("GraphQL endpoint available at /api/v1/graphql")
	return app.Listen(":" + port)
}
