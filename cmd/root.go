// Package cmd wires the pdvd-changelog commands: the HTTP server, the Kafka
// worker and one-shot changelog queries.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ortelius/pdvd-changelog/config"
	"github.com/ortelius/pdvd-changelog/database"
	"github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "pdvd-changelog",
	Short: "Release changelogs with attribution.",
	Long: `pdvd-changelog reports what changed between releases of a component, or across
an organization over a date range, and which release of which component caused each change.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewWorkerCommand())
	rootCmd.AddCommand(NewChangelogCommand())
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

// env is what every command needs to answer changelog requests.
type env struct {
	cfg     config.Config
	logger  *zap.Logger
	service *changelog.Service
}

func bootstrap(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := database.InitLogger()

	db := database.InitializeDatabase(ctx, cfg.Arango)
	service := changelog.NewService(database.NewRepository(db), logger,
		changelog.WithWorkers(cfg.Changelog.Workers),
		changelog.WithDefaultTimeZone(cfg.Changelog.TimeZone))

	return &env{cfg: cfg, logger: logger, service: service}, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
