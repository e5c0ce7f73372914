package cmd

import (
	"time"

	"github.com/ortelius/pdvd-changelog/internal/kafka"
	"github.com/ortelius/pdvd-changelog/internal/services"
	"github.com/spf13/cobra"
)

// NewWorkerCommand consumes changelog requests from Kafka.
func NewWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Answer changelog requests published on Kafka",
		Args:  cobra.NoArgs,
		RunE:  runWorker,
	}
}

func runWorker(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.logger.Sync() //nolint:errcheck

	wrapper := &services.ChangelogServiceWrapper{
		Service: rt.service,
		Timeout: time.Duration(rt.cfg.Changelog.RequestTimeoutSeconds) * time.Second,
		Logger:  rt.logger,
	}
	if err := kafka.RunEventProcessor(ctx, rt.cfg.Kafka, wrapper, rt.logger); err != nil {
		return err
	}

	<-ctx.Done()
	rt.logger.Info("Worker stopped")
	return nil
}
