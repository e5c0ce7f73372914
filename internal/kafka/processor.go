// Package kafka runs the changelog request worker on top of segmentio/kafka-go.
package kafka

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/cenkalti/backoff"
	changelogevents "github.com/ortelius/pdvd-changelog/events/modules/changelog"
	"github.com/ortelius/pdvd-changelog/config"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

// NewDialer returns a dialer that uses SASL/PLAIN over TLS when credentials
// are configured and plaintext otherwise.
func NewDialer(cfg config.KafkaConfig) *kafka.Dialer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if cfg.APIKey != "" && cfg.APISecret != "" {
		dialer.SASLMechanism = plain.Mechanism{Username: cfg.APIKey, Password: cfg.APISecret}
		dialer.TLS = &tls.Config{} // Confluent Cloud requires TLS
	}
	return dialer
}

// NewTransport returns the writer transport matching NewDialer.
func NewTransport(cfg config.KafkaConfig) *kafka.Transport {
	transport := &kafka.Transport{DialTimeout: 10 * time.Second}
	if cfg.APIKey != "" && cfg.APISecret != "" {
		transport.SASL = plain.Mechanism{Username: cfg.APIKey, Password: cfg.APISecret}
		transport.TLS = &tls.Config{}
	}
	return transport
}

// RunEventProcessor consumes changelog requests until ctx is done, answering
// each one on the result topic. It returns once the brokers are reachable
// and the consumer is running.
func RunEventProcessor(ctx context.Context, cfg config.KafkaConfig, service changelogevents.ChangelogService, logger *zap.Logger) error {
	if len(cfg.Brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	dialer := NewDialer(cfg)

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		logger.Sugar().Infof("Kafka connection attempt %d/3...", attempt)
		conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
		if err != nil {
			return err
		}
		return conn.Close()
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(2*time.Second), 2), ctx),
		func(err error, next time.Duration) {
			logger.Warn("kafka not reachable", zap.Error(err), zap.Duration("retry_in", next))
		})
	if err != nil {
		return errors.Wrapf(err, "could not reach kafka broker %s", cfg.Brokers[0])
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.RequestTopic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})
	producer := changelogevents.NewChangelogProducer(cfg.Brokers, cfg.ResultTopic, NewTransport(cfg))

	go func() {
		defer reader.Close()
		defer producer.Close()

		logger.Sugar().Infof("Kafka Event Processor started. Listening on %s...", cfg.RequestTopic)

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("failed to read changelog request", zap.Error(err))
				continue
			}
			if err := changelogevents.HandleChangelogRequested(ctx, msg.Value, service, producer, logger); err != nil {
				logger.Error("failed to handle changelog request",
					zap.Int64("offset", msg.Offset), zap.Error(err))
			}
		}
	}()

	return nil
}
