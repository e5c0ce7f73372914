package kafka

import (
	"context"
	"testing"

	"github.com/ortelius/pdvd-changelog/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewDialer(t *testing.T) {
	t.Run("should stay plaintext without credentials", func(t *testing.T) {
		dialer := NewDialer(config.KafkaConfig{})
		assert.Nil(t, dialer.SASLMechanism)
		assert.Nil(t, dialer.TLS)
	})

	t.Run("should use SASL over TLS with credentials", func(t *testing.T) {
		cfg := config.KafkaConfig{APIKey: "key", APISecret: "secret"}
		dialer := NewDialer(cfg)
		assert.Equal(t, "PLAIN", dialer.SASLMechanism.Name())
		assert.NotNil(t, dialer.TLS)

		transport := NewTransport(cfg)
		assert.Equal(t, "PLAIN", transport.SASL.Name())
		assert.NotNil(t, transport.TLS)
	})
}

func TestRunEventProcessor(t *testing.T) {
	t.Run("should require brokers", func(t *testing.T) {
		err := RunEventProcessor(context.Background(), config.KafkaConfig{}, nil, zap.NewNop())
		assert.Error(t, err)
	})
}
