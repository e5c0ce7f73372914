// Package changelog handles Kafka event production for computed changelogs.
package changelog

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// ChangelogProducer sends computed changelogs to Kafka
type ChangelogProducer struct {
	Writer *kafka.Writer
}

// NewChangelogProducer initializes a new Kafka writer for changelog results.
// transport may be nil for the default plaintext transport.
func NewChangelogProducer(brokers []string, topic string, transport kafka.RoundTripper) *ChangelogProducer {
	return &ChangelogProducer{
		Writer: &kafka.Writer{
			Addr:      kafka.TCP(brokers...),
			Topic:     topic,
			Balancer:  &kafka.LeastBytes{},
			Transport: transport,
		},
	}
}

// PublishChangelogComputed sends the event to the Kafka topic, keyed by the
// request it answers.
func (p *ChangelogProducer) PublishChangelogComputed(ctx context.Context, event ChangelogComputedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RequestID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *ChangelogProducer) Close() error {
	return p.Writer.Close()
}
