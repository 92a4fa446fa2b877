package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sjperalta/cabinet-api/internal/events"
)

// Publisher writes ledger events to a Kafka topic, keyed by operation
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for topic on brokers
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// Publish writes one event and waits for the broker to acknowledge it
func (p *Publisher) Publish(ctx context.Context, event events.LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(
		ctx,
		kafka.Message{
			Key:   []byte(event.Operation),
			Value: data,
			Time:  event.At,
		},
	)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
