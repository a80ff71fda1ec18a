package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/IBM/sarama"
)

// Publisher writes order events keyed by order id, so every event of one
// order lands on the same partition in order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

func (p *Publisher) PublishOrderEvent(ctx context.Context, ev usecase.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(ev.OrderID),
		Value:     sarama.ByteEncoder(body),
		Timestamp: ev.OccurredAt,
		Headers:   []sarama.RecordHeader{{Key: []byte("type"), Value: []byte(ev.Type)}},
	})
	if err != nil {
		return fmt.Errorf("kafka send %s: %w", ev.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.producer.Close() }

var _ usecase.EventPublisher = (*Publisher)(nil)
