package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

// order events are routed by their type, e.g. "order.created"
const orderBindingKey = "order.#"

// Topology is the exchange and notification queue both sides declare.
type Topology struct {
	Exchange string
	Queue    string
}

// Declare sets up the exchange, queue, and binding. Idempotent on the broker.
func (t Topology) Declare(ch *amqp.Channel) error {
	// 1. declare exchange (topic type, durable)
	if err := ch.ExchangeDeclare(
		t.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// 2. declare queue
	q, err := ch.QueueDeclare(
		t.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// 3. bind queue → exchange
	if err := ch.QueueBind(q.Name, orderBindingKey, t.Exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}
	return nil
}

// RabbitProducer implements usecase.EventPublisher.
type RabbitProducer struct {
	mu       sync.Mutex // a channel is not safe for concurrent publishes in confirm mode
	ch       *amqp.Channel
	exchange string
	timeout  time.Duration
}

// NewRabbitProducer declares the topology once at startup and enables confirms.
func NewRabbitProducer(ch *amqp.Channel, topo Topology) (*RabbitProducer, error) {
	if err := topo.Declare(ch); err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}
	return &RabbitProducer{ch: ch, exchange: topo.Exchange, timeout: 5 * time.Second}, nil
}

// PublishOrderEvent sends ev and waits for the broker confirm.
func (p *RabbitProducer) PublishOrderEvent(ctx context.Context, ev usecase.OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		MessageId:    ev.OrderID + ":" + ev.Type + ":" + ev.OccurredAt.Format(time.RFC3339Nano),
		Body:         body,
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	conf, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, ev.Type, false, false, pub)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await confirm: %w", err)
	}
	if !acked {
		return fmt.Errorf("publish %s: broker nacked", ev.Type)
	}
	return nil
}

var _ usecase.EventPublisher = (*RabbitProducer)(nil)
