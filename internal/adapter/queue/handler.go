package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPoison marks a delivery that can never succeed; the router drops it
// instead of requeueing.
var ErrPoison = errors.New("poison message")

// Handler processes a single delivery. It should be idempotent.
// Return nil => ACK; return error => NACK (requeue behavior controlled by Router).
type Handler interface {
	Handle(ctx context.Context, d amqp.Delivery) error
}

// JSONHandler decodes d.Body into T before calling HandleFunc. Bodies that
// do not decode are poison.
type JSONHandler[T any] struct {
	HandleFunc func(ctx context.Context, msg T) error
}

func (h JSONHandler[T]) Handle(ctx context.Context, d amqp.Delivery) error {
	var v T
	if err := json.Unmarshal(d.Body, &v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrPoison, d.RoutingKey, err)
	}
	return h.HandleFunc(ctx, v)
}

// NewOrderEventHandler feeds order events to the notifier. An event without
// type or order id is poison.
func NewOrderEventHandler(n *usecase.Notifier) Handler {
	return JSONHandler[usecase.OrderEvent]{HandleFunc: func(ctx context.Context, ev usecase.OrderEvent) error {
		if ev.Type == "" || ev.OrderID == "" {
			return fmt.Errorf("%w: incomplete order event", ErrPoison)
		}
		return n.Handle(ctx, ev)
	}}
}
