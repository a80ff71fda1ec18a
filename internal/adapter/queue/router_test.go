package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settled struct {
	acked   bool
	nacked  bool
	requeue bool
}

type fakeAck struct{ s *settled }

func (f fakeAck) Ack(uint64, bool) error { f.s.acked = true; return nil }
func (f fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	f.s.nacked, f.s.requeue = true, requeue
	return nil
}
func (f fakeAck) Reject(_ uint64, requeue bool) error {
	f.s.nacked, f.s.requeue = true, requeue
	return nil
}

type handlerFunc func(ctx context.Context, d amqp.Delivery) error

func (f handlerFunc) Handle(ctx context.Context, d amqp.Delivery) error { return f(ctx, d) }

func deliver(r *Router, h Handler, body string) settled {
	var s settled
	r.dispatch(logging.New("test"), h, amqp.Delivery{Acknowledger: fakeAck{&s}, DeliveryTag: 1, Body: []byte(body)})
	return s
}

func TestRouter_Dispatch(t *testing.T) {
	r := NewRouter(nil)

	ok := handlerFunc(func(context.Context, amqp.Delivery) error { return nil })
	assert.Equal(t, settled{acked: true}, deliver(r, ok, "{}"))

	transient := handlerFunc(func(context.Context, amqp.Delivery) error { return errors.New("sink down") })
	assert.Equal(t, settled{nacked: true, requeue: true}, deliver(r, transient, "{}"))

	r = NewRouter(nil, WithRequeue(false))
	assert.Equal(t, settled{nacked: true, requeue: false}, deliver(r, transient, "{}"))
}

func TestOrderEventHandler(t *testing.T) {
	var got []usecase.OrderEvent
	n := usecase.NewNotifier()
	n.Sink = func(context.Context, string, string) error { return nil }
	h := JSONHandler[usecase.OrderEvent]{HandleFunc: func(ctx context.Context, ev usecase.OrderEvent) error {
		got = append(got, ev)
		return n.Handle(ctx, ev)
	}}
	r := NewRouter(nil)

	s := deliver(r, h, `{"type":"order.created","orderId":"o1","customerId":"c1","total":3000}`)
	assert.True(t, s.acked)
	require.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].OrderID)
	assert.Equal(t, "3000", got[0].Total.String())

	// malformed bodies are dropped, never requeued
	s = deliver(r, NewOrderEventHandler(n), `{"type":`)
	assert.Equal(t, settled{nacked: true, requeue: false}, s)
}

func TestJSONHandler_PoisonIsWrapped(t *testing.T) {
	h := JSONHandler[usecase.OrderEvent]{HandleFunc: func(context.Context, usecase.OrderEvent) error { return nil }}
	err := h.Handle(context.Background(), amqp.Delivery{Body: []byte("nope")})
	assert.ErrorIs(t, err, ErrPoison)
}

func TestOrderEventHandler_IncompleteEventIsPoison(t *testing.T) {
	n := usecase.NewNotifier()
	called := false
	n.Sink = func(context.Context, string, string) error { called = true; return nil }

	s := deliver(NewRouter(nil), NewOrderEventHandler(n), `{"type":"order.created","total":1}`)
	assert.Equal(t, settled{nacked: true, requeue: false}, s)
	assert.False(t, called)

	s = deliver(NewRouter(nil), NewOrderEventHandler(n), `{"type":"order.deleted","orderId":"o9","total":1}`)
	assert.True(t, s.acked)
	assert.True(t, called)
}
