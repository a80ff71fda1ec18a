package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Eddi3MS/delivery-bd/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Router manages multiple consumers (one per registered queue) on a single AMQP channel.
type Router struct {
	ch            *amqp.Channel
	log           *slog.Logger
	prefetch      int
	callTimeout   time.Duration
	requeueOnErr  bool
	registrations []registration
	wg            sync.WaitGroup
}

type registration struct {
	queueName   string
	handler     Handler
	consumerTag string
}

// --- Options ---

type RouterOption func(*Router)

func WithPrefetch(n int) RouterOption          { return func(r *Router) { r.prefetch = n } }
func WithTimeout(d time.Duration) RouterOption { return func(r *Router) { r.callTimeout = d } }
func WithRequeue(b bool) RouterOption          { return func(r *Router) { r.requeueOnErr = b } }
func WithLogger(l *slog.Logger) RouterOption   { return func(r *Router) { r.log = l } }

// NewRouter constructs a Router. Defaults: prefetch=50, timeout=10s, requeueOnErr=true.
func NewRouter(ch *amqp.Channel, opts ...RouterOption) *Router {
	r := &Router{
		ch:           ch,
		log:          logging.New("rmq-router"),
		prefetch:     50,
		callTimeout:  10 * time.Second,
		requeueOnErr: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register associates a queue with a handler. Call multiple times for multiple queues.
func (r *Router) Register(queueName string, h Handler) {
	r.registrations = append(r.registrations, registration{
		queueName:   queueName,
		handler:     h,
		consumerTag: "c_" + queueName,
	})
}

// Start begins consuming; non-blocking (spawns one goroutine per queue).
// QoS (prefetch) is set per-channel and applies to all consumers on this channel.
func (r *Router) Start() error {
	if err := r.ch.Qos(r.prefetch, 0, false); err != nil {
		return err
	}

	for _, reg := range r.registrations {
		deliveries, err := r.ch.Consume(
			reg.queueName,
			reg.consumerTag,
			false, // manual ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			return err
		}

		r.wg.Add(1)
		go func(reg registration, msgs <-chan amqp.Delivery) {
			defer r.wg.Done()
			l := r.log.With("queue", reg.queueName, "tag", reg.consumerTag)
			for d := range msgs {
				r.dispatch(l, reg.handler, d)
			}
			l.Info("consumer stopped")
		}(reg, deliveries)
	}

	return nil
}

// Wait blocks until every consumer goroutine has exited, which happens
// once the channel or connection is closed.
func (r *Router) Wait() { r.wg.Wait() }

func (r *Router) dispatch(l *slog.Logger, h Handler, d amqp.Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), r.callTimeout)
	defer cancel()
	ctx = logging.WithCtx(ctx, l.With("rk", d.RoutingKey, "msg_id", d.MessageId))

	err := h.Handle(ctx, d)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrPoison):
		l.Error("dropping poison message", "rk", d.RoutingKey, "err", err)
		_ = d.Nack(false, false)
	default:
		l.Error("handler error", "rk", d.RoutingKey, "err", err, "requeue", r.requeueOnErr)
		_ = d.Nack(false, r.requeueOnErr)
	}
}
