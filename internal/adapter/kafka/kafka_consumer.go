package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/IBM/sarama"
)

// HandlerFunc processes a decoded event.
type HandlerFunc func(ctx context.Context, ev usecase.OrderEvent) error

// Consumer consumes a topic with a single handler.
type Consumer struct {
	Group  sarama.ConsumerGroup
	Topics []string
	Handle HandlerFunc
	Logger *slog.Logger
}

func NewConsumer(group sarama.ConsumerGroup, topics []string, h HandlerFunc) *Consumer {
	return &Consumer{
		Group:  group,
		Topics: topics,
		Handle: h,
		Logger: logging.New("kafka-consumer"),
	}
}

// Start blocks until ctx is cancelled or the group fails.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &cgHandler{handle: c.Handle, logger: c.Logger}
	for {
		if err := c.Group.Consume(ctx, c.Topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}
		// When Consume returns, it’s because ctx was cancelled or a rebalance happened.
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

type cgHandler struct {
	handle HandlerFunc
	logger *slog.Logger
}

func (h *cgHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *cgHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *cgHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		l := h.logger.With("topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)

		var ev usecase.OrderEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			l.Error("kafka decode error", "err", err)
			// mark to avoid reprocessing poison
			sess.MarkMessage(msg, "decode-error")
			continue
		}
		if err := h.handle(logging.WithCtx(sess.Context(), l), ev); err != nil {
			l.Error("handler error", "err", err, "key", string(msg.Key))
			// not marked: the next session resumes from the last committed offset
			continue
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}
