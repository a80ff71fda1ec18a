package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_PublishOrderEvent(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev usecase.OrderEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.OrderID != "o1" || ev.Type != usecase.EventOrderCreated {
			return errors.New("unexpected event " + string(val))
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisher(producer, "delivery.order-events")
	ev := usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "o1", Total: decimal.NewFromInt(10), OccurredAt: time.Now()}

	require.NoError(t, p.PublishOrderEvent(context.Background(), ev))
	assert.ErrorIs(t, p.PublishOrderEvent(context.Background(), ev), sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestProducerConfig_Validates(t *testing.T) {
	assert.NoError(t, ProducerConfig().Validate())
}

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "m" }
func (s *fakeSession) GenerationID() int32                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Context() context.Context                 { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct{ ch chan *sarama.ConsumerMessage }

func (c fakeClaim) Topic() string                            { return "t" }
func (c fakeClaim) Partition() int32                         { return 0 }
func (c fakeClaim) InitialOffset() int64                     { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.ch }

func TestConsumeClaim_MarksHandledAndPoisonOnly(t *testing.T) {
	var handled []string
	h := &cgHandler{
		logger: logging.New("test"),
		handle: func(_ context.Context, ev usecase.OrderEvent) error {
			if ev.OrderID == "fail" {
				return errors.New("sink down")
			}
			handled = append(handled, ev.OrderID)
			return nil
		},
	}

	claim := fakeClaim{ch: make(chan *sarama.ConsumerMessage, 3)}
	claim.ch <- &sarama.ConsumerMessage{Offset: 1, Value: []byte(`{"type":"order.created","orderId":"o1","total":1}`)}
	claim.ch <- &sarama.ConsumerMessage{Offset: 2, Value: []byte(`not json`)}
	claim.ch <- &sarama.ConsumerMessage{Offset: 3, Value: []byte(`{"type":"order.deleted","orderId":"fail","total":1}`)}
	close(claim.ch)

	sess := &fakeSession{ctx: context.Background()}
	require.NoError(t, h.ConsumeClaim(sess, claim))

	assert.Equal(t, []string{"o1"}, handled)
	assert.Equal(t, []int64{1, 2}, sess.marked)
}
