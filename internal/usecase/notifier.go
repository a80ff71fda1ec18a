package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Eddi3MS/delivery-bd/internal/logging"
)

// Notifier turns order events into customer notifications. Delivery is a
// structured log line; a mail or push sender can replace Sink.
type Notifier struct {
	Sink func(ctx context.Context, customerID, text string) error
}

func NewNotifier() *Notifier {
	return &Notifier{Sink: logSink}
}

func (n *Notifier) Handle(ctx context.Context, ev OrderEvent) error {
	text, ok := notificationText(ev)
	if !ok {
		logging.FromCtx(ctx).Debug("ignoring order event", slog.String("type", ev.Type))
		return nil
	}
	return n.Sink(ctx, ev.CustomerID, text)
}

func notificationText(ev OrderEvent) (string, bool) {
	switch ev.Type {
	case EventOrderCreated:
		return fmt.Sprintf("Order %s received, total %s.", ev.OrderID, ev.Total.StringFixed(2)), true
	case EventOrderStatusChanged:
		if ev.Message != "" {
			return fmt.Sprintf("Order %s is now %s: %s", ev.OrderID, ev.Status, ev.Message), true
		}
		return fmt.Sprintf("Order %s is now %s.", ev.OrderID, ev.Status), true
	case EventOrderDeleted:
		return fmt.Sprintf("Order %s was removed.", ev.OrderID), true
	default:
		return "", false
	}
}

func logSink(ctx context.Context, customerID, text string) error {
	logging.FromCtx(ctx).Info("customer_notification",
		slog.String("customer_id", customerID), slog.String("text", text))
	return nil
}
