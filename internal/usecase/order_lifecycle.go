package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/validation"
)

type UpdateOrderInput struct {
	Status  string `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELED"`
	Message string `json:"message"`
}

// OrderLifecycle applies admin-only status changes and deletions.
type OrderLifecycle struct {
	repo   OrderRepo
	events EventPublisher
	// when set, status changes must follow domain.CanTransition
	enforceTransitions bool
}

func NewOrderLifecycle(repo OrderRepo, events EventPublisher, enforceTransitions bool) *OrderLifecycle {
	if events == nil {
		events = NopPublisher{}
	}
	return &OrderLifecycle{repo: repo, events: events, enforceTransitions: enforceTransitions}
}

func (uc *OrderLifecycle) UpdateStatus(ctx context.Context, actor Identity, id string, in UpdateOrderInput) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := validation.Struct(in); err != nil {
		return failWith(ErrInvalidInput, "Invalid status", err)
	}
	if !validation.IsObjectID(id) {
		return fail(ErrInvalidInput, "Invalid order id")
	}

	order, err := uc.find(ctx, id)
	if err != nil {
		return err
	}

	next := domain.OrderStatus(in.Status)
	if uc.enforceTransitions && !domain.CanTransition(order.Status, next) {
		return fail(ErrInvalidState, fmt.Sprintf("Cannot move order from %s to %s", order.Status, next))
	}

	upd := OrderUpdate{Status: &next}
	if in.Message != "" {
		upd.Message = &in.Message
	}
	if err := uc.repo.UpdateByID(ctx, id, upd); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(ErrNotFound, "Order not found")
		}
		return err
	}

	order.Status = next
	if upd.Message != nil {
		order.Message = *upd.Message
	}
	uc.publish(ctx, newOrderEvent(EventOrderStatusChanged, order))
	return nil
}

func (uc *OrderLifecycle) Delete(ctx context.Context, actor Identity, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !validation.IsObjectID(id) {
		return fail(ErrInvalidInput, "Invalid parameters")
	}

	order, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(ErrNotFound, "Order not found")
		}
		return err
	}

	uc.publish(ctx, newOrderEvent(EventOrderDeleted, order))
	return nil
}

func (uc *OrderLifecycle) find(ctx context.Context, id string) (*domain.Order, error) {
	order, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(ErrNotFound, "Order not found")
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *OrderLifecycle) publish(ctx context.Context, ev OrderEvent) {
	if err := uc.events.PublishOrderEvent(ctx, ev); err != nil {
		logging.FromCtx(ctx).Warn("publish order event failed",
			slog.String("order_id", ev.OrderID), slog.String("type", ev.Type), slog.Any("err", err))
	}
}
