package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/validation"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type AddressInput struct {
	Street       string `json:"street" validate:"required"`
	Number       string `json:"number" validate:"required"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood" validate:"required"`
}

func (a AddressInput) toDomain() domain.Address {
	return domain.Address{
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
	}
}

type OrderItemInput struct {
	Product  string           `json:"product" validate:"required"`
	Quantity int              `json:"quantity" validate:"gte=1"`
	Price    *decimal.Decimal `json:"price" validate:"required"`
}

type CreateOrderInput struct {
	IdempotencyKey string           `json:"-"`
	Address        AddressInput     `json:"address"`
	Items          []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Total          *decimal.Decimal `json:"total" validate:"required"`
}

type CreateOrder struct {
	repo      OrderRepo
	integrity *IntegrityChecker
	idem      IdempotencyStore
	events    EventPublisher
}

func NewCreateOrder(repo OrderRepo, integrity *IntegrityChecker, idem IdempotencyStore, events EventPublisher) *CreateOrder {
	if events == nil {
		events = NopPublisher{}
	}
	return &CreateOrder{repo: repo, integrity: integrity, idem: idem, events: events}
}

func (uc *CreateOrder) Execute(ctx context.Context, actor Identity, in CreateOrderInput) (*domain.Order, error) {
	if err := validation.Struct(in); err != nil {
		return nil, failWith(ErrInvalidInput, "Invalid Parameters", err)
	}

	idempotent := uc.idem != nil && in.IdempotencyKey != ""
	if idempotent {
		// Fast path: the same caller already created an order with this key
		if id, ok, _ := uc.idem.Recall(ctx, actor.ID, in.IdempotencyKey); ok {
			order, err := uc.repo.FindByID(ctx, id)
			if !errors.Is(err, ErrNotFound) {
				return order, err
			}
			// the remembered order was deleted; the key starts over
			_ = uc.idem.Release(ctx, actor.ID, in.IdempotencyKey)
		}
		ok, err := uc.idem.TryLock(ctx, actor.ID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fail(ErrDuplicate, "Order already being processed")
		}
	}

	order, err := uc.create(ctx, actor, in)
	if err != nil {
		if idempotent {
			_ = uc.idem.Release(ctx, actor.ID, in.IdempotencyKey)
		}
		return nil, err
	}
	if idempotent {
		_ = uc.idem.Remember(ctx, actor.ID, in.IdempotencyKey, order.ID)
	}

	if err := uc.events.PublishOrderEvent(ctx, newOrderEvent(EventOrderCreated, order)); err != nil {
		logging.FromCtx(ctx).Warn("publish order event failed",
			slog.String("order_id", order.ID), slog.Any("err", err))
	}
	return order, nil
}

func (uc *CreateOrder) create(ctx context.Context, actor Identity, in CreateOrderInput) (*domain.Order, error) {
	// catalog ids are lowercase hex
	in.Items = lo.Map(in.Items, func(it OrderItemInput, _ int) OrderItemInput {
		it.Product = strings.ToLower(it.Product)
		return it
	})
	lines := lo.Map(in.Items, func(it OrderItemInput, _ int) PriceLine {
		return PriceLine{ProductID: it.Product, Quantity: it.Quantity}
	})
	prices, err := uc.integrity.Verify(ctx, lines, *in.Total)
	if err != nil {
		return nil, err
	}

	// the stored snapshot always carries the catalog price
	items := lo.Map(in.Items, func(it OrderItemInput, _ int) domain.OrderItem {
		return domain.OrderItem{ProductID: it.Product, Quantity: it.Quantity, Price: prices[it.Product]}
	})
	order := &domain.Order{
		CustomerID: actor.ID,
		Address:    in.Address.toDomain(),
		Items:      items,
		Total:      *in.Total,
		Status:     domain.StatusPending,
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// IsRejection reports whether err is an expected create failure rather than a fault.
func IsRejection(err error) bool {
	var ue *Error
	return errors.As(err, &ue)
}
