package memstore

import (
	"context"
	"slices"
	"sync"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
)

type OrderRepo struct {
	mu     sync.RWMutex
	orders []domain.Order // insertion order
}

func NewOrderRepo() *OrderRepo { return &OrderRepo{} }

func (r *OrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = newID()
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	r.orders = append(r.orders, cloneOrder(*o))
	return nil
}

func (r *OrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return nil, usecase.ErrNotFound
	}
	o := cloneOrder(r.orders[i])
	return &o, nil
}

func (r *OrderRepo) UpdateByID(_ context.Context, id string, upd usecase.OrderUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return usecase.ErrNotFound
	}
	if upd.Status != nil {
		r.orders[i].Status = *upd.Status
	}
	if upd.Message != nil {
		r.orders[i].Message = *upd.Message
	}
	r.orders[i].UpdatedAt = now()
	return nil
}

func (r *OrderRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return usecase.ErrNotFound
	}
	r.orders = slices.Delete(r.orders, i, i+1)
	return nil
}

func (r *OrderRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *OrderRepo) FindByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Order{}
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *OrderRepo) index(id string) int {
	return slices.IndexFunc(r.orders, func(o domain.Order) bool { return o.ID == id })
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
