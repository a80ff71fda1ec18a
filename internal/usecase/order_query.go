package usecase

import (
	"context"
	"sort"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/samber/lo"
)

type OrderQuery struct {
	repo OrderRepo
}

func NewOrderQuery(repo OrderRepo) *OrderQuery {
	return &OrderQuery{repo: repo}
}

// ListAll partitions every order by status, groups sorted by status tag.
func (q *OrderQuery) ListAll(ctx context.Context, actor Identity) ([]domain.OrderGroup, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	orders, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := lo.GroupBy(orders, func(o domain.Order) domain.OrderStatus { return o.Status })
	groups := make([]domain.OrderGroup, 0, len(byStatus))
	for status, members := range byStatus {
		groups = append(groups, domain.OrderGroup{Status: status, Orders: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Status < groups[j].Status })
	return groups, nil
}

// ListOwn returns the caller's orders in creation order.
func (q *OrderQuery) ListOwn(ctx context.Context, actor Identity) ([]domain.Order, error) {
	orders, err := q.repo.FindByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
