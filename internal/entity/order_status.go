package domain

import (
	"errors"
	"sort"
)

type OrderStatus string

// remember to add new statuses to validOrderStatuses and orderTransitions
const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCanceled   OrderStatus = "CANCELED"
)

var ErrInvalidStatus = errors.New("invalid order status")

var validOrderStatuses = map[OrderStatus]struct{}{
	StatusPending:    {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCanceled:   {},
}

// Forward-only shipping flow. CANCELED is reachable from every non-terminal state;
// DELIVERED and CANCELED have no successors.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCanceled},
	StatusProcessing: {StatusShipped, StatusCanceled},
	StatusShipped:    {StatusDelivered, StatusCanceled},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}
	return "", ErrInvalidStatus
}

// OrderStatuses returns every status sorted by its tag.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, 0, len(validOrderStatuses))
	for s := range validOrderStatuses {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// CanTransition reports whether an order in status from may move to status to.
// Re-applying the current status is always allowed so a message can be attached.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
