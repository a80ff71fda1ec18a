package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is copied into an order at creation time and never re-synced.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
}

type OrderItem struct {
	ProductID string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"` // unit price at order time
}

type Order struct {
	ID         string          `json:"_id"`
	CustomerID string          `json:"customer"`
	Address    Address         `json:"address"`
	Items      []OrderItem     `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Status     OrderStatus     `json:"status"`
	Message    string          `json:"message"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ItemsTotal sums quantity x unit price over all items.
func (o Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

type OrderGroup struct {
	Status OrderStatus `json:"status"`
	Orders []Order     `json:"orders"`
}
