package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Image       string          `json:"image"` // media host public id
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductGroup struct {
	Category Category  `json:"category"`
	Products []Product `json:"products"`
}

// Slugify upper-cases a category name and joins its words with dashes.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "-")
}
