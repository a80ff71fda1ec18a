package usecase

import (
	"context"
	"fmt"

	"github.com/Eddi3MS/delivery-bd/internal/validation"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PriceLine is one (product, quantity) pair of an incoming order.
type PriceLine struct {
	ProductID string
	Quantity  int
}

// IntegrityChecker recomputes an order total from catalog prices.
// It only reads the catalog.
type IntegrityChecker struct {
	catalog Catalog
}

func NewIntegrityChecker(catalog Catalog) *IntegrityChecker {
	return &IntegrityChecker{catalog: catalog}
}

// Verify returns the authoritative price per product id when the declared
// total equals sum(quantity * price) exactly.
func (ic *IntegrityChecker) Verify(ctx context.Context, lines []PriceLine, declared decimal.Decimal) (map[string]decimal.Decimal, error) {
	for _, l := range lines {
		if !validation.IsObjectID(l.ProductID) {
			return nil, fail(ErrInvalidInput, "Invalid product id")
		}
	}

	ids := lo.Uniq(lo.Map(lines, func(l PriceLine, _ int) string { return l.ProductID }))
	found, err := ic.catalog.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	if len(found) != len(ids) {
		return nil, fail(ErrIntegrity, "Product not found.")
	}

	prices := lo.SliceToMap(found, func(p ProductPrice) (string, decimal.Decimal) { return p.ID, p.Price })
	sum := decimal.Zero
	for _, l := range lines {
		price, ok := prices[l.ProductID]
		if !ok {
			// catalog returned a different id set of the same size
			return nil, fail(ErrIntegrity, "Product not found.")
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if !sum.Equal(declared) {
		return nil, fail(ErrIntegrity, "Total amount mismatch")
	}
	return prices, nil
}
