package usecase

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/validation"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var minProductPrice = decimal.NewFromInt(100)

type CreateProductInput struct {
	Name        string           `json:"name" validate:"required"`
	Image       string           `json:"image" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Category    string           `json:"category" validate:"required"`
}

type UpdateProductInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Image       *string          `json:"image" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Category    *string          `json:"category" validate:"omitempty,min=1"`
}

type Products struct {
	repo       ProductRepo
	categories CategoryRepo
	media      MediaStore
}

func NewProducts(repo ProductRepo, categories CategoryRepo, media MediaStore) *Products {
	return &Products{repo: repo, categories: categories, media: media}
}

// List groups products under their category, highest category order first.
// Products whose category no longer exists are left out.
func (uc *Products) List(ctx context.Context) ([]domain.ProductGroup, error) {
	cats, err := uc.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := lo.GroupBy(products, func(p domain.Product) string { return p.CategoryID })
	groups := make([]domain.ProductGroup, 0, len(byCategory))
	for _, c := range cats {
		if members, ok := byCategory[c.ID]; ok {
			groups = append(groups, domain.ProductGroup{Category: c, Products: members})
		}
	}
	return groups, nil
}

func (uc *Products) Create(ctx context.Context, actor Identity, in CreateProductInput) (*domain.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil || in.Price.LessThan(minProductPrice) {
		return nil, failWith(ErrInvalidInput, "Invalid Params", err)
	}
	if err := uc.ensureCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	publicID, err := uc.media.Upload(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	p := &domain.Product{
		Name:        in.Name,
		Image:       publicID,
		Description: in.Description,
		Price:       *in.Price,
		CategoryID:  in.Category,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *Products) Update(ctx context.Context, actor Identity, id string, in UpdateProductInput) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !validation.IsObjectID(id) {
		return fail(ErrInvalidInput, "Invalid params")
	}
	if err := validation.Struct(in); err != nil || (in.Price != nil && in.Price.LessThan(minProductPrice)) {
		return failWith(ErrInvalidInput, "Invalid Params", err)
	}

	current, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return fail(ErrNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	if in.Category != nil {
		if err := uc.ensureCategory(ctx, *in.Category); err != nil {
			return err
		}
	}

	upd := ProductUpdate{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.Category,
	}
	if in.Image != nil {
		publicID, err := uc.media.Upload(ctx, *in.Image)
		if err != nil {
			return err
		}
		upd.Image = &publicID
		uc.destroyImage(ctx, current.Image)
	}
	return uc.repo.UpdateByID(ctx, id, upd)
}

// Delete removes the product. Orders keep their own price snapshot.
func (uc *Products) Delete(ctx context.Context, actor Identity, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !validation.IsObjectID(id) {
		return fail(ErrInvalidInput, "Invalid params")
	}
	current, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return fail(ErrNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	uc.destroyImage(ctx, current.Image)
	return nil
}

func (uc *Products) ensureCategory(ctx context.Context, id string) error {
	if !validation.IsObjectID(id) {
		return fail(ErrInvalidInput, "Invalid category id")
	}
	_, err := uc.categories.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return fail(ErrNotFound, "Category not found")
	}
	return err
}

func (uc *Products) destroyImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := uc.media.Destroy(ctx, publicID); err != nil {
		logging.FromCtx(ctx).Warn("destroy product image failed",
			slog.String("public_id", publicID), slog.Any("err", err))
	}
}
