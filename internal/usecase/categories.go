package usecase

import (
	"context"
	"errors"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/validation"
)

type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

type Categories struct {
	repo CategoryRepo
}

func NewCategories(repo CategoryRepo) *Categories {
	return &Categories{repo: repo}
}

func (uc *Categories) List(ctx context.Context) ([]domain.Category, error) {
	cats, err := uc.repo.FindAll(ctx)
	if cats == nil && err == nil {
		cats = []domain.Category{}
	}
	return cats, err
}

func (uc *Categories) Create(ctx context.Context, actor Identity, in CategoryInput) (*domain.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, failWith(ErrInvalidInput, "Invalid Params", err)
	}
	slug := domain.Slugify(in.Name)
	if err := uc.ensureSlugFree(ctx, slug); err != nil {
		return nil, err
	}
	c := &domain.Category{Name: in.Name, Slug: slug}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *Categories) Update(ctx context.Context, actor Identity, id string, in CategoryInput) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !validation.IsObjectID(id) || validation.Struct(in) != nil {
		return fail(ErrInvalidInput, "Invalid params")
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	slug := domain.Slugify(in.Name)
	if err := uc.ensureSlugFree(ctx, slug); err != nil {
		return err
	}
	return uc.repo.Rename(ctx, id, in.Name, slug)
}

func (uc *Categories) Delete(ctx context.Context, actor Identity, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !validation.IsObjectID(id) {
		return fail(ErrInvalidInput, "Invalid params")
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.DeleteByID(ctx, id)
}

func (uc *Categories) Reorder(ctx context.Context, actor Identity, positions []CategoryPosition) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	for _, p := range positions {
		if err := validation.Struct(p); err != nil || !validation.IsObjectID(p.ID) {
			return fail(ErrInvalidInput, "Invalid Params")
		}
	}
	return uc.repo.Reorder(ctx, positions)
}

func (uc *Categories) find(ctx context.Context, id string) (*domain.Category, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(ErrNotFound, "Category not found")
	}
	return c, err
}

func (uc *Categories) ensureSlugFree(ctx context.Context, slug string) error {
	_, err := uc.repo.FindBySlug(ctx, slug)
	switch {
	case err == nil:
		return fail(ErrConflict, "Category name already in use")
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return err
	}
}
