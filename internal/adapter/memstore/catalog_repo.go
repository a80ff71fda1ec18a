package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
)

type ProductRepo struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewProductRepo() *ProductRepo { return &ProductRepo{} }

func (r *ProductRepo) FindProductsByIDs(_ context.Context, ids []string) ([]usecase.ProductPrice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []usecase.ProductPrice{}
	for _, p := range r.products {
		if slices.Contains(ids, p.ID) {
			out = append(out, usecase.ProductPrice{ID: p.ID, Price: p.Price})
		}
	}
	return out, nil
}

func (r *ProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	r.products = append(r.products, *p)
	return nil
}

func (r *ProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return nil, usecase.ErrNotFound
	}
	p := r.products[i]
	return &p, nil
}

func (r *ProductRepo) UpdateByID(_ context.Context, id string, upd usecase.ProductUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return usecase.ErrNotFound
	}
	p := &r.products[i]
	setIf(&p.Name, upd.Name)
	setIf(&p.Image, upd.Image)
	setIf(&p.Description, upd.Description)
	setIf(&p.CategoryID, upd.CategoryID)
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	p.UpdatedAt = now()
	return nil
}

func (r *ProductRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return usecase.ErrNotFound
	}
	r.products = slices.Delete(r.products, i, i+1)
	return nil
}

func (r *ProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.products), nil
}

func (r *ProductRepo) index(id string) int {
	return slices.IndexFunc(r.products, func(p domain.Product) bool { return p.ID == id })
}

type CategoryRepo struct {
	mu         sync.RWMutex
	categories []domain.Category
}

func NewCategoryRepo() *CategoryRepo { return &CategoryRepo{} }

func (r *CategoryRepo) Create(_ context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	r.categories = append(r.categories, *c)
	return nil
}

func (r *CategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	return r.find(func(c domain.Category) bool { return c.ID == id })
}

func (r *CategoryRepo) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	return r.find(func(c domain.Category) bool { return c.Slug == slug })
}

func (r *CategoryRepo) Rename(_ context.Context, id, name, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return usecase.ErrNotFound
	}
	r.categories[i].Name = name
	r.categories[i].Slug = slug
	r.categories[i].UpdatedAt = now()
	return nil
}

func (r *CategoryRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return usecase.ErrNotFound
	}
	r.categories = slices.Delete(r.categories, i, i+1)
	return nil
}

func (r *CategoryRepo) FindAll(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	out := slices.Clone(r.categories)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order > out[j].Order })
	return out, nil
}

// Reorder skips ids that do not exist, like an unordered bulk update.
func (r *CategoryRepo) Reorder(_ context.Context, positions []usecase.CategoryPosition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range positions {
		if i := r.index(p.ID); i >= 0 {
			r.categories[i].Order = p.Order
			r.categories[i].UpdatedAt = now()
		}
	}
	return nil
}

func (r *CategoryRepo) find(match func(domain.Category) bool) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := slices.IndexFunc(r.categories, match)
	if i < 0 {
		return nil, usecase.ErrNotFound
	}
	c := r.categories[i]
	return &c, nil
}

func (r *CategoryRepo) index(id string) int {
	return slices.IndexFunc(r.categories, func(c domain.Category) bool { return c.ID == id })
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
