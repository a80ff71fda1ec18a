package usecase_test

import (
	"context"
	"testing"

	"github.com/Eddi3MS/delivery-bd/internal/adapter/memstore"
	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategories(memstore.NewCategoryRepo())

	_, err := uc.Create(ctx, customer, usecase.CategoryInput{Name: "Pizzas"})
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)

	pizzas, err := uc.Create(ctx, admin, usecase.CategoryInput{Name: "Pizzas"})
	require.NoError(t, err)
	assert.Equal(t, "PIZZAS", pizzas.Slug)

	_, err = uc.Create(ctx, admin, usecase.CategoryInput{Name: "pizzas"})
	assert.ErrorIs(t, err, usecase.ErrConflict)
	assert.Equal(t, "Category name already in use", usecase.Message(err))

	drinks, err := uc.Create(ctx, admin, usecase.CategoryInput{Name: "Cold drinks"})
	require.NoError(t, err)
	assert.Equal(t, "COLD-DRINKS", drinks.Slug)

	require.NoError(t, uc.Reorder(ctx, admin, []usecase.CategoryPosition{
		{ID: pizzas.ID, Order: 1},
		{ID: drinks.ID, Order: 5},
	}))
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{drinks.ID, pizzas.ID}, lo.Map(list, func(c domain.Category, _ int) string { return c.ID }))

	require.NoError(t, uc.Update(ctx, admin, pizzas.ID, usecase.CategoryInput{Name: "Sweet pizzas"}))
	err = uc.Update(ctx, admin, pizzas.ID, usecase.CategoryInput{Name: "Cold drinks"})
	assert.ErrorIs(t, err, usecase.ErrConflict)

	err = uc.Delete(ctx, admin, "64b7f0c2a1b2c3d4e5f6ffff")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.Equal(t, "Category not found", usecase.Message(err))

	require.NoError(t, uc.Delete(ctx, admin, drinks.ID))
	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, uc.Reorder(ctx, admin, []usecase.CategoryPosition{{ID: "bad"}}), usecase.ErrInvalidInput)
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	categoriesRepo := memstore.NewCategoryRepo()
	media := &fakeMedia{}
	uc := usecase.NewProducts(memstore.NewProductRepo(), categoriesRepo, media)

	top := &domain.Category{Name: "Top", Slug: "TOP", Order: 10}
	low := &domain.Category{Name: "Low", Slug: "LOW", Order: 1}
	require.NoError(t, categoriesRepo.Create(ctx, low))
	require.NoError(t, categoriesRepo.Create(ctx, top))

	in := usecase.CreateProductInput{
		Name:        "Margherita",
		Image:       "https://example.com/m.png",
		Price:       dec("4590"),
		Description: "tomato, mozzarella",
		Category:    low.ID,
	}

	cheap := in
	cheap.Price = dec("99.99")
	_, err := uc.Create(ctx, admin, cheap)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	orphan := in
	orphan.Category = "64b7f0c2a1b2c3d4e5f6ffff"
	_, err = uc.Create(ctx, admin, orphan)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = uc.Create(ctx, customer, in)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)

	p, err := uc.Create(ctx, admin, in)
	require.NoError(t, err)
	assert.NotEqual(t, in.Image, p.Image, "stores the media host id")
	assert.Equal(t, []string{in.Image}, media.uploaded)

	in.Category = top.ID
	in.Name = "Calabresa"
	q, err := uc.Create(ctx, admin, in)
	require.NoError(t, err)

	groups, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, top.ID, groups[0].Category.ID)
	assert.Equal(t, q.ID, groups[0].Products[0].ID)
	assert.Equal(t, low.ID, groups[1].Category.ID)

	price := decimal.NewFromInt(5000)
	image := "https://example.com/new.png"
	require.NoError(t, uc.Update(ctx, admin, p.ID, usecase.UpdateProductInput{Price: &price, Image: &image}))
	assert.Contains(t, media.destroyed, p.Image)

	tooLow := decimal.NewFromInt(10)
	assert.ErrorIs(t, uc.Update(ctx, admin, p.ID, usecase.UpdateProductInput{Price: &tooLow}), usecase.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, admin, p.ID))
	assert.ErrorIs(t, uc.Delete(ctx, admin, p.ID), usecase.ErrNotFound)

	// products of a removed category drop out of the listing
	require.NoError(t, categoriesRepo.DeleteByID(ctx, top.ID))
	groups, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestAddresses(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAddresses(memstore.NewAddressRepo())

	_, err := uc.Create(ctx, customer, usecase.AddressInput{Street: "Main"})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	a, err := uc.Create(ctx, customer, validAddress())
	require.NoError(t, err)
	assert.Equal(t, customer.ID, a.UserID)

	street := "Second Street"
	empty := ""
	require.NoError(t, uc.Update(ctx, customer, a.ID, usecase.UpdateAddressInput{Street: &street, Number: &empty}))

	list, err := uc.List(ctx, customer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, street, list[0].Street)
	assert.Equal(t, a.Number, list[0].Number)

	err = uc.Update(ctx, other, a.ID, usecase.UpdateAddressInput{Street: &street})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.Equal(t, "Address not found", usecase.Message(err))
	assert.ErrorIs(t, uc.Delete(ctx, other, a.ID), usecase.ErrNotFound)

	theirs, err := uc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	require.NoError(t, uc.Delete(ctx, customer, a.ID))
	assert.ErrorIs(t, uc.Delete(ctx, customer, "bad"), usecase.ErrInvalidInput)
}
