package memstore

import (
	"context"
	"testing"
	"time"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_LockRememberRelease(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(time.Minute)

	ok, err := s.TryLock(ctx, "u1", "k")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.TryLock(ctx, "u1", "k")
	assert.False(t, ok, "second lock while in flight")
	ok, _ = s.TryLock(ctx, "u2", "k")
	assert.True(t, ok, "keys are scoped per caller")

	_, found, _ := s.Recall(ctx, "u1", "k")
	assert.False(t, found, "locked but not yet remembered")

	require.NoError(t, s.Remember(ctx, "u1", "k", "order-1"))
	v, found, _ := s.Recall(ctx, "u1", "k")
	assert.True(t, found)
	assert.Equal(t, "order-1", v)

	require.NoError(t, s.Release(ctx, "u2", "k"))
	ok, _ = s.TryLock(ctx, "u2", "k")
	assert.True(t, ok)
}

func TestIdempotencyStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(time.Millisecond)
	require.NoError(t, s.Remember(ctx, "u", "k", "o"))
	time.Sleep(5 * time.Millisecond)

	_, found, _ := s.Recall(ctx, "u", "k")
	assert.False(t, found)
	ok, _ := s.TryLock(ctx, "u", "k")
	assert.True(t, ok)
}

func TestOrderRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepo()
	o := &domain.Order{
		CustomerID: "c1",
		Items:      []domain.OrderItem{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(100)}},
		Total:      decimal.NewFromInt(100),
		Status:     domain.StatusPending,
	}
	require.NoError(t, r.Create(ctx, o))
	require.NotEmpty(t, o.ID)

	got, err := r.FindByID(ctx, o.ID)
	require.NoError(t, err)
	got.Items[0].Quantity = 99

	again, _ := r.FindByID(ctx, o.ID)
	assert.Equal(t, 1, again.Items[0].Quantity)

	shipped := domain.StatusShipped
	require.NoError(t, r.UpdateByID(ctx, o.ID, usecase.OrderUpdate{Status: &shipped}))
	again, _ = r.FindByID(ctx, o.ID)
	assert.Equal(t, domain.StatusShipped, again.Status)
	assert.Equal(t, "c1", again.CustomerID)

	require.NoError(t, r.DeleteByID(ctx, o.ID))
	_, err = r.FindByID(ctx, o.ID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.ErrorIs(t, r.DeleteByID(ctx, o.ID), usecase.ErrNotFound)
}
