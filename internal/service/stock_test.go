package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/internal/model"
)

func TestStockGuard_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	repo := &fakeInventoryRepo{}
	guard := NewStockGuard(repo)

	item := model.InventoryItem{ID: uuid.New(), Name: "Cable", Stock: 5}
	require.NoError(t, repo.CreateItem(ctx, item))

	assert.NoError(t, guard.CheckAvailability(ctx, "Cable", 5))
	assert.NoError(t, guard.CheckAvailability(ctx, "cable", 3))
	assert.NoError(t, guard.CheckAvailability(ctx, "Nonexistent", 100))

	err := guard.CheckAvailability(ctx, "Cable", 6)
	require.ErrorIs(t, err, apperr.StockInsufficientErr)

	item.Stock = 0
	require.NoError(t, repo.UpdateItem(ctx, item))
	err = guard.CheckAvailability(ctx, "Cable", 1)
	require.ErrorIs(t, err, apperr.StockOutOfStockErr)
}

func TestStockGuard_Deduct(t *testing.T) {
	ctx := context.Background()
	repo := &fakeInventoryRepo{}
	guard := NewStockGuard(repo)

	item := model.InventoryItem{ID: uuid.New(), Name: "Cable", Stock: 5, UnitRate: decimal.NewFromInt(10)}
	require.NoError(t, repo.CreateItem(ctx, item))

	require.NoError(t, guard.Deduct(ctx, "cable", 3))
	got, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	// Stock never goes negative even if the deduction exceeds what is left.
	require.NoError(t, guard.Deduct(ctx, "Cable", 10))
	got, err = repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	require.NoError(t, guard.Deduct(ctx, "Nonexistent", 1))
}
