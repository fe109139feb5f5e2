package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/pkg/ptr"
)

func TestInventoryService_CreateItem(t *testing.T) {
	ctx := context.Background()
	repo := &fakeInventoryRepo{}
	svc := NewInventoryService(slog.New(slog.DiscardHandler), repo)

	item, err := svc.CreateItem(ctx, CreateItemParams{
		Name:     "Router",
		Stock:    25,
		UnitRate: d(t, "1499.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLowStockThreshold, item.LowStockThreshold)
	assert.NotEqual(t, uuid.Nil, item.ID)

	custom, err := svc.CreateItem(ctx, CreateItemParams{
		Name:              "Switch",
		Stock:             3,
		UnitRate:          d(t, "899"),
		LowStockThreshold: ptr.New(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, custom.LowStockThreshold)
	assert.True(t, custom.IsLowStock())

	_, err = svc.CreateItem(ctx, CreateItemParams{Name: "router", UnitRate: d(t, "1")})
	require.ErrorIs(t, err, apperr.ItemNameTakenErr)
}

func TestInventoryService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	repo := &fakeInventoryRepo{}
	svc := NewInventoryService(slog.New(slog.DiscardHandler), repo)

	item, err := svc.CreateItem(ctx, CreateItemParams{Name: "Router", Stock: 25, UnitRate: d(t, "1499")})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, UpdateItemParams{
		ID:                item.ID,
		Name:              "Router Pro",
		Stock:             30,
		UnitRate:          d(t, "1799"),
		LowStockThreshold: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Router Pro", updated.Name)
	assert.Equal(t, 30, updated.Stock)
	assert.False(t, updated.UpdatedAt.Before(item.UpdatedAt))
}

func TestInventoryService_ListLowStockItems(t *testing.T) {
	ctx := context.Background()
	repo := &fakeInventoryRepo{}
	svc := NewInventoryService(slog.New(slog.DiscardHandler), repo)

	_, err := svc.CreateItem(ctx, CreateItemParams{Name: "Plenty", Stock: 100, UnitRate: d(t, "1")})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, CreateItemParams{Name: "Scarce", Stock: 2, UnitRate: d(t, "1")})
	require.NoError(t, err)

	low, err := svc.ListLowStockItems(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Scarce", low[0].Name)
}
