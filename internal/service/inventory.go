package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/internal/repository"
)

type CreateItemParams struct {
	Name              string
	Description       string
	Stock             int
	UnitRate          decimal.Decimal
	LowStockThreshold *int
}

type UpdateItemParams struct {
	ID                uuid.UUID
	Name              string
	Description       string
	Stock             int
	UnitRate          decimal.Decimal
	LowStockThreshold int
}

type InventoryService interface {
	CreateItem(ctx context.Context, params CreateItemParams) (model.InventoryItem, error)
	ListAllItems(ctx context.Context) ([]model.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (model.InventoryItem, error)
	UpdateItem(ctx context.Context, params UpdateItemParams) (model.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type inventoryService struct {
	logger        *slog.Logger
	inventoryRepo repository.InventoryRepository
}

func NewInventoryService(logger *slog.Logger, inventoryRepo repository.InventoryRepository) InventoryService {
	return &inventoryService{
		logger:        logger.With(slog.String("service", "inventory")),
		inventoryRepo: inventoryRepo,
	}
}

func (s *inventoryService) CreateItem(ctx context.Context, params CreateItemParams) (model.InventoryItem, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	threshold := model.DefaultLowStockThreshold
	if params.LowStockThreshold != nil {
		threshold = *params.LowStockThreshold
	}

	now := time.Now()
	item := model.InventoryItem{
		ID:                id,
		Name:              params.Name,
		Description:       params.Description,
		Stock:             params.Stock,
		UnitRate:          params.UnitRate,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.inventoryRepo.CreateItem(ctx, item); err != nil {
		return model.InventoryItem{}, fmt.Errorf("inventory repository create item: %w", err)
	}

	return item, nil
}

func (s *inventoryService) ListAllItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := s.inventoryRepo.ListAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory repository list all items: %w", err)
	}

	return items, nil
}

func (s *inventoryService) ListLowStockItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := s.inventoryRepo.ListLowStockItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory repository list low stock items: %w", err)
	}

	return items, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (model.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItem(ctx, id)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("inventory repository get item: %w", err)
	}

	return item, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, params UpdateItemParams) (model.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItem(ctx, params.ID)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("inventory repository get item: %w", err)
	}

	item.Name = params.Name
	item.Description = params.Description
	item.Stock = params.Stock
	item.UnitRate = params.UnitRate
	item.LowStockThreshold = params.LowStockThreshold
	item.UpdatedAt = time.Now()

	if err := s.inventoryRepo.UpdateItem(ctx, item); err != nil {
		return model.InventoryItem{}, fmt.Errorf("inventory repository update item: %w", err)
	}

	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.inventoryRepo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("inventory repository delete item: %w", err)
	}

	return nil
}
