package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/internal/repository"
)

// StockGuard checks requested quantities against current stock before a sale
// and deducts sold quantities after one. Both operations re-read the item so
// they never act on a snapshot held across suspension points.
type StockGuard struct {
	inventoryRepo repository.InventoryRepository
}

func NewStockGuard(inventoryRepo repository.InventoryRepository) *StockGuard {
	return &StockGuard{inventoryRepo: inventoryRepo}
}

// CheckAvailability blocks a sale of requestedQty units of the named item.
// An item with no inventory record is unconstrained: no stock record means
// no block.
func (g *StockGuard) CheckAvailability(ctx context.Context, itemName string, requestedQty int) error {
	item, found, err := g.inventoryRepo.GetItemByName(ctx, itemName)
	if err != nil {
		return fmt.Errorf("get item by name: %w", err)
	}
	if !found {
		return nil
	}

	if item.Stock == 0 {
		return apperr.StockOutOfStockErr.WithMsg(
			fmt.Sprintf("%q is out of stock (0 units available)", item.Name))
	}
	if item.Stock < requestedQty {
		return apperr.StockInsufficientErr.WithMsg(
			fmt.Sprintf("insufficient stock for %q, available: %d, required: %d",
				item.Name, item.Stock, requestedQty))
	}

	return nil
}

// Deduct reduces the named item's stock by soldQty, clamping at zero. It is
// called once per line item strictly after the invoice is durably persisted;
// items without an inventory record are skipped.
func (g *StockGuard) Deduct(ctx context.Context, itemName string, soldQty int) error {
	item, found, err := g.inventoryRepo.GetItemByName(ctx, itemName)
	if err != nil {
		return fmt.Errorf("get item by name: %w", err)
	}
	if !found {
		return nil
	}

	newStock := item.Stock - soldQty
	if newStock < 0 {
		newStock = 0
	}

	if err := g.inventoryRepo.UpdateItemStock(ctx, item.ID, newStock, time.Now()); err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}

	return nil
}
