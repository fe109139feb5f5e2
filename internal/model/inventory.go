package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is applied when an item is created without an
// explicit replenishment threshold.
const DefaultLowStockThreshold = 10

// InventoryItem is a sellable product. Name is unique case-insensitively.
// Stock is never negative: deduction clamps at zero.
type InventoryItem struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Stock             int             `json:"stock"`
	UnitRate          decimal.Decimal `json:"unit_rate"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the item is at or below its replenishment
// threshold. Used by dashboards, never by the billing flow itself.
func (i InventoryItem) IsLowStock() bool {
	return i.Stock <= i.LowStockThreshold
}
