package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/internal/storage/db"
)

// InventoryRepository is the persistence contract for inventory items.
// Names match case-insensitively throughout.
type InventoryRepository interface {
	WithDB(db db.DB) InventoryRepository
	CreateItem(ctx context.Context, item model.InventoryItem) error
	ListAllItems(ctx context.Context) ([]model.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (model.InventoryItem, error)
	// GetItemByName returns found=false when no item matches; absence of a
	// stock record is not an error for the billing flow.
	GetItemByName(ctx context.Context, name string) (item model.InventoryItem, found bool, err error)
	UpdateItem(ctx context.Context, item model.InventoryItem) error
	UpdateItemStock(ctx context.Context, id uuid.UUID, newStock int, updatedAt time.Time) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type inventoryRepository struct {
	db db.DB
}

func NewInventoryRepository(db db.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r inventoryRepository) WithDB(db db.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `
	id, name, description, stock, unit_rate, low_stock_threshold,
	created_at, updated_at`

func (r inventoryRepository) CreateItem(ctx context.Context, item model.InventoryItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory_items (
			id, name, description, stock, unit_rate, low_stock_threshold,
			created_at, updated_at
		) VALUES (
			@id, @name, @description, @stock, @unit_rate, @low_stock_threshold,
			@created_at, @updated_at
		)`, pgx.NamedArgs{
		"id":                  item.ID,
		"name":                item.Name,
		"description":         item.Description,
		"stock":               item.Stock,
		"unit_rate":           item.UnitRate,
		"low_stock_threshold": item.LowStockThreshold,
		"created_at":          item.CreatedAt,
		"updated_at":          item.UpdatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ItemNameTakenErr.WrapParent(err)
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}

	return nil
}

func (r inventoryRepository) ListAllItems(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items ORDER BY LOWER(name)`)
	if err != nil {
		return nil, fmt.Errorf("query inventory items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r inventoryRepository) ListLowStockItems(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE stock <= low_stock_threshold
		ORDER BY stock, LOWER(name)`)
	if err != nil {
		return nil, fmt.Errorf("query low stock items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r inventoryRepository) GetItem(ctx context.Context, id uuid.UUID) (model.InventoryItem, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = @id`,
		pgx.NamedArgs{"id": id})

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InventoryItem{}, apperr.ItemNotFoundErr
		}
		return model.InventoryItem{}, err
	}

	return item, nil
}

func (r inventoryRepository) GetItemByName(ctx context.Context, name string) (model.InventoryItem, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE LOWER(name) = LOWER(@name)`,
		pgx.NamedArgs{"name": name})

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InventoryItem{}, false, nil
		}
		return model.InventoryItem{}, false, err
	}

	return item, true, nil
}

func (r inventoryRepository) UpdateItem(ctx context.Context, item model.InventoryItem) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_items
		SET name                = @name,
		    description         = @description,
		    stock               = @stock,
		    unit_rate           = @unit_rate,
		    low_stock_threshold = @low_stock_threshold,
		    updated_at          = @updated_at
		WHERE id = @id`, pgx.NamedArgs{
		"id":                  item.ID,
		"name":                item.Name,
		"description":         item.Description,
		"stock":               item.Stock,
		"unit_rate":           item.UnitRate,
		"low_stock_threshold": item.LowStockThreshold,
		"updated_at":          item.UpdatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ItemNameTakenErr.WrapParent(err)
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ItemNotFoundErr
	}

	return nil
}

func (r inventoryRepository) UpdateItemStock(ctx context.Context, id uuid.UUID, newStock int, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_items
		SET stock = @stock, updated_at = @updated_at
		WHERE id = @id`, pgx.NamedArgs{
		"id":         id,
		"stock":      newStock,
		"updated_at": updatedAt,
	})
	if err != nil {
		return fmt.Errorf("update inventory item stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ItemNotFoundErr
	}

	return nil
}

func (r inventoryRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM inventory_items WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ItemNotFoundErr
	}

	return nil
}

func collectItems(rows pgx.Rows) ([]model.InventoryItem, error) {
	items := make([]model.InventoryItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory items: %w", err)
	}

	return items, nil
}

func scanItem(row pgx.Row) (model.InventoryItem, error) {
	var item model.InventoryItem

	if err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Stock,
		&item.UnitRate, &item.LowStockThreshold,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InventoryItem{}, err
		}
		return model.InventoryItem{}, fmt.Errorf("scan inventory item: %w", err)
	}

	return item, nil
}
