package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/internal/repository"
	"github.com/kounterpro/billing/internal/storage/db"
)

// fakeDB satisfies db.DB for service tests. The repositories below are pure
// in-memory fakes, so the query surface is never reached; WithTx just runs
// the function against the same fake.
type fakeDB struct {
	txErr error
}

func (f *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("fakeDB: Exec not expected")
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("fakeDB: Query not expected")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("fakeDB: QueryRow not expected")
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return txFunc(f)
}

type fakeInvoiceRepo struct {
	invoices  []model.Invoice
	numbers   []string
	createErr error
	listErr   error
}

func (r *fakeInvoiceRepo) WithDB(db.DB) repository.InvoiceRepository { return r }

func (r *fakeInvoiceRepo) CreateInvoice(_ context.Context, invoice model.Invoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.invoices = append(r.invoices, invoice)
	r.numbers = append(r.numbers, invoice.InvoiceNumber)
	return nil
}

func (r *fakeInvoiceRepo) ListAllInvoices(context.Context) ([]model.Invoice, error) {
	return r.invoices, nil
}

func (r *fakeInvoiceRepo) ListInvoiceNumbers(context.Context) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.numbers, nil
}

func (r *fakeInvoiceRepo) GetInvoice(_ context.Context, id uuid.UUID) (model.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return model.Invoice{}, apperr.InvoiceNotFoundErr
}

func (r *fakeInvoiceRepo) DeleteInvoice(_ context.Context, id uuid.UUID) error {
	for i, inv := range r.invoices {
		if inv.ID == id {
			r.invoices = append(r.invoices[:i], r.invoices[i+1:]...)
			return nil
		}
	}
	return apperr.InvoiceNotFoundErr
}

type fakeInventoryRepo struct {
	items          []model.InventoryItem
	updateStockErr error
}

func (r *fakeInventoryRepo) WithDB(db.DB) repository.InventoryRepository { return r }

func (r *fakeInventoryRepo) CreateItem(_ context.Context, item model.InventoryItem) error {
	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, item.Name) {
			return apperr.ItemNameTakenErr
		}
	}
	r.items = append(r.items, item)
	return nil
}

func (r *fakeInventoryRepo) ListAllItems(context.Context) ([]model.InventoryItem, error) {
	return r.items, nil
}

func (r *fakeInventoryRepo) ListLowStockItems(context.Context) ([]model.InventoryItem, error) {
	low := make([]model.InventoryItem, 0)
	for _, item := range r.items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}

func (r *fakeInventoryRepo) GetItem(_ context.Context, id uuid.UUID) (model.InventoryItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.InventoryItem{}, apperr.ItemNotFoundErr
}

func (r *fakeInventoryRepo) GetItemByName(_ context.Context, name string) (model.InventoryItem, bool, error) {
	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			return item, true, nil
		}
	}
	return model.InventoryItem{}, false, nil
}

func (r *fakeInventoryRepo) UpdateItem(_ context.Context, item model.InventoryItem) error {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	return apperr.ItemNotFoundErr
}

func (r *fakeInventoryRepo) UpdateItemStock(_ context.Context, id uuid.UUID, newStock int, updatedAt time.Time) error {
	if r.updateStockErr != nil {
		return r.updateStockErr
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Stock = newStock
			r.items[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return apperr.ItemNotFoundErr
}

func (r *fakeInventoryRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperr.ItemNotFoundErr
}

type fakeOutboxMsgRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxMsgRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxMsgRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxMsgRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxMsgRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}
