package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/internal/config"
	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/internal/service"
)

type fakeInvoiceService struct {
	invoice model.Invoice
	err     error
}

func (f *fakeInvoiceService) CreateInvoice(context.Context, service.CreateInvoiceParams) (model.Invoice, error) {
	return f.invoice, f.err
}

func (f *fakeInvoiceService) ListAllInvoices(context.Context) ([]model.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []model.Invoice{f.invoice}, nil
}

func (f *fakeInvoiceService) GetInvoice(context.Context, uuid.UUID) (model.Invoice, error) {
	return f.invoice, f.err
}

func (f *fakeInvoiceService) DeleteInvoice(context.Context, uuid.UUID) error {
	return f.err
}

type fakeInventoryService struct {
	item model.InventoryItem
	err  error
}

func (f *fakeInventoryService) CreateItem(context.Context, service.CreateItemParams) (model.InventoryItem, error) {
	return f.item, f.err
}

func (f *fakeInventoryService) ListAllItems(context.Context) ([]model.InventoryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []model.InventoryItem{f.item}, nil
}

func (f *fakeInventoryService) ListLowStockItems(context.Context) ([]model.InventoryItem, error) {
	return nil, f.err
}

func (f *fakeInventoryService) GetItem(context.Context, uuid.UUID) (model.InventoryItem, error) {
	return f.item, f.err
}

func (f *fakeInventoryService) UpdateItem(context.Context, service.UpdateItemParams) (model.InventoryItem, error) {
	return f.item, f.err
}

func (f *fakeInventoryService) DeleteItem(context.Context, uuid.UUID) error {
	return f.err
}

type fakeHealthChecker struct {
	healthy bool
}

func (f *fakeHealthChecker) IsHealthy(context.Context) (bool, error) {
	return f.healthy, nil
}

func testInvoice(t *testing.T) model.Invoice {
	t.Helper()
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	return model.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "K0008/6/24/25",
		Date:          now,
		Customer: model.Customer{
			Name:    "Asha Traders",
			Address: "12 MG Road, Pune",
			Mobile:  "9876543210",
		},
		Items: []model.InvoiceLineItem{{
			SlNo:          1,
			Description:   "Router",
			Quantity:      decimal.NewFromInt(2),
			RateInclTax:   decimal.RequireFromString("118"),
			RateExclTax:   decimal.RequireFromString("100"),
			AmountExclTax: decimal.RequireFromString("200"),
		}},
		TaxRatePercent:    decimal.RequireFromString("18"),
		SubtotalExclTax:   decimal.RequireFromString("200"),
		TaxAmount:         decimal.RequireFromString("36"),
		GrandTotalInclTax: decimal.RequireFromString("236"),
		TotalUnits:        decimal.NewFromInt(2),
		TermsText:         "Goods once sold will not be taken back.",
		CreatedAt:         now,
	}
}

func newTestRouter(t *testing.T, invoiceSvc service.InvoiceService, inventorySvc service.InventoryService, health *fakeHealthChecker) chi.Router {
	t.Helper()
	if health == nil {
		health = &fakeHealthChecker{healthy: true}
	}

	svc, err := New(config.HTTP{Port: 0}, slog.New(slog.DiscardHandler), invoiceSvc, inventorySvc, health)
	require.NoError(t, err)

	r := chi.NewRouter()
	svc.RegisterHandlers(r)
	return r
}

func TestInvoiceHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{invoice: testInvoice(t)}, &fakeInventoryService{}, nil)

		body := `{
			"customer_name": "Asha Traders",
			"customer_address": "12 MG Road, Pune",
			"customer_mobile": "9876543210",
			"tax_rate_percent": "18",
			"terms_text": "Goods once sold will not be taken back.",
			"items": [{"description": "Router", "quantity": "2", "rate_incl_tax": "118"}]
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var res map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "K0008/6/24/25", res["invoice_number"])
		assert.Equal(t, "236.00", res["grand_total_incl_tax"])
		assert.Equal(t, "36.00", res["tax_amount"])
	})

	t.Run("malformed body", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{}, &fakeInventoryService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		err := apperr.ValidationErr.WithMsg("customer name must be at least 2 characters")
		r := newTestRouter(t, &fakeInvoiceService{err: err}, &fakeInventoryService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var res map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, apperr.ValidationErrorCode, res["code"])
		assert.Equal(t, "customer name must be at least 2 characters", res["message"])
	})

	t.Run("stock conflict maps to 409", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{err: apperr.StockInsufficientErr}, &fakeInventoryService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)

		var res map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, apperr.StockInsufficientCode, res["code"])
	})
}

func TestInvoiceHandler_Get(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{}, &fakeInventoryService{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{err: apperr.InvoiceNotFoundErr}, &fakeInventoryService{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestInventoryHandler_Create(t *testing.T) {
	t.Run("field validation", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{}, &fakeInventoryService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory",
			strings.NewReader(`{"name": "x", "stock": -1}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var res map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "validationError", res["code"])
		assert.NotEmpty(t, res["details"])
	})

	t.Run("name conflict maps to 409", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{}, &fakeInventoryService{err: apperr.ItemNameTakenErr}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory",
			strings.NewReader(`{"name": "Router", "stock": 5, "unit_rate": "118"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHealthz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{}, &fakeInventoryService{}, &fakeHealthChecker{healthy: true})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unhealthy", func(t *testing.T) {
		r := newTestRouter(t, &fakeInvoiceService{}, &fakeInventoryService{}, &fakeHealthChecker{healthy: false})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
