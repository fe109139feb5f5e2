package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/internal/service"
	"github.com/kounterpro/billing/pkg/validator"
)

type createInventoryItemRequest struct {
	Name              string          `json:"name" validate:"required,min=2,max=100"`
	Description       string          `json:"description" validate:"max=255"`
	Stock             int             `json:"stock" validate:"gte=0"`
	UnitRate          decimal.Decimal `json:"unit_rate"`
	LowStockThreshold *int            `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

type updateInventoryItemRequest struct {
	Name              string          `json:"name" validate:"required,min=2,max=100"`
	Description       string          `json:"description" validate:"max=255"`
	Stock             int             `json:"stock" validate:"gte=0"`
	UnitRate          decimal.Decimal `json:"unit_rate"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
}

type inventoryItemResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Stock             int       `json:"stock"`
	UnitRate          string    `json:"unit_rate"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLowStock        bool      `json:"is_low_stock"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type inventoryHandler struct {
	inventorySvc service.InventoryService
	validator    validator.Validator
	api          *Service
}

func newInventoryHandler(inventorySvc service.InventoryService, v validator.Validator, api *Service) *inventoryHandler {
	return &inventoryHandler{
		inventorySvc: inventorySvc,
		validator:    v,
		api:          api,
	}
}

func (h *inventoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.api.writeBadRequest(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.api.writeError(w, r, err)
		return
	}

	item, err := h.inventorySvc.CreateItem(r.Context(), service.CreateItemParams{
		Name:              req.Name,
		Description:       req.Description,
		Stock:             req.Stock,
		UnitRate:          req.UnitRate,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusCreated, toInventoryItemResponse(item))
}

func (h *inventoryHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventorySvc.ListAllItems(r.Context())
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusOK, toInventoryItemResponses(items))
}

func (h *inventoryHandler) listLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventorySvc.ListLowStockItems(r.Context())
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusOK, toInventoryItemResponses(items))
}

func (h *inventoryHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		h.api.writeBadRequest(w, r, err)
		return
	}

	item, err := h.inventorySvc.GetItem(r.Context(), id)
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusOK, toInventoryItemResponse(item))
}

func (h *inventoryHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		h.api.writeBadRequest(w, r, err)
		return
	}

	var req updateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.api.writeBadRequest(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.api.writeError(w, r, err)
		return
	}

	item, err := h.inventorySvc.UpdateItem(r.Context(), service.UpdateItemParams{
		ID:                id,
		Name:              req.Name,
		Description:       req.Description,
		Stock:             req.Stock,
		UnitRate:          req.UnitRate,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusOK, toInventoryItemResponse(item))
}

func (h *inventoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		h.api.writeBadRequest(w, r, err)
		return
	}

	if err := h.inventorySvc.DeleteItem(r.Context(), id); err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusNoContent, nil)
}

func toInventoryItemResponse(item model.InventoryItem) inventoryItemResponse {
	return inventoryItemResponse{
		ID:                item.ID,
		Name:              item.Name,
		Description:       item.Description,
		Stock:             item.Stock,
		UnitRate:          item.UnitRate.StringFixed(2),
		LowStockThreshold: item.LowStockThreshold,
		IsLowStock:        item.IsLowStock(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func toInventoryItemResponses(items []model.InventoryItem) []inventoryItemResponse {
	res := make([]inventoryItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, toInventoryItemResponse(item))
	}
	return res
}
