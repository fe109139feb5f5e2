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
)

type createInvoiceLineItemRequest struct {
	Description   string          `json:"description"`
	SerialNumbers []string        `json:"serial_numbers"`
	Quantity      decimal.Decimal `json:"quantity"`
	RateInclTax   decimal.Decimal `json:"rate_incl_tax"`
}

type createInvoiceRequest struct {
	CustomerName    string                         `json:"customer_name"`
	CustomerAddress string                         `json:"customer_address"`
	CustomerMobile  string                         `json:"customer_mobile"`
	CustomerGST     string                         `json:"customer_gst"`
	TaxRatePercent  decimal.Decimal                `json:"tax_rate_percent"`
	TermsText       string                         `json:"terms_text"`
	Items           []createInvoiceLineItemRequest `json:"items"`
}

type invoiceLineItemResponse struct {
	SlNo          int      `json:"sl_no"`
	Description   string   `json:"description"`
	SerialNumbers []string `json:"serial_numbers,omitempty"`
	Quantity      string   `json:"quantity"`
	RateInclTax   string   `json:"rate_incl_tax"`
	RateExclTax   string   `json:"rate_excl_tax"`
	AmountExclTax string   `json:"amount_excl_tax"`
}

type customerResponse struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Mobile    string `json:"mobile"`
	GSTNumber string `json:"gst_number,omitempty"`
}

// invoiceResponse renders all amounts rounded to two decimals. The stored
// invoice keeps full precision; rounding happens only here.
type invoiceResponse struct {
	ID                uuid.UUID                 `json:"id"`
	InvoiceNumber     string                    `json:"invoice_number"`
	Date              time.Time                 `json:"date"`
	Customer          customerResponse          `json:"customer"`
	Items             []invoiceLineItemResponse `json:"items"`
	TaxRatePercent    string                    `json:"tax_rate_percent"`
	SubtotalExclTax   string                    `json:"subtotal_excl_tax"`
	TaxAmount         string                    `json:"tax_amount"`
	GrandTotalInclTax string                    `json:"grand_total_incl_tax"`
	TotalUnits        string                    `json:"total_units"`
	TermsText         string                    `json:"terms_text"`
	CreatedAt         time.Time                 `json:"created_at"`
}

type invoiceHandler struct {
	invoiceSvc service.InvoiceService
	api        *Service
}

func newInvoiceHandler(invoiceSvc service.InvoiceService, api *Service) *invoiceHandler {
	return &invoiceHandler{
		invoiceSvc: invoiceSvc,
		api:        api,
	}
}

func (h *invoiceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.api.writeBadRequest(w, r, err)
		return
	}

	items := make([]service.CreateInvoiceLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateInvoiceLineItemParams{
			Description:   item.Description,
			SerialNumbers: item.SerialNumbers,
			Quantity:      item.Quantity,
			RateInclTax:   item.RateInclTax,
		})
	}

	invoice, err := h.invoiceSvc.CreateInvoice(r.Context(), service.CreateInvoiceParams{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerMobile:  req.CustomerMobile,
		CustomerGST:     req.CustomerGST,
		TaxRatePercent:  req.TaxRatePercent,
		TermsText:       req.TermsText,
		Items:           items,
	})
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusCreated, toInvoiceResponse(invoice))
}

func (h *invoiceHandler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceSvc.ListAllInvoices(r.Context())
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	items := make([]invoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		items = append(items, toInvoiceResponse(invoice))
	}

	h.api.writeJSON(w, r, http.StatusOK, items)
}

func (h *invoiceHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "invoiceID"))
	if err != nil {
		h.api.writeBadRequest(w, r, err)
		return
	}

	invoice, err := h.invoiceSvc.GetInvoice(r.Context(), id)
	if err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusOK, toInvoiceResponse(invoice))
}

func (h *invoiceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "invoiceID"))
	if err != nil {
		h.api.writeBadRequest(w, r, err)
		return
	}

	if err := h.invoiceSvc.DeleteInvoice(r.Context(), id); err != nil {
		h.api.writeError(w, r, err)
		return
	}

	h.api.writeJSON(w, r, http.StatusNoContent, nil)
}

func toInvoiceResponse(invoice model.Invoice) invoiceResponse {
	items := make([]invoiceLineItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, invoiceLineItemResponse{
			SlNo:          item.SlNo,
			Description:   item.Description,
			SerialNumbers: item.SerialNumbers,
			Quantity:      item.Quantity.String(),
			RateInclTax:   item.RateInclTax.StringFixed(2),
			RateExclTax:   item.RateExclTax.StringFixed(2),
			AmountExclTax: item.AmountExclTax.StringFixed(2),
		})
	}

	return invoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		Date:          invoice.Date,
		Customer: customerResponse{
			Name:      invoice.Customer.Name,
			Address:   invoice.Customer.Address,
			Mobile:    invoice.Customer.Mobile,
			GSTNumber: invoice.Customer.GSTNumber,
		},
		Items:             items,
		TaxRatePercent:    invoice.TaxRatePercent.String(),
		SubtotalExclTax:   invoice.SubtotalExclTax.StringFixed(2),
		TaxAmount:         invoice.TaxAmount.StringFixed(2),
		GrandTotalInclTax: invoice.GrandTotalInclTax.StringFixed(2),
		TotalUnits:        invoice.TotalUnits.String(),
		TermsText:         invoice.TermsText,
		CreatedAt:         invoice.CreatedAt,
	}
}
