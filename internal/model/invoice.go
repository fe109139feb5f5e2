package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the party billed on an invoice. Mobile is stored normalized to
// its bare 10-digit form, GSTNumber upper-cased or empty.
type Customer struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Mobile    string `json:"mobile"`
	GSTNumber string `json:"gst_number,omitempty"`
}

// InvoiceLineItem is one row of an invoice. The rate entered by the operator
// is tax-inclusive; the tax-exclusive rate and amount are derived by the tax
// calculator and carried in full precision.
type InvoiceLineItem struct {
	SlNo          int             `json:"sl_no"`
	Description   string          `json:"description"`
	SerialNumbers []string        `json:"serial_numbers,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	RateInclTax   decimal.Decimal `json:"rate_incl_tax"`
	RateExclTax   decimal.Decimal `json:"rate_excl_tax"`
	AmountExclTax decimal.Decimal `json:"amount_excl_tax"`
}

// Invoice is a persisted sale. It is assembled entirely in memory from one
// submission and immutable once saved; the only mutation is deletion.
type Invoice struct {
	ID                uuid.UUID         `json:"id"`
	InvoiceNumber     string            `json:"invoice_number"`
	Date              time.Time         `json:"date"`
	Customer          Customer          `json:"customer"`
	Items             []InvoiceLineItem `json:"items"`
	TaxRatePercent    decimal.Decimal   `json:"tax_rate_percent"`
	SubtotalExclTax   decimal.Decimal   `json:"subtotal_excl_tax"`
	TaxAmount         decimal.Decimal   `json:"tax_amount"`
	GrandTotalInclTax decimal.Decimal   `json:"grand_total_incl_tax"`
	TotalUnits        decimal.Decimal   `json:"total_units"`
	TermsText         string            `json:"terms_text"`
	CreatedAt         time.Time         `json:"created_at"`
}
