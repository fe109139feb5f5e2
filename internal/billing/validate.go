package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/pkg/validator"
)

var (
	maxQuantity = decimal.NewFromInt(9999)
	maxRate     = decimal.NewFromInt(9999999)
	maxTaxRate  = decimal.NewFromInt(50)
)

// LineItemInput is one raw invoice row as submitted.
type LineItemInput struct {
	Description   string
	SerialNumbers []string
	Quantity      decimal.Decimal
	RateInclTax   decimal.Decimal
}

// InvoiceInput is a raw invoice submission before validation.
type InvoiceInput struct {
	CustomerName    string
	CustomerAddress string
	CustomerMobile  string
	CustomerGST     string
	TaxRatePercent  decimal.Decimal
	TermsText       string
	Items           []LineItemInput
}

// ValidateDraft checks in, rule by rule in a fixed order, and returns a
// normalized invoice draft. The first failing rule wins and is returned as a
// validation error whose message is surfaced verbatim to the caller. The
// draft carries no derived amounts yet; ComputeTotals fills those.
func ValidateDraft(in InvoiceInput) (model.Invoice, error) {
	var draft model.Invoice

	name := strings.TrimSpace(in.CustomerName)
	if len(name) < 2 {
		return draft, validationErr("customer name must be at least 2 characters")
	}
	if len(name) > 100 {
		return draft, validationErr("customer name must not exceed 100 characters")
	}

	address := strings.TrimSpace(in.CustomerAddress)
	if len(address) < 5 {
		return draft, validationErr("customer address must be at least 5 characters")
	}
	if len(address) > 255 {
		return draft, validationErr("customer address must not exceed 255 characters")
	}

	if strings.TrimSpace(in.CustomerMobile) == "" {
		return draft, validationErr("mobile number is required")
	}
	mobile, ok := validator.NormalizeMobile(in.CustomerMobile)
	if !ok {
		return draft, validationErr("please enter a valid 10-digit mobile number (starting with 6-9)")
	}

	var gst string
	if strings.TrimSpace(in.CustomerGST) != "" {
		gst, ok = validator.NormalizeGSTIN(in.CustomerGST)
		if !ok {
			return draft, validationErr("invalid GST format, example: 22AAAAA0000A1Z5")
		}
	}

	if in.TaxRatePercent.IsNegative() || in.TaxRatePercent.GreaterThan(maxTaxRate) {
		return draft, validationErr("tax rate must be between 0 and 50")
	}

	terms := strings.TrimSpace(in.TermsText)
	if len(terms) < 10 {
		return draft, validationErr("terms and conditions must be at least 10 characters")
	}

	if len(in.Items) == 0 {
		return draft, validationErr("at least one item is required")
	}

	items := make([]model.InvoiceLineItem, 0, len(in.Items))
	for i, raw := range in.Items {
		item, err := validateLineItem(i+1, raw)
		if err != nil {
			return draft, err
		}
		items = append(items, item)
	}

	draft = model.Invoice{
		Customer: model.Customer{
			Name:      name,
			Address:   address,
			Mobile:    mobile,
			GSTNumber: gst,
		},
		Items:          items,
		TaxRatePercent: in.TaxRatePercent,
		TermsText:      terms,
	}

	return draft, nil
}

func validateLineItem(slNo int, raw LineItemInput) (model.InvoiceLineItem, error) {
	var item model.InvoiceLineItem

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		return item, validationErr(fmt.Sprintf("item %d: description is required", slNo))
	}
	if len(description) > 100 {
		return item, validationErr(fmt.Sprintf("item %d: description too long (max 100 characters)", slNo))
	}

	if !raw.Quantity.IsPositive() {
		return item, validationErr(fmt.Sprintf("item %d: quantity must be greater than 0", slNo))
	}
	if !raw.Quantity.IsInteger() {
		return item, validationErr(fmt.Sprintf("item %d: quantity must be a whole number", slNo))
	}
	if raw.Quantity.GreaterThan(maxQuantity) {
		return item, validationErr(fmt.Sprintf("item %d: quantity too large (max 9999)", slNo))
	}

	if !raw.RateInclTax.IsPositive() {
		return item, validationErr(fmt.Sprintf("item %d: rate must be greater than 0", slNo))
	}
	if raw.RateInclTax.GreaterThan(maxRate) {
		return item, validationErr(fmt.Sprintf("item %d: rate too large", slNo))
	}

	serials := nonEmptySerials(raw.SerialNumbers)
	if len(serials) > 0 && raw.Quantity.GreaterThan(one) &&
		!raw.Quantity.Equal(decimal.NewFromInt(int64(len(serials)))) {
		return item, validationErr(fmt.Sprintf(
			"item %d: number of serial numbers (%d) must match quantity (%s)",
			slNo, len(serials), raw.Quantity.String()))
	}

	item = model.InvoiceLineItem{
		SlNo:          slNo,
		Description:   description,
		SerialNumbers: serials,
		Quantity:      raw.Quantity,
		RateInclTax:   raw.RateInclTax,
	}

	return item, nil
}

func nonEmptySerials(serials []string) []string {
	out := make([]string, 0, len(serials))
	for _, s := range serials {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func validationErr(msg string) error {
	return apperr.ValidationErr.WithMsg(msg)
}
