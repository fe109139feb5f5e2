package apperr

import "github.com/kounterpro/billing/pkg/zerror"

const (
	ValidationErrorCode       = "VALIDATION_FAILED"
	StockOutOfStockCode       = "STOCK_OUT_OF_STOCK"
	StockInsufficientCode     = "STOCK_INSUFFICIENT"
	InvoiceNumberConflictCode = "INVOICE_NUMBER_CONFLICT"
	InvoiceNotFoundCode       = "INVOICE_NOT_FOUND"
	ItemNotFoundCode          = "ITEM_NOT_FOUND"
	ItemNameTakenCode         = "ITEM_NAME_TAKEN"
)

var (
	// ValidationErr covers every rule in the invoice draft validation. The
	// concrete reason is attached with WithMsg and surfaced verbatim.
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// StockOutOfStockErr blocks a submission when a matched item has zero
	// stock. StockInsufficientErr when the requested quantity exceeds it.
	StockOutOfStockErr   = zerror.NewConflict(StockOutOfStockCode, "item is out of stock")
	StockInsufficientErr = zerror.NewConflict(StockInsufficientCode, "insufficient stock")

	// InvoiceNumberConflictErr maps the unique constraint on invoice_number.
	// Two submissions racing on the same history snapshot compute the same
	// next number; the loser gets this and may resubmit.
	InvoiceNumberConflictErr = zerror.NewConflict(InvoiceNumberConflictCode,
		"invoice number already taken, please resubmit")

	InvoiceNotFoundErr = zerror.NewNotFound(InvoiceNotFoundCode, "invoice not found")
	ItemNotFoundErr    = zerror.NewNotFound(ItemNotFoundCode, "inventory item not found")
	ItemNameTakenErr   = zerror.NewConflict(ItemNameTakenCode, "an item with this name already exists")
)
