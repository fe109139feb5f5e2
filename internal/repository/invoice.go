package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/internal/storage/db"
)

// InvoiceRepository is the persistence contract for invoices. Invoices are
// immutable once created; the only mutation is deletion.
type InvoiceRepository interface {
	WithDB(db db.DB) InvoiceRepository
	CreateInvoice(ctx context.Context, invoice model.Invoice) error
	ListAllInvoices(ctx context.Context) ([]model.Invoice, error)
	ListInvoiceNumbers(ctx context.Context) ([]string, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (model.Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type invoiceRepository struct {
	db db.DB
}

func NewInvoiceRepository(db db.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r invoiceRepository) WithDB(db db.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `
	id, invoice_number, date,
	customer_name, customer_address, customer_mobile, customer_gst,
	items, tax_rate_percent,
	subtotal_excl_tax, tax_amount, grand_total_incl_tax,
	total_units, terms_text, created_at`

func (r invoiceRepository) CreateInvoice(ctx context.Context, invoice model.Invoice) error {
	itemsBytes, err := json.Marshal(invoice.Items)
	if err != nil {
		return fmt.Errorf("marshal invoice items: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO invoices (
			id, invoice_number, date,
			customer_name, customer_address, customer_mobile, customer_gst,
			items, tax_rate_percent,
			subtotal_excl_tax, tax_amount, grand_total_incl_tax,
			total_units, terms_text, created_at
		) VALUES (
			@id, @invoice_number, @date,
			@customer_name, @customer_address, @customer_mobile, @customer_gst,
			@items, @tax_rate_percent,
			@subtotal_excl_tax, @tax_amount, @grand_total_incl_tax,
			@total_units, @terms_text, @created_at
		)`, pgx.NamedArgs{
		"id":                   invoice.ID,
		"invoice_number":       invoice.InvoiceNumber,
		"date":                 invoice.Date,
		"customer_name":        invoice.Customer.Name,
		"customer_address":     invoice.Customer.Address,
		"customer_mobile":      invoice.Customer.Mobile,
		"customer_gst":         invoice.Customer.GSTNumber,
		"items":                itemsBytes,
		"tax_rate_percent":     invoice.TaxRatePercent,
		"subtotal_excl_tax":    invoice.SubtotalExclTax,
		"tax_amount":           invoice.TaxAmount,
		"grand_total_incl_tax": invoice.GrandTotalInclTax,
		"total_units":          invoice.TotalUnits,
		"terms_text":           invoice.TermsText,
		"created_at":           invoice.CreatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.InvoiceNumberConflictErr.WrapParent(err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	return nil
}

func (r invoiceRepository) ListAllInvoices(ctx context.Context) ([]model.Invoice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]model.Invoice, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

func (r invoiceRepository) ListInvoiceNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT invoice_number FROM invoices`)
	if err != nil {
		return nil, fmt.Errorf("query invoice numbers: %w", err)
	}
	defer rows.Close()

	numbers := make([]string, 0)
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("scan invoice number: %w", err)
		}
		numbers = append(numbers, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice numbers: %w", err)
	}

	return numbers, nil
}

func (r invoiceRepository) GetInvoice(ctx context.Context, id uuid.UUID) (model.Invoice, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = @id`,
		pgx.NamedArgs{"id": id})

	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Invoice{}, apperr.InvoiceNotFoundErr
		}
		return model.Invoice{}, err
	}

	return invoice, nil
}

func (r invoiceRepository) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM invoices WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.InvoiceNotFoundErr
	}

	return nil
}

func scanInvoice(row pgx.Row) (model.Invoice, error) {
	var (
		invoice    model.Invoice
		itemsBytes []byte
	)

	if err := row.Scan(
		&invoice.ID, &invoice.InvoiceNumber, &invoice.Date,
		&invoice.Customer.Name, &invoice.Customer.Address,
		&invoice.Customer.Mobile, &invoice.Customer.GSTNumber,
		&itemsBytes, &invoice.TaxRatePercent,
		&invoice.SubtotalExclTax, &invoice.TaxAmount, &invoice.GrandTotalInclTax,
		&invoice.TotalUnits, &invoice.TermsText, &invoice.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Invoice{}, err
		}
		return model.Invoice{}, fmt.Errorf("scan invoice: %w", err)
	}

	if err := json.Unmarshal(itemsBytes, &invoice.Items); err != nil {
		return model.Invoice{}, fmt.Errorf("unmarshal invoice items: %w", err)
	}

	return invoice, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
