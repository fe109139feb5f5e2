package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kounterpro/billing/internal/billing"
	"github.com/kounterpro/billing/internal/event"
	"github.com/kounterpro/billing/internal/model"
	"github.com/kounterpro/billing/internal/repository"
	"github.com/kounterpro/billing/internal/storage/db"
	"github.com/kounterpro/billing/pkg/outbox"
	"github.com/kounterpro/billing/pkg/ptr"
)

type CreateInvoiceLineItemParams struct {
	Description   string
	SerialNumbers []string
	Quantity      decimal.Decimal
	RateInclTax   decimal.Decimal
}

type CreateInvoiceParams struct {
	CustomerName    string
	CustomerAddress string
	CustomerMobile  string
	CustomerGST     string
	TaxRatePercent  decimal.Decimal
	TermsText       string
	Items           []CreateInvoiceLineItemParams
}

type InvoiceService interface {
	CreateInvoice(ctx context.Context, params CreateInvoiceParams) (model.Invoice, error)
	ListAllInvoices(ctx context.Context) ([]model.Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (model.Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type invoiceService struct {
	db            db.DB
	logger        *slog.Logger
	invoiceRepo   repository.InvoiceRepository
	outboxMsgRepo repository.OutboxMsgRepository
	stockGuard    *StockGuard
	invoicePrefix string
}

func NewInvoiceService(
	db db.DB,
	logger *slog.Logger,
	invoiceRepo repository.InvoiceRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
	stockGuard *StockGuard,
	invoicePrefix string,
) InvoiceService {
	return &invoiceService{
		db:            db,
		logger:        logger.With(slog.String("service", "invoice")),
		invoiceRepo:   invoiceRepo,
		outboxMsgRepo: outboxMsgRepo,
		stockGuard:    stockGuard,
		invoicePrefix: invoicePrefix,
	}
}

// CreateInvoice runs one submission through the billing pipeline:
// validate, compute the tax breakdown, check stock, number, persist, then
// deduct stock. Every step before the save is side-effect free; a failure
// anywhere up to and including the save leaves nothing written.
func (s *invoiceService) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (model.Invoice, error) {
	items := make([]billing.LineItemInput, 0, len(params.Items))
	for _, item := range params.Items {
		items = append(items, billing.LineItemInput{
			Description:   item.Description,
			SerialNumbers: item.SerialNumbers,
			Quantity:      item.Quantity,
			RateInclTax:   item.RateInclTax,
		})
	}

	invoice, err := billing.ValidateDraft(billing.InvoiceInput{
		CustomerName:    params.CustomerName,
		CustomerAddress: params.CustomerAddress,
		CustomerMobile:  params.CustomerMobile,
		CustomerGST:     params.CustomerGST,
		TaxRatePercent:  params.TaxRatePercent,
		TermsText:       params.TermsText,
		Items:           items,
	})
	if err != nil {
		return model.Invoice{}, err
	}

	breakdown := billing.ComputeTotals(invoice.Items, invoice.TaxRatePercent)
	invoice.SubtotalExclTax = breakdown.SubtotalExclTax
	invoice.TaxAmount = breakdown.TaxAmount
	invoice.GrandTotalInclTax = breakdown.GrandTotalInclTax
	invoice.TotalUnits = breakdown.TotalUnits

	for _, item := range invoice.Items {
		if err := s.stockGuard.CheckAvailability(ctx, item.Description, int(item.Quantity.IntPart())); err != nil {
			return model.Invoice{}, err
		}
	}

	numbers, err := s.invoiceRepo.ListInvoiceNumbers(ctx)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("invoice repository list invoice numbers: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Invoice{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	invoice.ID = id
	invoice.InvoiceNumber = billing.NextInvoiceNumber(s.invoicePrefix, numbers, now)
	invoice.Date = now
	invoice.CreatedAt = now

	ev := event.InvoiceCreatedEvent{
		InvoiceID:     invoice.ID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerName:  invoice.Customer.Name,
		GrandTotal:    invoice.GrandTotalInclTax.StringFixed(2),
		TotalUnits:    invoice.TotalUnits.String(),
		CreatedAt:     invoice.CreatedAt,
	}
	evBytes, err := json.Marshal(ev)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("marshal event: %w", err)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.invoiceRepo.
			WithDB(db).
			CreateInvoice(ctx, invoice); err != nil {
			return fmt.Errorf("invoice repository create invoice: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:        event.TopicInvoiceCreated,
				Headers:      outbox.BuildHeaders(ctx),
				Payload:      evBytes,
				PartitionKey: ptr.New(invoice.InvoiceNumber),
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Invoice{}, fmt.Errorf("db with tx: %w", err)
	}

	// The invoice is durable from here on. A deduction failure leaves
	// inventory stale but never rolls the invoice back; the remaining lines
	// are still attempted.
	for _, item := range invoice.Items {
		if err := s.stockGuard.Deduct(ctx, item.Description, int(item.Quantity.IntPart())); err != nil {
			s.logger.ErrorContext(ctx, "stock deduction failed after invoice save",
				slog.String("invoice_number", invoice.InvoiceNumber),
				slog.String("item", item.Description),
				slog.Any("error", err))
		}
	}

	return invoice, nil
}

func (s *invoiceService) ListAllInvoices(ctx context.Context) ([]model.Invoice, error) {
	invoices, err := s.invoiceRepo.ListAllInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoice repository list all invoices: %w", err)
	}

	return invoices, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (model.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoice(ctx, id)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("invoice repository get invoice: %w", err)
	}

	return invoice, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if err := s.invoiceRepo.DeleteInvoice(ctx, id); err != nil {
		return fmt.Errorf("invoice repository delete invoice: %w", err)
	}

	return nil
}
