package event

import "time"

// TopicInvoiceCreated carries one event per persisted invoice. Amounts are
// rendered to two decimals here because the payload is a display boundary.
const TopicInvoiceCreated = "invoice.created"

type InvoiceCreatedEvent struct {
	InvoiceID     string    `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerName  string    `json:"customer_name"`
	GrandTotal    string    `json:"grand_total"`
	TotalUnits    string    `json:"total_units"`
	CreatedAt     time.Time `json:"created_at"`
}
