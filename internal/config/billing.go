package config

type Billing struct {
	// InvoicePrefix is the letter prepended to every invoice number.
	InvoicePrefix string `env:"BILLING_INVOICE_PREFIX" envDefault:"K"`
}
