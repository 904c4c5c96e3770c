package domain

import "time"

// PersonRef identifies a persisted person record resolved by exact name.
type PersonRef struct {
	ID   uint   `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"required"`
}

// LineItem is one reconstructed purchase line from a vendor invoice.
// Cost is always VAT-inclusive; shipping rows are the only VAT-exempt case
// and arrive with the printed amount unchanged.
type LineItem struct {
	ID            uint      `json:"id" db:"id"`
	ItemCount     int       `json:"item_count" db:"item_count" validate:"required,min=1"`
	ItemNo        string    `json:"item_no" db:"item_no" validate:"required"`
	ItemDesc      string    `json:"item_desc" db:"item_desc"`
	PersonID      uint      `json:"person_id" db:"person_id"`
	PersonName    string    `json:"person_name" db:"person_name"`
	Cost          float64   `json:"cost" db:"cost" validate:"min=0"`
	OrderPlacedAt string    `json:"order_placed_at" db:"order_placed_at"` // canonical YYYY-MM-DD
	// InvoiceNumber is the number printed on the source document, distinct
	// from the internally allocated settlement invoice.
	InvoiceNumber       string `json:"invoice_number" db:"invoice_number"`
	SettlementInvoiceID uint   `json:"settlement_invoice_id" db:"settlement_invoice_id"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// SettlementInvoice groups the line items owed by one person for one batch
// run. It has no content of its own beyond identity and timestamp.
type SettlementInvoice struct {
	ID        uint      `json:"id" db:"id"`
	Reference string    `json:"reference" db:"reference" validate:"required,uuid"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BatchSummary reports the outcome of one settlement batch run. It replaces
// ad-hoc progress printing so callers decide how to present results.
type BatchSummary struct {
	Documents int `json:"documents"`
	Items     int `json:"items"`
	Invoices  int `json:"invoices"`
	// PersonsCreated counts person records auto-created during the run;
	// those records are missing contact details and need manual follow-up.
	PersonsCreated int `json:"persons_created"`
}
