package assembly

import (
	"context"
	"log/slog"

	"invsettle/pkg/contracts/domain"
)

// InvoiceAllocator is the persistence surface the assembler needs: invoice
// identity allocation and the final bulk write.
type InvoiceAllocator interface {
	CreateInvoice(ctx context.Context) (domain.SettlementInvoice, error)
	BulkInsertItems(ctx context.Context, items []domain.LineItem) error
}

// Assembler groups parsed line items by resolved person and assigns one
// settlement invoice per distinct person.
type Assembler struct {
	store  InvoiceAllocator
	logger *slog.Logger
}

// NewAssembler creates an assembler writing through store.
func NewAssembler(store InvoiceAllocator, logger *slog.Logger) *Assembler {
	return &Assembler{
		store:  store,
		logger: logger.With(slog.String("component", "assembler")),
	}
}

// Settle creates one settlement invoice per distinct person among items,
// assigns every item to its person's invoice, then persists all items in
// one bulk operation. No item is ever written with a missing invoice
// reference. Returns the number of invoices created.
//
// Grouping preserves first-appearance order; that order is convenient for
// review but carries no semantic weight.
func (a *Assembler) Settle(ctx context.Context, items []domain.LineItem) (int, error) {
	var order []uint
	groups := make(map[uint][]int)
	for i, item := range items {
		if _, seen := groups[item.PersonID]; !seen {
			order = append(order, item.PersonID)
		}
		groups[item.PersonID] = append(groups[item.PersonID], i)
	}

	for _, personID := range order {
		invoice, err := a.store.CreateInvoice(ctx)
		if err != nil {
			return 0, err
		}
		for _, idx := range groups[personID] {
			items[idx].SettlementInvoiceID = invoice.ID
		}
		a.logger.Debug("settlement invoice assigned",
			slog.Uint64("person_id", uint64(personID)),
			slog.Uint64("invoice_id", uint64(invoice.ID)),
			slog.Int("items", len(groups[personID])))
	}

	if err := a.store.BulkInsertItems(ctx, items); err != nil {
		return 0, err
	}

	return len(order), nil
}
