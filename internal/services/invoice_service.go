package services

import (
	"context"
	"log/slog"

	"invsettle/pkg/contracts/domain"
)

// InvoiceReader is the read-only persistence surface the API serves from.
type InvoiceReader interface {
	ListInvoices(ctx context.Context) ([]domain.SettlementInvoice, error)
	ListItems(ctx context.Context, invoiceID uint) ([]domain.LineItem, error)
}

// InvoiceService exposes persisted settlement invoices and their items.
type InvoiceService struct {
	store  InvoiceReader
	logger *slog.Logger
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(store InvoiceReader, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{
		store:  store,
		logger: logger.With(slog.String("service", "invoice")),
	}
}

// ListInvoices returns all settlement invoices, newest first.
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]domain.SettlementInvoice, error) {
	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list invoices", slog.String("error", err.Error()))
		return nil, err
	}
	return invoices, nil
}

// ListItems returns the line items of one settlement invoice.
func (s *InvoiceService) ListItems(ctx context.Context, invoiceID uint) ([]domain.LineItem, error) {
	items, err := s.store.ListItems(ctx, invoiceID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list items",
			slog.Uint64("invoice_id", uint64(invoiceID)),
			slog.String("error", err.Error()))
		return nil, err
	}
	return items, nil
}
