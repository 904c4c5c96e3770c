package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"invsettle/internal/errors"
	"invsettle/pkg/contracts/domain"
)

// InvoiceService is the service surface the invoice endpoints need.
type InvoiceService interface {
	ListInvoices(ctx context.Context) ([]domain.SettlementInvoice, error)
	ListItems(ctx context.Context, invoiceID uint) ([]domain.LineItem, error)
}

// InvoiceHandler serves persisted settlement invoices and their items.
type InvoiceHandler struct {
	service InvoiceService
	logger  *slog.Logger
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(service InvoiceService, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "invoice")),
	}
}

// Routes sets up the invoice routes.
func (h *InvoiceHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListInvoices)
	r.Get("/{id}/items", h.ListItems)
	return r
}

// ListInvoices handles GET /api/invoices
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		render.Render(w, r, errors.StorageQueryError(err))
		return
	}
	render.JSON(w, r, invoices)
}

// ListItems handles GET /api/invoices/{id}/items
func (h *InvoiceHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		render.Render(w, r, errors.ErrInvalidParameter)
		return
	}

	items, err := h.service.ListItems(r.Context(), uint(id))
	if err != nil {
		render.Render(w, r, errors.StorageQueryError(err))
		return
	}
	render.JSON(w, r, items)
}
