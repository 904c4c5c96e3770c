package assembly

import (
	"context"
	"fmt"
	"log/slog"

	"invsettle/internal/extraction"
	"invsettle/internal/infrastructure"
	"invsettle/internal/parsing"
	"invsettle/pkg/contracts/domain"
)

// invoiceNumberRow and invoiceNumberCol locate the printed invoice number
// in the first extracted table of every Farnell invoice, independent of
// table type.
const (
	invoiceNumberRow = 0
	invoiceNumberCol = 4
)

// Store is the full persistence surface a batch run needs.
type Store interface {
	parsing.PersonResolver
	InvoiceAllocator
}

// Pipeline runs one settlement batch over a list of invoice documents.
type Pipeline struct {
	extractor extraction.TableExtractor
	store     Store
	logger    *slog.Logger
}

// NewPipeline creates a batch pipeline.
func NewPipeline(extractor extraction.TableExtractor, store Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		store:     store,
		logger:    logger.With(slog.String("component", "pipeline")),
	}
}

// countingResolver counts person records created during the run so the
// summary can report how many need manual contact-detail follow-up.
type countingResolver struct {
	inner   parsing.PersonResolver
	created int
}

func (r *countingResolver) ResolvePerson(ctx context.Context, name string) (domain.PersonRef, bool, error) {
	ref, created, err := r.inner.ResolvePerson(ctx, name)
	if created {
		r.created++
	}
	return ref, created, err
}

// Run parses every document, assembles settlement invoices and persists the
// result. Documents are processed one at a time in the given order; order
// does not affect correctness since every value is derived from a
// document's own tables.
//
// Parse errors are fatal for the entire batch and name the offending file:
// a malformed row means an invoice layout the parser does not understand,
// which a human must triage before anything is written.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*domain.BatchSummary, error) {
	resolver := &countingResolver{inner: p.store}
	parser := parsing.NewParser(resolver, p.logger)

	var items []domain.LineItem
	for _, path := range paths {
		p.logger.Info("parsing document", slog.String("path", path))

		parsed, err := p.parseDocument(ctx, parser, path)
		if err != nil {
			return nil, fmt.Errorf("processing %s: %w", path, err)
		}
		items = append(items, parsed...)
		infrastructure.DocumentsProcessed.Inc()
	}

	assembler := NewAssembler(p.store, p.logger)
	invoices, err := assembler.Settle(ctx, items)
	if err != nil {
		return nil, err
	}

	infrastructure.ItemsCreated.Add(float64(len(items)))
	infrastructure.InvoicesCreated.Add(float64(invoices))

	summary := &domain.BatchSummary{
		Documents:      len(paths),
		Items:          len(items),
		Invoices:       invoices,
		PersonsCreated: resolver.created,
	}
	p.logger.Info("batch complete",
		slog.Int("documents", summary.Documents),
		slog.Int("items", summary.Items),
		slog.Int("invoices", summary.Invoices),
		slog.Int("persons_created", summary.PersonsCreated))
	return summary, nil
}

// parseDocument extracts one document's tables and parses every order table
// among them.
func (p *Pipeline) parseDocument(ctx context.Context, parser *parsing.Parser, path string) ([]domain.LineItem, error) {
	blocks, err := p.extractor.ExtractTables(path)
	if err != nil {
		return nil, err
	}

	// The printed invoice number sits at a fixed cell of the first table,
	// whatever kind of table that is. An empty read is tolerated; order
	// tables are still parsed and the item rows keep an empty reference.
	var invoiceNo string
	if len(blocks) > 0 {
		invoiceNo = blocks[0].Cell(invoiceNumberRow, invoiceNumberCol)
	}
	if invoiceNo == "" {
		p.logger.Warn("invoice number cell is empty", slog.String("path", path))
	}

	var items []domain.LineItem
	for _, block := range blocks {
		if !parsing.IsOrderTable(block) {
			continue
		}
		parsed, err := parser.ParseOrderTable(ctx, block, invoiceNo)
		if err != nil {
			return nil, err
		}
		items = append(items, parsed...)
	}

	return items, nil
}
