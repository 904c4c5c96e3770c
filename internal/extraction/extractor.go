package extraction

import (
	"log/slog"
	"path/filepath"
	"strings"

	"invsettle/internal/errors"
	"invsettle/pkg/contracts/domain"
)

// TableExtractor renders one document into its ordered table blocks.
type TableExtractor interface {
	ExtractTables(path string) ([]domain.TableBlock, error)
}

// Dispatcher routes a document to the extractor matching its file type.
type Dispatcher struct {
	pdf      TableExtractor
	workbook TableExtractor
}

// NewDispatcher wires the default PDF and workbook extractors.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		pdf:      NewPDFExtractor(logger),
		workbook: NewWorkbookExtractor(logger),
	}
}

// ExtractTables implements TableExtractor by file extension.
func (d *Dispatcher) ExtractTables(path string) ([]domain.TableBlock, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return d.pdf.ExtractTables(path)
	case ".xlsx":
		return d.workbook.ExtractTables(path)
	default:
		return nil, errors.NewExtractionError(path, nil).
			WithContext("reason", "unsupported file extension")
	}
}
