package extraction

import (
	"log/slog"

	"github.com/xuri/excelize/v2"

	"invsettle/internal/errors"
	"invsettle/pkg/contracts/domain"
)

// WorkbookExtractor reads tables that were pre-extracted into an XLSX
// workbook, one sheet per table block in sheet order. This is the escape
// hatch for invoices whose PDFs defeat positional text extraction: the
// operator exports the tables from a spreadsheet tool and feeds the
// workbook instead.
type WorkbookExtractor struct {
	logger *slog.Logger
}

// NewWorkbookExtractor creates a workbook table extractor.
func NewWorkbookExtractor(logger *slog.Logger) *WorkbookExtractor {
	return &WorkbookExtractor{logger: logger.With(slog.String("component", "workbook_extractor"))}
}

// ExtractTables implements TableExtractor for XLSX workbooks.
func (e *WorkbookExtractor) ExtractTables(path string) ([]domain.TableBlock, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewExtractionError(path, err)
	}
	defer f.Close()

	var blocks []domain.TableBlock
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.NewExtractionError(path, err).
				WithContext("sheet", sheet)
		}

		block := domain.TableBlock{Page: i + 1}
		for _, row := range rows {
			block.Rows = append(block.Rows, domain.Row(row))
		}
		if len(block.Rows) == 0 {
			continue
		}

		e.logger.Debug("sheet extracted",
			slog.String("path", path),
			slog.String("sheet", sheet),
			slog.Int("rows", len(block.Rows)))
		blocks = append(blocks, block)
	}

	return blocks, nil
}
