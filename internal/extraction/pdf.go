package extraction

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"invsettle/internal/errors"
	"invsettle/pkg/contracts/domain"
)

const (
	// rowTolerance groups text fragments whose baselines sit within this
	// many points into the same row.
	rowTolerance = 2.0

	// cellGap is the minimum horizontal whitespace, in points, that
	// separates two cells. Smaller gaps are word spacing inside one cell.
	cellGap = 12.0

	// blockGap is the minimum vertical whitespace, in points, between two
	// rows that starts a new table block.
	blockGap = 18.0
)

// PDFExtractor reads invoice PDFs with ledongthuc/pdf and reconstructs the
// printed tables from text fragment positions.
type PDFExtractor struct {
	logger *slog.Logger
}

// NewPDFExtractor creates a PDF table extractor.
func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger.With(slog.String("component", "pdf_extractor"))}
}

// fragment is one positioned text run from a PDF page.
type fragment struct {
	text string
	x    float64
	y    float64
	w    float64
}

// textRow is a reconstructed visual row before cell splitting.
type textRow struct {
	y     float64
	frags []fragment
}

// ExtractTables implements TableExtractor for PDF invoices. Blocks are
// returned in reading order across all pages.
func (e *PDFExtractor) ExtractTables(path string) ([]domain.TableBlock, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, errors.NewExtractionError(path, err)
	}
	defer f.Close()

	var blocks []domain.TableBlock
	for pageNo := 1; pageNo <= reader.NumPage(); pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}

		var frags []fragment
		for _, t := range page.Content().Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			frags = append(frags, fragment{text: t.S, x: t.X, y: t.Y, w: t.W})
		}

		pageBlocks := groupFragments(frags, pageNo)
		e.logger.Debug("page extracted",
			slog.String("path", path),
			slog.Int("page", pageNo),
			slog.Int("fragments", len(frags)),
			slog.Int("blocks", len(pageBlocks)))
		blocks = append(blocks, pageBlocks...)
	}

	return blocks, nil
}

// groupFragments turns a page's positioned fragments into table blocks:
// fragments into rows by Y within a tolerance, rows into cells at large X
// gaps, and consecutive rows into one block until a large vertical gap.
func groupFragments(frags []fragment, pageNo int) []domain.TableBlock {
	if len(frags) == 0 {
		return nil
	}

	var rows []textRow
	for _, f := range frags {
		placed := false
		for i := range rows {
			if abs(rows[i].y-f.y) < rowTolerance {
				rows[i].frags = append(rows[i].frags, f)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: f.y, frags: []fragment{f}})
		}
	}

	// PDF origin is bottom-left, so reading order is descending Y.
	sort.Slice(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	var blocks []domain.TableBlock
	current := domain.TableBlock{Page: pageNo}
	for i, row := range rows {
		if i > 0 && rows[i-1].y-row.y > blockGap && len(current.Rows) > 0 {
			blocks = append(blocks, current)
			current = domain.TableBlock{Page: pageNo}
		}
		current.Rows = append(current.Rows, splitCells(row.frags))
	}
	if len(current.Rows) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

// splitCells orders a row's fragments left to right and merges runs
// separated by less than cellGap into single cells.
func splitCells(frags []fragment) domain.Row {
	sort.Slice(frags, func(i, j int) bool { return frags[i].x < frags[j].x })

	var row domain.Row
	var cell strings.Builder
	var prevEnd float64

	for i, f := range frags {
		if i > 0 && f.x-prevEnd > cellGap {
			row = append(row, strings.TrimSpace(cell.String()))
			cell.Reset()
		}
		if cell.Len() > 0 {
			cell.WriteString(" ")
		}
		cell.WriteString(f.text)
		prevEnd = f.x + f.w
	}
	if cell.Len() > 0 {
		row = append(row, strings.TrimSpace(cell.String()))
	}

	return row
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
