package domain

import "strings"

// Cell is a single text cell from an extracted invoice table. A cell may
// carry several whitespace-joined values when the upstream extraction merges
// adjacent columns.
type Cell = string

// Row is one table row in document order. Position is significant: the
// leading cell, last cell and second-to-last cell carry fixed semantic roles
// in Farnell order tables.
type Row []Cell

// Leading returns the first cell of the row, or "" for an empty row.
func (r Row) Leading() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Last returns the final cell of the row, or "" for an empty row.
func (r Row) Last() string {
	if len(r) == 0 {
		return ""
	}
	return r[len(r)-1]
}

// SecondToLast returns the next-to-last cell of the row, or "" when the row
// has fewer than two cells.
func (r Row) SecondToLast() string {
	if len(r) < 2 {
		return ""
	}
	return r[len(r)-2]
}

// Tokens flattens the row into its whitespace-separated sub-tokens, cell by
// cell, skipping empty tokens. Extraction occasionally packs several values
// into one cell, so token order across the row is the authoritative order.
func (r Row) Tokens() []string {
	var tokens []string
	for _, cell := range r {
		tokens = append(tokens, strings.Fields(cell)...)
	}
	return tokens
}

// TableBlock is one logical table from one invoice page: an ordered row
// sequence bounded by a header row and an implicit or explicit terminator.
// Blocks are transient; they live only for the duration of one parse pass.
type TableBlock struct {
	// Page is the 1-based source page the block was extracted from.
	Page int `json:"page"`
	Rows []Row `json:"rows"`
}

// Cell returns the cell at (row, col), or "" when the position is outside
// the block. Extracted tables are ragged, so lookups are always bounds-checked.
func (t TableBlock) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
