// Package extraction renders invoice documents into ordered table blocks of
// text cells, the input shape the parsing package consumes.
//
// Two sources are supported:
//
//  1. PDF invoices, read directly with github.com/ledongthuc/pdf. Text
//     fragments are grouped into rows by vertical position, rows into cells
//     by horizontal gaps, and rows into table blocks at large vertical gaps.
//  2. XLSX workbooks holding pre-extracted tables, one sheet per table
//     block, for invoices whose PDFs defeat the text extractor.
//
// Extraction accuracy is best-effort plumbing; all semantic decisions about
// the extracted rows belong to the parsing package.
package extraction
