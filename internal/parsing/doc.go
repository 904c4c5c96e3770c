// Package parsing reconstructs purchase line items from the semi-structured
// tables printed on Farnell vendor invoices.
//
// Source tables have no fixed schema: row counts, column layouts and optional
// annotation rows vary invoice to invoice and page to page. The package walks
// each table strictly in row order, classifies rows by content pattern and
// emits normalized line items.
//
// # Components
//
// 1. Quantity heuristic: recovers the ordered quantity from a flattened row
// 2. Date normalizer: canonicalizes the two historical order-date formats
// 3. Table parser: the row-classification state machine
// 4. Table selector: distinguishes order tables from contact/header tables
//
// # Usage
//
//	parser := parsing.NewParser(resolver, logger)
//	items, err := parser.ParseOrderTable(ctx, block, invoiceNo)
//
// Malformed rows are fatal: a row the state machine cannot place signals an
// invoice layout the parser does not yet understand, and silently dropping
// or mis-attributing a line item has direct financial consequence.
package parsing
