package exporter

import (
	"strconv"

	"invsettle/pkg/contracts/domain"
)

// itemsHeaders are the columns of the per-batch line item report.
var itemsHeaders = []string{
	"item_count",
	"item_no",
	"item_desc",
	"person",
	"cost",
	"order_placed_at",
	"invoice_number",
	"settlement_invoice_id",
}

// WriteItemsReport writes the reviewable line item report of one batch run.
// The treasurer checks this file before sending out settlement invoices.
func (w *CSVWriter) WriteItemsReport(filename string, items []domain.LineItem) error {
	records := make([][]string, 0, len(items))
	for _, item := range items {
		records = append(records, []string{
			strconv.Itoa(item.ItemCount),
			item.ItemNo,
			item.ItemDesc,
			item.PersonName,
			strconv.FormatFloat(item.Cost, 'f', 2, 64),
			item.OrderPlacedAt,
			item.InvoiceNumber,
			strconv.FormatUint(uint64(item.SettlementInvoiceID), 10),
		})
	}

	return w.WriteCSV(filename, WriteOptions{
		Headers:   itemsHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}
