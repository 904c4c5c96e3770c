package parsing

import (
	"strings"

	"invsettle/pkg/contracts/domain"
)

// orderTableMarker appears in the header of every Farnell order table.
// Contact and address tables on the same pages never carry it.
const orderTableMarker = "Ert Ordernummer"

// IsOrderTable reports whether a table block holds order line items.
// Non-order blocks are never parsed for items.
func IsOrderTable(block domain.TableBlock) bool {
	if len(block.Rows) == 0 {
		return false
	}
	return strings.Contains(block.Rows[0].Leading(), orderTableMarker)
}
