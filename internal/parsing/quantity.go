package parsing

import (
	"strconv"

	"invsettle/internal/errors"
	"invsettle/pkg/contracts/domain"
)

// ItemCount recovers the ordered quantity from a row of an order table.
//
// The quantity is the first integer token that appears after at least one
// integer has been seen and at least one non-integer token has intervened.
// The first integer on the line is a different field (line index or unit
// price) and must be skipped. The rule is deliberately kept verbatim from
// the layouts observed so far; do not "improve" it without fresh invoices
// to verify against.
func ItemCount(row domain.Row) (int, error) {
	hasFirstNumber := false
	nextNumberIsCount := false

	for _, token := range row.Tokens() {
		val, err := strconv.Atoi(token)
		if err != nil {
			if hasFirstNumber {
				nextNumberIsCount = true
			}
			continue
		}
		if nextNumberIsCount {
			return val, nil
		}
		if !hasFirstNumber {
			hasFirstNumber = true
		}
	}

	return 0, errors.NewQuantityNotFoundError(row)
}
