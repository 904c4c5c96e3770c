package parsing

import (
	"fmt"
	"regexp"
	"strings"

	"invsettle/internal/errors"
)

// etaDatePattern matches the newer order-number date convention:
// ETAnnnn-yymmdd or ETAnnnnyymmdd.
var etaDatePattern = regexp.MustCompile(`^ETA....-?(?P<y>[0-9]{2})(?P<m>[0-9]{2})(?P<d>[0-9]{2})`)

// NormalizeOrderDate canonicalizes the order-date token from an order table
// header row to YYYY-MM-DD.
//
// Legacy invoices print the date directly in that shape and pass through
// unchanged. Newer invoices replace it with an ETA order number carrying a
// trailing yymmdd block; an ETA token without that block is a fatal format
// error.
func NormalizeOrderDate(token string) (string, error) {
	if !strings.HasPrefix(token, "ETA") {
		return token, nil
	}

	m := etaDatePattern.FindStringSubmatch(token)
	if m == nil {
		return "", errors.NewDateFormatError(token)
	}

	groups := make(map[string]string)
	for i, name := range etaDatePattern.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}
	return fmt.Sprintf("20%s-%s-%s", groups["y"], groups["m"], groups["d"]), nil
}
