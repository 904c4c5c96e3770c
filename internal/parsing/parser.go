package parsing

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"invsettle/internal/errors"
	"invsettle/pkg/contracts/domain"
)

const (
	// secondaryHeaderMarker starts the extra header row some pages carry
	// (the running "Ingående" balance line).
	secondaryHeaderMarker = "Ingående"

	shippingToken      = "FRAKT"
	voucherMarker      = "VOUCHER"
	reReelMarker       = "RE REEL"
	despatchNoteMarker = "Despatch Note No "
	shipDateSuffix     = " / SHIP DATE:"

	// unknownPerson is assigned when an item row pair has no trailing name
	// row. Such items land on a real person record named UNKNOWN so the
	// treasurer can reassign them later.
	unknownPerson = "UNKNOWN"

	// shippingPerson owns freight charges; the club account settles those.
	shippingPerson = "ETA"
)

// endOfTableMarkers are the leading cells that terminate the item section
// of an order table.
var endOfTableMarkers = []string{"ER REFERENS  ETA INKÖP", "Utgående", "MYCKET VIKTIGT"}

// numericPairPattern matches the leading cell of an item header row (line
// index followed by article number). A row that does not match it, and is
// not an end marker, is a person-name row.
var numericPairPattern = regexp.MustCompile(`^\d+ \d+`)

// PersonResolver resolves a person name to a persisted identity, creating
// the record on first sight. The second return value reports whether a new
// record had to be created.
type PersonResolver interface {
	ResolvePerson(ctx context.Context, name string) (domain.PersonRef, bool, error)
}

// Parser turns one order table block into line items.
type Parser struct {
	resolver PersonResolver
	logger   *slog.Logger
}

// NewParser creates a parser that resolves person names through resolver.
func NewParser(resolver PersonResolver, logger *slog.Logger) *Parser {
	return &Parser{
		resolver: resolver,
		logger:   logger.With(slog.String("component", "parser")),
	}
}

// cursor is a non-destructive read position over a block's rows. The state
// machine consumes rows strictly in order with at most two rows of
// lookahead, so an index over the immutable row list is all it needs.
type cursor struct {
	rows []domain.Row
	pos  int
}

func (c *cursor) more() bool {
	return c.pos < len(c.rows)
}

func (c *cursor) peek() domain.Row {
	if !c.more() {
		return nil
	}
	return c.rows[c.pos]
}

func (c *cursor) pop() domain.Row {
	row := c.peek()
	if c.more() {
		c.pos++
	}
	return row
}

// isEndOfOrderTable reports whether the row opens the trailing
// reference/summary section of an order table.
func isEndOfOrderTable(row domain.Row) bool {
	leading := row.Leading()
	for _, marker := range endOfTableMarkers {
		if leading == marker {
			return true
		}
	}
	return false
}

// isShippingRow reports whether any cell carries the freight token.
// Substring match, not equality: extraction can merge the FRAKT marker
// with neighboring text into one cell. No Farnell description contains
// FRAKT as a fragment of a longer word.
func isShippingRow(row domain.Row) bool {
	for _, cell := range row {
		if strings.Contains(cell, shippingToken) {
			return true
		}
	}
	return false
}

// isAnnotationRow reports whether the row is an interleaved despatch-note or
// re-reel annotation that must be skipped, not treated as data.
func isAnnotationRow(row domain.Row) bool {
	leading := row.Leading()
	return strings.Contains(leading, despatchNoteMarker) || strings.Contains(leading, reReelMarker)
}

// numericCell parses a cost or VAT cell. Failure is fatal for the batch.
func numericCell(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, errors.NewNumericParseError(cell, err)
	}
	return v, nil
}

// ParseOrderTable consumes one order table block and returns its line items.
//
// The first row carries the order date at its third whitespace-separated
// position, followed by a fixed two-row sub-header and, on some pages, one
// extra secondary header row. Item rows follow until an end-of-table marker
// or the block is exhausted.
func (p *Parser) ParseOrderTable(ctx context.Context, block domain.TableBlock, invoiceNo string) ([]domain.LineItem, error) {
	cur := &cursor{rows: block.Rows}

	dateRow := cur.pop()
	cur.pop()
	cur.pop()
	if cur.more() && cur.peek().Leading() == secondaryHeaderMarker {
		cur.pop()
	}

	fields := strings.Fields(dateRow.Leading())
	if len(fields) < 3 {
		return nil, errors.NewDateFormatError(dateRow.Leading())
	}
	orderDate, err := NormalizeOrderDate(fields[2])
	if err != nil {
		return nil, err
	}

	var items []domain.LineItem
	for cur.more() {
		if isEndOfOrderTable(cur.peek()) {
			break
		}

		line1 := cur.pop()
		var item domain.LineItem

		switch {
		case isShippingRow(line1):
			// Freight is a single-row, VAT-exempt item carried by the club.
			cost, err := numericCell(line1.Last())
			if err != nil {
				return nil, err
			}
			item = domain.LineItem{
				ItemCount:  1,
				ItemNo:     shippingToken,
				ItemDesc:   shippingToken,
				PersonName: shippingPerson,
				Cost:       cost,
			}

		case line1.Leading() == voucherMarker:
			// Vouchers stay on the club account; the treasurer reassigns
			// them by hand when one belongs to a member.
			continue

		case line1.Leading() == reReelMarker:
			// The club pays all re-reeling.
			continue

		default:
			line2 := cur.pop()

			// 0, 1 or 2 annotation rows may sit between the description
			// line and the person-name line.
			for cur.more() && isAnnotationRow(cur.peek()) {
				cur.pop()
			}

			// Item pairs without a line comment have no name row; the next
			// row is then either the next item header or the end marker.
			name := unknownPerson
			if cur.more() && !numericPairPattern.MatchString(cur.peek().Leading()) && !isEndOfOrderTable(cur.peek()) {
				name = strings.ToUpper(cur.pop().Leading())
				// Some invoices append a ship-date blurb to the name line.
				name, _, _ = strings.Cut(name, shipDateSuffix)
			}

			net, err := numericCell(line1.Last())
			if err != nil {
				return nil, err
			}
			vat, err := numericCell(line1.SecondToLast())
			if err != nil {
				return nil, err
			}
			count, err := ItemCount(line1)
			if err != nil {
				return nil, err
			}

			item = domain.LineItem{
				ItemCount:  count,
				ItemNo:     secondToken(line1.Leading()),
				ItemDesc:   line2.Leading(),
				PersonName: name,
				Cost:       net * (1 + vat/100),
			}
		}

		ref, created, err := p.resolver.ResolvePerson(ctx, item.PersonName)
		if err != nil {
			return nil, errors.NewStorageError("failed to resolve person", err).
				WithContext("name", item.PersonName)
		}
		if created {
			p.logger.Warn("person was not present in the database; record created without phone number or email, please complete it",
				slog.String("name", ref.Name))
		}

		item.PersonID = ref.ID
		item.PersonName = ref.Name
		item.OrderPlacedAt = orderDate
		item.InvoiceNumber = invoiceNo
		items = append(items, item)
	}

	return items, nil
}

// secondToken returns the second whitespace-separated token of a cell, the
// article number position of an item header row.
func secondToken(cell string) string {
	fields := strings.Fields(cell)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
