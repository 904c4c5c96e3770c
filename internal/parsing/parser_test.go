package parsing

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invsettle/internal/errors"
	"invsettle/pkg/contracts/domain"
)

// stubResolver resolves person names in memory, mirroring the
// create-on-first-sight contract of the persistence layer.
type stubResolver struct {
	nextID  uint
	people  map[string]domain.PersonRef
	created []string
}

func newStubResolver(known ...string) *stubResolver {
	r := &stubResolver{people: make(map[string]domain.PersonRef)}
	for _, name := range known {
		r.nextID++
		r.people[name] = domain.PersonRef{ID: r.nextID, Name: name}
	}
	return r
}

func (r *stubResolver) ResolvePerson(_ context.Context, name string) (domain.PersonRef, bool, error) {
	if ref, ok := r.people[name]; ok {
		return ref, false, nil
	}
	r.nextID++
	ref := domain.PersonRef{ID: r.nextID, Name: name}
	r.people[name] = ref
	r.created = append(r.created, name)
	return ref, true, nil
}

func testParser(resolver PersonResolver) *Parser {
	return NewParser(resolver, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// headerRows builds the fixed three-row table header: the order-date row
// followed by the two sub-header rows every page carries.
func headerRows(dateCell string) []domain.Row {
	return []domain.Row{
		{dateCell, "", "F7100123"},
		{"Artikel Beskrivning", "Antal", "Pris", "Moms %", "Belopp"},
		{"", "", "", "", ""},
	}
}

func block(rows ...domain.Row) domain.TableBlock {
	all := headerRows("Ert Ordernummer 2024-01-15")
	all = append(all, rows...)
	return domain.TableBlock{Rows: all}
}

func TestParseOrderTable_StandardItem(t *testing.T) {
	resolver := newStubResolver("SVEN SVENSSON")
	parser := testParser(resolver)

	b := block(
		domain.Row{"1 2305893", "RES THICK FILM", "5", "20.0", "10.00"},
		domain.Row{"RES 10K 0603 5%"},
		domain.Row{"Sven Svensson / SHIP DATE: 15/01/24"},
		domain.Row{"Utgående"},
	)

	items, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, 5, item.ItemCount)
	assert.Equal(t, "2305893", item.ItemNo)
	assert.Equal(t, "RES 10K 0603 5%", item.ItemDesc)
	assert.Equal(t, "SVEN SVENSSON", item.PersonName)
	assert.InDelta(t, 12.00, item.Cost, 1e-9) // 10.00 net at 20% VAT
	assert.Equal(t, "2024-01-15", item.OrderPlacedAt)
	assert.Equal(t, "7100123", item.InvoiceNumber)
	assert.Empty(t, resolver.created)
}

func TestParseOrderTable_ETAOrderDate(t *testing.T) {
	parser := testParser(newStubResolver())

	rows := headerRows("Ert Ordernummer ETA1234-240115")
	rows = append(rows,
		domain.Row{"1 2305893", "RES THICK FILM", "5", "20.0", "10.00"},
		domain.Row{"RES 10K 0603 5%"},
		domain.Row{"Utgående"},
	)

	items, err := parser.ParseOrderTable(context.Background(), domain.TableBlock{Rows: rows}, "7100123")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2024-01-15", items[0].OrderPlacedAt)
}

func TestParseOrderTable_BadETADateIsFatal(t *testing.T) {
	parser := testParser(newStubResolver())

	rows := headerRows("Ert Ordernummer ETA1234-2401")
	rows = append(rows, domain.Row{"Utgående"})

	_, err := parser.ParseOrderTable(context.Background(), domain.TableBlock{Rows: rows}, "7100123")
	require.Error(t, err)
	assert.True(t, errors.IsDateFormat(err))
}

func TestParseOrderTable_ShippingRowConsumesOneRow(t *testing.T) {
	resolver := newStubResolver("ETA", "ANNA ANDERSSON")
	parser := testParser(resolver)

	b := block(
		domain.Row{"9 FRAKT", "UPS STANDARD", "", "150.00"},
		domain.Row{"1 2305893", "RES THICK FILM", "5", "20.0", "10.00"},
		domain.Row{"RES 10K 0603 5%"},
		domain.Row{"Anna Andersson"},
		domain.Row{"Utgående"},
	)

	items, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.NoError(t, err)
	require.Len(t, items, 2)

	frakt := items[0]
	assert.Equal(t, "FRAKT", frakt.ItemDesc)
	assert.Equal(t, "FRAKT", frakt.ItemNo)
	assert.Equal(t, "ETA", frakt.PersonName)
	assert.Equal(t, 1, frakt.ItemCount)
	assert.InDelta(t, 150.00, frakt.Cost, 1e-9) // no VAT on freight

	// The row after the shipping charge parsed as a normal item, so the
	// shipping branch consumed exactly one row.
	assert.Equal(t, "ANNA ANDERSSON", items[1].PersonName)
}

func TestParseOrderTable_VoucherAndReReelSkipped(t *testing.T) {
	parser := testParser(newStubResolver())

	b := block(
		domain.Row{"VOUCHER", "", "25.00"},
		domain.Row{"RE REEL", "", "7.50"},
		domain.Row{"Utgående"},
	)

	items, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseOrderTable_AnnotationRowsSkipped(t *testing.T) {
	parser := testParser(newStubResolver())

	b := block(
		domain.Row{"1 2305893", "RES THICK FILM", "5", "20.0", "10.00"},
		domain.Row{"RES 10K 0603 5%"},
		domain.Row{"Despatch Note No 8439921"},
		domain.Row{"RE REELED ITEM"},
		domain.Row{"Karl Karlsson"},
		domain.Row{"Utgående"},
	)

	items, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "KARL KARLSSON", items[0].PersonName)
}

func TestParseOrderTable_MissingNameRowFallsBackToUnknown(t *testing.T) {
	resolver := newStubResolver()
	parser := testParser(resolver)

	b := block(
		// First item has no line comment, so no name row follows; the next
		// row is already the next item header.
		domain.Row{"1 2305893", "RES THICK FILM", "5", "20.0", "10.00"},
		domain.Row{"RES 10K 0603 5%"},
		domain.Row{"2 1651885", "CAP CERAMIC", "25", "20.0", "30.00"},
		domain.Row{"CAP 100N 0805 X7R"},
		domain.Row{"Berit Bengtsson"},
		domain.Row{"Utgående"},
	)

	items, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "UNKNOWN", items[0].PersonName)
	assert.Equal(t, "BERIT BENGTSSON", items[1].PersonName)
	assert.Contains(t, resolver.created, "UNKNOWN")
}

func TestParseOrderTable_MissingNameRowAtTableEnd(t *testing.T) {
	parser := testParser(newStubResolver())

	b := block(
		domain.Row{"1 2305893", "RES THICK FILM", "5", "20.0", "10.00"},
		domain.Row{"RES 10K 0603 5%"},
		domain.Row{"ER REFERENS  ETA INKÖP"},
	)

	items, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "UNKNOWN", items[0].PersonName)
}

func TestParseOrderTable_EndMarkerBeforeAnyItem(t *testing.T) {
	parser := testParser(newStubResolver())

	b := block(domain.Row{"MYCKET VIKTIGT"}, domain.Row{"1 2305893", "RES", "5", "20.0", "10.00"})

	items, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseOrderTable_SecondaryHeaderPopped(t *testing.T) {
	parser := testParser(newStubResolver())

	b := block(
		domain.Row{"Ingående", "balans"},
		domain.Row{"1 2305893", "RES THICK FILM", "5", "20.0", "10.00"},
		domain.Row{"RES 10K 0603 5%"},
		domain.Row{"Utgående"},
	)

	items, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2305893", items[0].ItemNo)
}

func TestParseOrderTable_QuantityFailureIsFatal(t *testing.T) {
	parser := testParser(newStubResolver())

	b := block(
		// Only one integer-parseable token on the whole line.
		domain.Row{"1 FUSE-HOLDER", "SPECIAL", "20.0", "4.00"},
		domain.Row{"FUSE HOLDER 5X20"},
		domain.Row{"Utgående"},
	)

	_, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.Error(t, err)
	assert.True(t, errors.IsQuantityNotFound(err))
}

func TestParseOrderTable_NumericCellFailureIsFatal(t *testing.T) {
	parser := testParser(newStubResolver())

	b := block(
		domain.Row{"1 2305893", "RES THICK FILM", "5", "20.0", "N/A"},
		domain.Row{"RES 10K 0603 5%"},
		domain.Row{"Utgående"},
	)

	_, err := parser.ParseOrderTable(context.Background(), b, "7100123")
	require.Error(t, err)
	assert.True(t, errors.IsNumericParse(err))
}
