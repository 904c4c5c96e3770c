package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invsettle/pkg/contracts/domain"
)

func TestGroupFragments_RowsAndCells(t *testing.T) {
	// Two visual rows; the first row's two left fragments sit close enough
	// to merge into one cell, the right one is a separate cell.
	frags := []fragment{
		{text: "Ert", x: 50, y: 700, w: 15},
		{text: "Ordernummer", x: 68, y: 700.5, w: 60},
		{text: "F7100123", x: 400, y: 700, w: 45},
		{text: "1 2305893", x: 50, y: 688, w: 50},
		{text: "10.00", x: 400, y: 688, w: 25},
	}

	blocks := groupFragments(frags, 1)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Rows, 2)

	assert.Equal(t, domain.Row{"Ert Ordernummer", "F7100123"}, blocks[0].Rows[0])
	assert.Equal(t, domain.Row{"1 2305893", "10.00"}, blocks[0].Rows[1])
	assert.Equal(t, 1, blocks[0].Page)
}

func TestGroupFragments_BlockSplitOnVerticalGap(t *testing.T) {
	frags := []fragment{
		{text: "Farnell element14", x: 50, y: 760, w: 80},
		{text: "Ert Ordernummer 2024-01-15", x: 50, y: 700, w: 130},
		{text: "1 2305893", x: 50, y: 688, w: 50},
	}

	blocks := groupFragments(frags, 3)
	require.Len(t, blocks, 2)
	assert.Equal(t, domain.Row{"Farnell element14"}, blocks[0].Rows[0])
	require.Len(t, blocks[1].Rows, 2)
	assert.Equal(t, domain.Row{"Ert Ordernummer 2024-01-15"}, blocks[1].Rows[0])
}

func TestGroupFragments_UnorderedInputSortsIntoReadingOrder(t *testing.T) {
	frags := []fragment{
		{text: "second", x: 50, y: 688, w: 30},
		{text: "right", x: 300, y: 700, w: 25},
		{text: "left", x: 50, y: 700, w: 20},
	}

	blocks := groupFragments(frags, 1)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Rows, 2)
	assert.Equal(t, domain.Row{"left", "right"}, blocks[0].Rows[0])
	assert.Equal(t, domain.Row{"second"}, blocks[0].Rows[1])
}

func TestGroupFragments_Empty(t *testing.T) {
	assert.Nil(t, groupFragments(nil, 1))
}
