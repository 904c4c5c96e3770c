package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"invsettle/pkg/contracts/domain"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewAppError(ErrTypeDate, "bad date", nil),
			expected: "[DATE] bad date",
		},
		{
			name:     "with cause",
			err:      NewAppError(ErrTypeNumeric, "bad cell", errors.New("boom")),
			expected: "[NUMERIC] bad cell: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewStorageError("insert failed", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestNewQuantityNotFoundError_CarriesRow(t *testing.T) {
	row := domain.Row{"1 2305893", "4.05", "20.0", "8.10"}
	err := NewQuantityNotFoundError(row)

	assert.True(t, IsQuantityNotFound(err))
	assert.Equal(t, []string(row), err.Context["row"])
}

func TestTypePredicates(t *testing.T) {
	qty := NewQuantityNotFoundError(domain.Row{"x"})
	date := NewDateFormatError("ETA1234-xx0115")
	num := NewNumericParseError("abc", errors.New("parse"))

	assert.True(t, IsQuantityNotFound(qty))
	assert.False(t, IsQuantityNotFound(date))
	assert.True(t, IsDateFormat(date))
	assert.True(t, IsNumericParse(num))
	assert.False(t, IsNumericParse(errors.New("plain")))
}

func TestTypePredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("processing invoice.pdf: %w", NewDateFormatError("ETAxxxx"))
	assert.True(t, IsDateFormat(wrapped))
}
