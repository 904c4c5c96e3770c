package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invsettle/internal/errors"
)

func TestNormalizeOrderDate(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "ETA with dash", token: "ETA1234-240115", expected: "2024-01-15"},
		{name: "ETA without dash", token: "ETA1234240115", expected: "2024-01-15"},
		{name: "legacy date passes through", token: "2023-11-02", expected: "2023-11-02"},
		{name: "ETA with trailing text", token: "ETA9876-231205X", expected: "2023-12-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeOrderDate(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeOrderDate_BadETABlock(t *testing.T) {
	tests := []string{
		"ETA1234",
		"ETA1234-2401",
		"ETA1234-yymmdd",
	}

	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			_, err := NormalizeOrderDate(token)
			require.Error(t, err)
			assert.True(t, errors.IsDateFormat(err))
		})
	}
}
