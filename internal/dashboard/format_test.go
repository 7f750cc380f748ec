package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := map[string]string{
		"0":           "R$ 0,00",
		"50":          "R$ 50,00",
		"1234.5":      "R$ 1.234,50",
		"236500":      "R$ 236.500,00",
		"1234567.891": "R$ 1.234.567,89",
		"-999.999":    "-R$ 1.000,00",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatBRL(decimal.RequireFromString(in)), in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.500", formatNumber(1500, 0))
	assert.Equal(t, "850", formatNumber(849.6, 0))
	assert.Equal(t, "0,85", formatNumber(0.85, 2))
	assert.Equal(t, "-1.234,5", formatNumber(-1234.5, 1))
	assert.Equal(t, "0", formatNumber(-0.2, 0))
	assert.Equal(t, "1.000.000", formatNumber(1e6, 0))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1", groupThousands("1"))
	assert.Equal(t, "123", groupThousands("123"))
	assert.Equal(t, "1.234", groupThousands("1234"))
	assert.Equal(t, "123.456", groupThousands("123456"))
}
