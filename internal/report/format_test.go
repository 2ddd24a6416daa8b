package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "€ 0,00"},
		{"2.5", "€ 2,50"},
		{"35.50", "€ 35,50"},
		{"999.999", "€ 1.000,00"},
		{"1234.56", "€ 1.234,56"},
		{"1234567.891", "€ 1.234.567,89"},
		{"100000", "€ 100.000,00"},
		{"-1234.5", "€ -1.234,50"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEUR(decimal.RequireFromString(tt.amount)))
		})
	}
}
