package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEUR renders an amount the Italian way, e.g. "€ 1.234,56".
// This is the only place amounts get rounded to cents.
func FormatEUR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	intPart, fraction, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	return "€ " + sign + grouped.String() + "," + fraction
}
