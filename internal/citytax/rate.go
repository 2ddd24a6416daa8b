package citytax

import (
	ierr "smartbook/internal/errors"

	"github.com/shopspring/decimal"
)

// RateDecimals is the scale rates are stored with (decimal(10,2)).
const RateDecimals = 2

// ParseRate parses a per-night rate. Rates with more than RateDecimals
// fractional digits are rejected rather than rounded.
func ParseRate(value string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHintf("base_rate_per_night %q is not a decimal", value).
			Mark(ierr.ErrValidation)
	}
	if !rate.Equal(rate.Truncate(RateDecimals)) {
		return decimal.Zero, ierr.NewErrorf("base_rate_per_night %s has more than %d decimals", value, RateDecimals).
			WithHintf("base_rate_per_night must have at most %d decimals", RateDecimals).
			WithReportableDetails(map[string]any{"base_rate_per_night": value}).
			Mark(ierr.ErrValidation)
	}
	return rate, nil
}
