package report

import (
	"io"
	"strings"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"
	"smartbook/internal/model"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
)

// BookingCSV is one row of the per-booking detail export
type BookingCSV struct {
	BookingID     string `csv:"booking_id"`
	CheckIn       string `csv:"check_in"`
	CheckOut      string `csv:"check_out"`
	Guests        int    `csv:"guests"`
	TaxableGuests int    `csv:"taxable_guests"`
	ExemptGuests  int    `csv:"exempt_guests"`
	Nights        int    `csv:"nights"`
	TaxableNights int    `csv:"taxable_nights"`
	ExemptNights  int    `csv:"exempt_nights"`
	RatePerNight  string `csv:"rate_per_night"`
	TaxAmount     string `csv:"tax_amount"`
	ExemptMinors  int    `csv:"exempt_minors"`
	ExemptDrivers int    `csv:"exempt_drivers"`
	ExemptGuides  int    `csv:"exempt_guides"`
	RuleID        string `csv:"rule_id"`
	RuleWarnings  string `csv:"rule_warnings"` // pipe separated
}

// WriteCSV writes one row per booking result. Amounts are plain decimals
// with two digits so spreadsheets can sum them.
func WriteCSV(w io.Writer, results []citytax.BookingTaxResult) error {
	rows := lo.Map(results, func(result citytax.BookingTaxResult, _ int) *BookingCSV {
		exempt := lo.CountValuesBy(result.GuestBreakdown, func(g citytax.GuestTaxResult) model.ExemptionReason {
			if g.ExemptionReason == nil {
				return ""
			}
			return *g.ExemptionReason
		})

		return &BookingCSV{
			BookingID:     result.BookingID.String(),
			CheckIn:       result.CheckInDate.Format(citytax.DateLayout),
			CheckOut:      result.CheckOutDate.Format(citytax.DateLayout),
			Guests:        len(result.GuestBreakdown),
			TaxableGuests: exempt[""],
			ExemptGuests:  result.ExemptGuests(),
			Nights:        result.Nights,
			TaxableNights: result.TotalTaxableNights,
			ExemptNights:  result.TotalExemptNights,
			RatePerNight:  result.BaseRatePerNight.StringFixed(2),
			TaxAmount:     result.TotalTax.StringFixed(2),
			ExemptMinors:  exempt[model.ExemptionAge],
			ExemptDrivers: exempt[model.ExemptionBusDriverRatio],
			ExemptGuides:  exempt[model.ExemptionTourGuide],
			RuleID:        result.RuleID.String(),
			RuleWarnings:  strings.Join(result.Warnings, " | "),
		}
	})

	if err := gocsv.Marshal(rows, w); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to write CSV report").
			Mark(ierr.ErrSystem)
	}
	return nil
}
