package citytax

import (
	"smartbook/internal/model"

	"github.com/shopspring/decimal"
)

// GenerateReport sums booking results into a report for periodLabel.
// Filtering bookings to the period is the caller's job. Guests untaxed only
// because of the night cap have no reason and are not in the breakdown.
func GenerateReport(results []BookingTaxResult, periodLabel string) TaxReport {
	report := TaxReport{
		Period:                  periodLabel,
		TotalTax:                decimal.Zero,
		TotalBookings:           len(results),
		ExemptionBreakdown:      make(map[model.ExemptionReason]int, len(model.ExemptionReasons)),
		ExemptNightsByReason:    make(map[model.ExemptionReason]int, len(model.ExemptionReasons)),
		AverageTaxPerBooking:    decimal.Zero,
		AverageGuestsPerBooking: decimal.Zero,
	}

	for _, result := range results {
		report.TotalTax = report.TotalTax.Add(result.TotalTax)
		report.TotalTaxableNights += result.TotalTaxableNights
		report.TotalExemptNights += result.TotalExemptNights
		report.TotalGuests += len(result.GuestBreakdown)

		for _, guest := range result.GuestBreakdown {
			if guest.ExemptionReason == nil {
				continue
			}
			report.TotalExemptGuests++
			report.ExemptionBreakdown[*guest.ExemptionReason]++
			report.ExemptNightsByReason[*guest.ExemptionReason] += guest.ExemptNights
		}
	}

	if report.TotalBookings > 0 {
		bookings := decimal.NewFromInt(int64(report.TotalBookings))
		report.AverageTaxPerBooking = report.TotalTax.Div(bookings)
		report.AverageGuestsPerBooking = decimal.NewFromInt(int64(report.TotalGuests)).Div(bookings)
	}

	return report
}
