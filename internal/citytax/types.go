package citytax

import (
	"time"

	"smartbook/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExemptionDecision is the outcome of the exemption rules for one guest.
// An empty Reason means the guest is taxable.
type ExemptionDecision struct {
	GuestID uuid.UUID
	Reason  model.ExemptionReason
}

// Exempt reports whether the guest is exempt for the whole stay
func (d ExemptionDecision) Exempt() bool {
	return d.Reason != ""
}

// GuestTaxResult is the tax owed by one guest for one stay.
// TaxableNights + ExemptNights always equals Nights.
type GuestTaxResult struct {
	GuestID         uuid.UUID              `json:"guest_id"`
	GuestName       string                 `json:"guest_name"`
	Role            model.GuestRole        `json:"role"`
	Nights          int                    `json:"nights"`
	TaxableNights   int                    `json:"taxable_nights"`
	ExemptNights    int                    `json:"exempt_nights"`
	TaxAmount       decimal.Decimal        `json:"tax_amount"`
	ExemptionReason *model.ExemptionReason `json:"exemption_reason,omitempty"`
}

// BookingTaxResult aggregates the guest results of one booking.
type BookingTaxResult struct {
	BookingID          uuid.UUID        `json:"booking_id"`
	RuleID             uuid.UUID        `json:"rule_id"`
	CheckInDate        time.Time        `json:"check_in_date"`
	CheckOutDate       time.Time        `json:"check_out_date"`
	Nights             int              `json:"nights"`
	BaseRatePerNight   decimal.Decimal  `json:"base_rate_per_night"`
	TotalTax           decimal.Decimal  `json:"total_tax"`
	TotalTaxableNights int              `json:"total_taxable_nights"`
	TotalExemptNights  int              `json:"total_exempt_nights"`
	GuestBreakdown     []GuestTaxResult `json:"guest_breakdown"`
	Warnings           []string         `json:"warnings,omitempty"`
}

// ExemptGuests counts guests carrying an exemption reason
func (r BookingTaxResult) ExemptGuests() int {
	count := 0
	for _, g := range r.GuestBreakdown {
		if g.ExemptionReason != nil {
			count++
		}
	}
	return count
}

// TaxReport rolls up booking results for a reporting period.
type TaxReport struct {
	Period                  string                        `json:"period"`
	TotalTax                decimal.Decimal               `json:"total_tax"`
	TotalBookings           int                           `json:"total_bookings"`
	TotalGuests             int                           `json:"total_guests"`
	TotalExemptGuests       int                           `json:"total_exempt_guests"`
	TotalTaxableNights      int                           `json:"total_taxable_nights"`
	TotalExemptNights       int                           `json:"total_exempt_nights"`
	ExemptionBreakdown      map[model.ExemptionReason]int `json:"exemption_breakdown"`     // guests per reason
	ExemptNightsByReason    map[model.ExemptionReason]int `json:"exempt_nights_by_reason"` // guest-nights per reason
	AverageTaxPerBooking    decimal.Decimal               `json:"average_tax_per_booking"`
	AverageGuestsPerBooking decimal.Decimal               `json:"average_guests_per_booking"`
}

// TotalTaxableGuests counts guests without an exemption reason
func (r TaxReport) TotalTaxableGuests() int {
	return r.TotalGuests - r.TotalExemptGuests
}
