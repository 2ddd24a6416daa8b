package citytax

import (
	"fmt"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"

	"github.com/shopspring/decimal"
)

// unusualAgeThreshold is the age above which a threshold is reported as suspicious
const unusualAgeThreshold = 18

// ValidateRule checks a rule once per calculation. Problems are returned as
// warnings; only a non-positive night cap, which leaves the cap undefined,
// fails with ErrInvalidRuleConfiguration. A zero rate is valid.
func ValidateRule(rule model.TaxRule) ([]string, error) {
	var warnings []string

	if rule.BaseRatePerNight.IsNegative() {
		warnings = append(warnings, fmt.Sprintf("base rate per night is negative (%s)", rule.BaseRatePerNight.String()))
	}
	if rule.MaxTaxableNights <= 0 {
		warnings = append(warnings, fmt.Sprintf("max taxable nights must be greater than 0 (got %d)", rule.MaxTaxableNights))
	}
	if rule.AgeExemptionThreshold < 0 {
		warnings = append(warnings, fmt.Sprintf("age exemption threshold cannot be negative (got %d)", rule.AgeExemptionThreshold))
	}
	if rule.AgeExemptionThreshold > unusualAgeThreshold {
		warnings = append(warnings, fmt.Sprintf("age exemption threshold unusually high (%d > %d years)", rule.AgeExemptionThreshold, unusualAgeThreshold))
	}
	if rule.ExemptionRules.BusDriverRatio <= 0 {
		warnings = append(warnings, fmt.Sprintf("bus driver ratio must be greater than 0 (got %d)", rule.ExemptionRules.BusDriverRatio))
	}

	if rule.MaxTaxableNights <= 0 {
		return warnings, ierr.NewErrorf("max_taxable_nights is %d", rule.MaxTaxableNights).
			WithHint("The tax rule has no valid maximum of taxable nights").
			WithReportableDetails(map[string]any{
				"rule_id":            rule.ID.String(),
				"max_taxable_nights": rule.MaxTaxableNights,
			}).
			Mark(ierr.ErrInvalidRuleConfiguration)
	}

	return warnings, nil
}

// CalculateBooking computes the city tax owed by every guest of a booking
// under rule. The rule must be the one valid on the check-in date; use
// CalculateWithRules to resolve it from a tenant's rule set.
//
// Calling it twice with the same input yields identical results.
func CalculateBooking(booking model.Booking, guests []model.Guest, rule model.TaxRule) (*BookingTaxResult, error) {
	nights := Nights(booking.CheckInDate, booking.CheckOutDate)
	if nights <= 0 {
		return nil, ierr.NewErrorf("booking %s spans %d nights", booking.ID, nights).
			WithHint("Check-out date must be after check-in date").
			WithReportableDetails(map[string]any{
				"booking_id": booking.ID.String(),
				"check_in":   DateOf(booking.CheckInDate).Format(DateLayout),
				"check_out":  DateOf(booking.CheckOutDate).Format(DateLayout),
			}).
			Mark(ierr.ErrInvalidDateRange)
	}

	warnings, err := ValidateRule(rule)
	if err != nil {
		return nil, err
	}

	decisions, err := EvaluateExemptions(guests, rule, booking.CheckInDate, booking.ExpectedGuests)
	if err != nil {
		return nil, err
	}

	result := &BookingTaxResult{
		BookingID:        booking.ID,
		RuleID:           rule.ID,
		CheckInDate:      DateOf(booking.CheckInDate),
		CheckOutDate:     DateOf(booking.CheckOutDate),
		Nights:           nights,
		BaseRatePerNight: rule.BaseRatePerNight,
		TotalTax:         decimal.Zero,
		GuestBreakdown:   make([]GuestTaxResult, 0, len(guests)),
		Warnings:         warnings,
	}

	for _, guest := range guests {
		guestResult := calculateGuest(guest, decisions[guest.ID], nights, rule)

		result.TotalTax = result.TotalTax.Add(guestResult.TaxAmount)
		result.TotalTaxableNights += guestResult.TaxableNights
		result.TotalExemptNights += guestResult.ExemptNights
		result.GuestBreakdown = append(result.GuestBreakdown, guestResult)
	}

	return result, nil
}

// CalculateWithRules resolves the rule valid at check-in from a tenant's
// rules and calculates the booking with it. Past stays therefore always use
// the rule that applied when the guests arrived.
func CalculateWithRules(booking model.Booking, guests []model.Guest, rules []model.TaxRule) (*BookingTaxResult, error) {
	rule, err := SelectRule(rules, booking.CheckInDate)
	if err != nil {
		return nil, err
	}
	return CalculateBooking(booking, guests, *rule)
}

func calculateGuest(guest model.Guest, decision ExemptionDecision, nights int, rule model.TaxRule) GuestTaxResult {
	result := GuestTaxResult{
		GuestID:   guest.ID,
		GuestName: guest.FullName(),
		Role:      guest.Role,
		Nights:    nights,
	}

	if decision.Exempt() {
		reason := decision.Reason
		result.ExemptNights = nights
		result.TaxAmount = decimal.Zero
		result.ExemptionReason = &reason
		return result
	}

	// nights past the cap are untaxed but carry no exemption reason
	taxable := min(nights, rule.MaxTaxableNights)
	result.TaxableNights = taxable
	result.ExemptNights = nights - taxable
	result.TaxAmount = rule.BaseRatePerNight.Mul(decimal.NewFromInt(int64(taxable)))
	return result
}
