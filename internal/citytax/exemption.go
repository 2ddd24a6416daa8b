package citytax

import (
	"time"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"

	"github.com/google/uuid"
)

// EvaluateExemptions decides, for every guest, whether the whole stay is exempt.
//
// Rules apply in this order and the first match wins:
//  1. age below the rule threshold on the check-in date
//  2. bus drivers, at most expectedPartySize / BusDriverRatio of them,
//     assigned in guest list order
//  3. tour guides, when the rule exempts them
//
// Drivers exempted by age do not use up a driver slot.
func EvaluateExemptions(guests []model.Guest, rule model.TaxRule, checkIn time.Time, expectedPartySize int) (map[uuid.UUID]ExemptionDecision, error) {
	if err := validateGuests(guests); err != nil {
		return nil, err
	}

	decisions := make(map[uuid.UUID]ExemptionDecision, len(guests))
	driverSlots := -1 // computed on the first driver that needs one

	for _, guest := range guests {
		decision := ExemptionDecision{GuestID: guest.ID}

		switch {
		case AgeOn(guest.DateOfBirth, checkIn) < rule.AgeExemptionThreshold:
			decision.Reason = model.ExemptionAge

		case guest.Role == model.GuestRoleBusDriver:
			if driverSlots < 0 {
				slots, err := busDriverSlots(rule, expectedPartySize)
				if err != nil {
					return nil, err
				}
				driverSlots = slots
			}
			if driverSlots > 0 {
				decision.Reason = model.ExemptionBusDriverRatio
				driverSlots--
			}

		case guest.Role == model.GuestRoleTourGuide && rule.ExemptionRules.TourGuideExempt:
			decision.Reason = model.ExemptionTourGuide
		}

		decisions[guest.ID] = decision
	}

	return decisions, nil
}

func busDriverSlots(rule model.TaxRule, expectedPartySize int) (int, error) {
	ratio := rule.ExemptionRules.BusDriverRatio
	if ratio <= 0 {
		return 0, ierr.NewErrorf("bus_driver_ratio is %d", ratio).
			WithHint("The tax rule has no valid bus driver ratio, bus driver exemptions cannot be computed").
			WithReportableDetails(map[string]any{
				"rule_id":          rule.ID.String(),
				"bus_driver_ratio": ratio,
			}).
			Mark(ierr.ErrInvalidRuleConfiguration)
	}
	if expectedPartySize <= 0 {
		return 0, nil
	}
	return expectedPartySize / ratio, nil
}

func validateGuests(guests []model.Guest) error {
	seen := make(map[uuid.UUID]struct{}, len(guests))
	for _, guest := range guests {
		if !guest.Role.IsValid() {
			return ierr.NewErrorf("guest %s has unknown role %q", guest.ID, guest.Role).
				WithHintf("Guest %s has an unknown role %q", guest.FullName(), guest.Role).
				WithReportableDetails(map[string]any{
					"guest_id": guest.ID.String(),
					"role":     string(guest.Role),
				}).
				Mark(ierr.ErrUnknownGuestRole)
		}
		if _, dup := seen[guest.ID]; dup {
			return ierr.NewErrorf("guest %s listed twice", guest.ID).
				WithHint("The same guest appears twice in the booking").
				Mark(ierr.ErrValidation)
		}
		seen[guest.ID] = struct{}{}
	}
	return nil
}
