package citytax

import (
	"time"

	"smartbook/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func date(value string) time.Time {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

func testRule(rate string, maxNights, ageThreshold int) model.TaxRule {
	return model.TaxRule{
		ID:                    uuid.New(),
		TenantID:              uuid.New(),
		ValidFrom:             date("2025-01-01"),
		BaseRatePerNight:      decimal.RequireFromString(rate),
		MaxTaxableNights:      maxNights,
		AgeExemptionThreshold: ageThreshold,
		ExemptionRules: model.ExemptionRules{
			BusDriverRatio:  25,
			TourGuideExempt: true,
		},
	}
}

func testGuest(role model.GuestRole, dateOfBirth string) model.Guest {
	return model.Guest{
		ID:          uuid.New(),
		Role:        role,
		FirstName:   "Mario",
		LastName:    "Rossi",
		Sex:         model.SexMale,
		DateOfBirth: date(dateOfBirth),
	}
}

func testBooking(checkIn, checkOut string, expected int) model.Booking {
	return model.Booking{
		ID:             uuid.New(),
		BookingType:    model.BookingTypeGroup,
		CheckInDate:    date(checkIn),
		CheckOutDate:   date(checkOut),
		ExpectedGuests: expected,
		Status:         model.BookingStatusPending,
	}
}
