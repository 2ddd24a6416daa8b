package citytax

import (
	"testing"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestCalculateBookingNightCap(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	booking := testBooking("2025-03-01", "2025-03-08", 1)
	adult := testGuest(model.GuestRoleLeader, "1995-01-01")

	result, err := CalculateBooking(booking, []model.Guest{adult}, rule)
	require.NoError(t, err)
	require.Len(t, result.GuestBreakdown, 1)

	g := result.GuestBreakdown[0]
	assert.Equal(t, 7, g.Nights)
	assert.Equal(t, 5, g.TaxableNights)
	assert.Equal(t, 2, g.ExemptNights)
	assertDecimal(t, "10.00", g.TaxAmount)
	assert.Nil(t, g.ExemptionReason, "nights over the cap are not an exemption")
}

func TestCalculateBookingChildExempt(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	booking := testBooking("2025-03-01", "2025-03-04", 1)
	child := testGuest(model.GuestRoleMember, "2015-01-01")

	result, err := CalculateBooking(booking, []model.Guest{child}, rule)
	require.NoError(t, err)

	g := result.GuestBreakdown[0]
	assert.Equal(t, 0, g.TaxableNights)
	assert.Equal(t, 3, g.ExemptNights)
	assertDecimal(t, "0.00", g.TaxAmount)
	require.NotNil(t, g.ExemptionReason)
	assert.Equal(t, model.ExemptionAge, *g.ExemptionReason)
}

func TestCalculateBookingGroup(t *testing.T) {
	rule := testRule("2.50", 10, 14)
	booking := testBooking("2025-01-15", "2025-01-17", 40)

	d1 := testGuest(model.GuestRoleBusDriver, "1970-01-01")
	d2 := testGuest(model.GuestRoleBusDriver, "1975-01-01")
	guide := testGuest(model.GuestRoleTourGuide, "1980-01-01")
	leader := testGuest(model.GuestRoleLeader, "1960-01-01")
	child := testGuest(model.GuestRoleMember, "2011-01-20")
	guests := []model.Guest{leader, d1, d2, guide, child}

	result, err := CalculateBooking(booking, guests, rule)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, result.BookingID)
	assert.Equal(t, rule.ID, result.RuleID)
	assert.Equal(t, 2, result.Nights)
	require.Len(t, result.GuestBreakdown, len(guests))

	byGuest := make(map[string]GuestTaxResult)
	for i, g := range result.GuestBreakdown {
		assert.Equal(t, guests[i].ID, g.GuestID, "breakdown keeps guest order")
		byGuest[g.GuestID.String()] = g
	}

	assertDecimal(t, "5.00", byGuest[leader.ID.String()].TaxAmount)
	assert.Equal(t, model.ExemptionBusDriverRatio, *byGuest[d1.ID.String()].ExemptionReason)
	assertDecimal(t, "5.00", byGuest[d2.ID.String()].TaxAmount)
	assert.Equal(t, model.ExemptionTourGuide, *byGuest[guide.ID.String()].ExemptionReason)
	assertDecimal(t, "0", byGuest[guide.ID.String()].TaxAmount)
	assert.Equal(t, model.ExemptionAge, *byGuest[child.ID.String()].ExemptionReason)

	assertDecimal(t, "10.00", result.TotalTax)
	assert.Equal(t, 4, result.TotalTaxableNights)
	assert.Equal(t, 6, result.TotalExemptNights)
	assert.Equal(t, 3, result.ExemptGuests())
}

func TestCalculateBookingTotalsMatchBreakdown(t *testing.T) {
	rule := testRule("1.75", 3, 12)
	booking := testBooking("2025-08-01", "2025-08-09", 30)
	guests := []model.Guest{
		testGuest(model.GuestRoleLeader, "1970-01-01"),
		testGuest(model.GuestRoleMember, "2016-07-31"),
		testGuest(model.GuestRoleBusDriver, "1970-01-01"),
		testGuest(model.GuestRoleTourGuide, "1970-01-01"),
		testGuest(model.GuestRoleMember, "2000-01-01"),
	}

	result, err := CalculateBooking(booking, guests, rule)
	require.NoError(t, err)

	sum := decimal.Zero
	taxable, exempt := 0, 0
	for _, g := range result.GuestBreakdown {
		assert.Equal(t, g.Nights, g.TaxableNights+g.ExemptNights)
		assert.LessOrEqual(t, g.TaxableNights, rule.MaxTaxableNights)
		assert.False(t, g.TaxAmount.IsNegative())
		if g.ExemptionReason != nil {
			assert.True(t, g.TaxAmount.IsZero())
			assert.Equal(t, 0, g.TaxableNights)
		}
		sum = sum.Add(g.TaxAmount)
		taxable += g.TaxableNights
		exempt += g.ExemptNights
	}

	assert.True(t, sum.Equal(result.TotalTax))
	assert.Equal(t, taxable, result.TotalTaxableNights)
	assert.Equal(t, exempt, result.TotalExemptNights)
}

func TestCalculateBookingIsDeterministic(t *testing.T) {
	rule := testRule("2.50", 10, 14)
	booking := testBooking("2025-01-15", "2025-01-20", 50)
	guests := []model.Guest{
		testGuest(model.GuestRoleBusDriver, "1970-01-01"),
		testGuest(model.GuestRoleBusDriver, "1971-01-01"),
		testGuest(model.GuestRoleMember, "1990-01-01"),
	}

	first, err := CalculateBooking(booking, guests, rule)
	require.NoError(t, err)
	second, err := CalculateBooking(booking, guests, rule)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateBookingInvalidDates(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	guest := testGuest(model.GuestRoleLeader, "1970-01-01")

	for _, booking := range []model.Booking{
		testBooking("2025-03-01", "2025-03-01", 1),
		testBooking("2025-03-05", "2025-03-01", 1),
	} {
		result, err := CalculateBooking(booking, []model.Guest{guest}, rule)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, ierr.Is(err, ierr.ErrInvalidDateRange))
	}
}

func TestCalculateBookingZeroRate(t *testing.T) {
	rule := testRule("0", 5, 14)
	booking := testBooking("2025-03-01", "2025-03-03", 1)

	result, err := CalculateBooking(booking, []model.Guest{testGuest(model.GuestRoleLeader, "1970-01-01")}, rule)
	require.NoError(t, err)
	assert.True(t, result.TotalTax.IsZero())
	assert.Equal(t, 2, result.TotalTaxableNights)
}

func TestCalculateBookingNoGuests(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	booking := testBooking("2025-03-01", "2025-03-03", 0)

	result, err := CalculateBooking(booking, nil, rule)
	require.NoError(t, err)
	assert.Empty(t, result.GuestBreakdown)
	assert.True(t, result.TotalTax.IsZero())
}

func TestCalculateWithRules(t *testing.T) {
	booking := testBooking("2025-06-10", "2025-06-12", 1)
	guest := testGuest(model.GuestRoleLeader, "1970-01-01")

	t.Run("uses rule valid at check-in", func(t *testing.T) {
		old := testRule("1.00", 5, 14)
		old.ValidFrom = date("2025-01-01")
		old.ValidUntil = datePtr("2025-06-10")
		next := testRule("3.00", 5, 14)
		next.ValidFrom = date("2025-06-11")

		result, err := CalculateWithRules(booking, []model.Guest{guest}, []model.TaxRule{old, next})
		require.NoError(t, err)
		assert.Equal(t, old.ID, result.RuleID)
		assertDecimal(t, "2.00", result.TotalTax)
	})

	t.Run("overlap returns no result", func(t *testing.T) {
		a := testRule("1.00", 5, 14)
		b := testRule("3.00", 5, 14)

		result, err := CalculateWithRules(booking, []model.Guest{guest}, []model.TaxRule{a, b})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, ierr.Is(err, ierr.ErrAmbiguousRuleConfiguration))
	})
}

func TestValidateRule(t *testing.T) {
	t.Run("valid rule", func(t *testing.T) {
		warnings, err := ValidateRule(testRule("2.00", 5, 14))
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("soft problems become warnings", func(t *testing.T) {
		rule := testRule("-1.00", 5, 21)
		rule.ExemptionRules.BusDriverRatio = 0

		warnings, err := ValidateRule(rule)
		require.NoError(t, err)
		assert.Len(t, warnings, 3)
	})

	t.Run("negative threshold warns", func(t *testing.T) {
		warnings, err := ValidateRule(testRule("2.00", 5, -1))
		require.NoError(t, err)
		assert.Len(t, warnings, 1)
	})

	t.Run("non-positive cap fails", func(t *testing.T) {
		warnings, err := ValidateRule(testRule("2.00", 0, 14))
		require.Error(t, err)
		assert.True(t, ierr.Is(err, ierr.ErrInvalidRuleConfiguration))
		assert.NotEmpty(t, warnings)
	})
}

func TestCalculateBookingCarriesWarnings(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	rule.ExemptionRules.BusDriverRatio = -5
	booking := testBooking("2025-03-01", "2025-03-03", 1)

	result, err := CalculateBooking(booking, []model.Guest{testGuest(model.GuestRoleLeader, "1970-01-01")}, rule)
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
}
