package citytax

import (
	"testing"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateExemptionsAge(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	checkIn := date("2025-01-15")

	child := testGuest(model.GuestRoleMember, "2011-01-20") // 13 at check-in
	teen := testGuest(model.GuestRoleMember, "2011-01-15")  // turns 14 on check-in
	adult := testGuest(model.GuestRoleLeader, "1980-05-05")

	decisions, err := EvaluateExemptions([]model.Guest{child, teen, adult}, rule, checkIn, 3)
	require.NoError(t, err)

	assert.Equal(t, model.ExemptionAge, decisions[child.ID].Reason)
	assert.False(t, decisions[teen.ID].Exempt())
	assert.False(t, decisions[adult.ID].Exempt())
}

func TestEvaluateExemptionsBusDrivers(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	checkIn := date("2025-05-01")

	tests := []struct {
		name       string
		partySize  int
		drivers    int
		wantExempt int
	}{
		{"40 guests ratio 25 gives one slot", 40, 2, 1},
		{"50 guests ratio 25 gives two slots", 50, 2, 2},
		{"24 guests gives no slot", 24, 1, 0},
		{"slots exceed drivers", 100, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var guests []model.Guest
			for i := 0; i < tt.drivers; i++ {
				guests = append(guests, testGuest(model.GuestRoleBusDriver, "1970-01-01"))
			}

			decisions, err := EvaluateExemptions(guests, rule, checkIn, tt.partySize)
			require.NoError(t, err)

			exempt := 0
			for _, g := range guests {
				if decisions[g.ID].Reason == model.ExemptionBusDriverRatio {
					exempt++
				}
			}
			assert.Equal(t, tt.wantExempt, exempt)
		})
	}
}

func TestEvaluateExemptionsDriverSlotsFollowListOrder(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	d1 := testGuest(model.GuestRoleBusDriver, "1970-01-01")
	d2 := testGuest(model.GuestRoleBusDriver, "1972-01-01")

	decisions, err := EvaluateExemptions([]model.Guest{d1, d2}, rule, date("2025-05-01"), 40)
	require.NoError(t, err)

	assert.Equal(t, model.ExemptionBusDriverRatio, decisions[d1.ID].Reason)
	assert.False(t, decisions[d2.ID].Exempt())
}

func TestEvaluateExemptionsAgeTakesPrecedence(t *testing.T) {
	rule := testRule("2.00", 5, 18)
	rule.ExemptionRules.TourGuideExempt = true

	// 17 year old driver is exempt by age and leaves the slot to the next driver
	youngDriver := testGuest(model.GuestRoleBusDriver, "2008-01-01")
	driver := testGuest(model.GuestRoleBusDriver, "1970-01-01")
	youngGuide := testGuest(model.GuestRoleTourGuide, "2010-01-01")

	decisions, err := EvaluateExemptions([]model.Guest{youngDriver, driver, youngGuide}, rule, date("2025-05-01"), 25)
	require.NoError(t, err)

	assert.Equal(t, model.ExemptionAge, decisions[youngDriver.ID].Reason)
	assert.Equal(t, model.ExemptionBusDriverRatio, decisions[driver.ID].Reason)
	assert.Equal(t, model.ExemptionAge, decisions[youngGuide.ID].Reason)
}

func TestEvaluateExemptionsTourGuide(t *testing.T) {
	guide := testGuest(model.GuestRoleTourGuide, "1985-01-01")

	rule := testRule("2.00", 5, 14)
	decisions, err := EvaluateExemptions([]model.Guest{guide}, rule, date("2025-05-01"), 10)
	require.NoError(t, err)
	assert.Equal(t, model.ExemptionTourGuide, decisions[guide.ID].Reason)

	rule.ExemptionRules.TourGuideExempt = false
	decisions, err = EvaluateExemptions([]model.Guest{guide}, rule, date("2025-05-01"), 10)
	require.NoError(t, err)
	assert.False(t, decisions[guide.ID].Exempt())
}

func TestEvaluateExemptionsRatioMisconfigured(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	rule.ExemptionRules.BusDriverRatio = 0

	t.Run("fails when a driver needs the ratio", func(t *testing.T) {
		driver := testGuest(model.GuestRoleBusDriver, "1970-01-01")
		_, err := EvaluateExemptions([]model.Guest{driver}, rule, date("2025-05-01"), 40)
		require.Error(t, err)
		assert.True(t, ierr.Is(err, ierr.ErrInvalidRuleConfiguration))
	})

	t.Run("ignored without drivers", func(t *testing.T) {
		member := testGuest(model.GuestRoleMember, "1970-01-01")
		_, err := EvaluateExemptions([]model.Guest{member}, rule, date("2025-05-01"), 40)
		assert.NoError(t, err)
	})

	t.Run("ignored when the only driver is exempt by age", func(t *testing.T) {
		young := testGuest(model.GuestRoleBusDriver, "2015-01-01")
		_, err := EvaluateExemptions([]model.Guest{young}, rule, date("2025-05-01"), 40)
		assert.NoError(t, err)
	})
}

func TestEvaluateExemptionsUnknownRole(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	valid := testGuest(model.GuestRoleLeader, "1970-01-01")
	unknown := testGuest(model.GuestRole("chef"), "1970-01-01")

	decisions, err := EvaluateExemptions([]model.Guest{valid, unknown}, rule, date("2025-05-01"), 2)
	require.Error(t, err)
	assert.Nil(t, decisions)
	assert.True(t, ierr.Is(err, ierr.ErrUnknownGuestRole))
}

func TestEvaluateExemptionsDuplicateGuest(t *testing.T) {
	rule := testRule("2.00", 5, 14)
	g := testGuest(model.GuestRoleLeader, "1970-01-01")

	_, err := EvaluateExemptions([]model.Guest{g, g}, rule, date("2025-05-01"), 2)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
