package model

// GuestRole is the role of a guest within a booking
type GuestRole string

const (
	GuestRoleLeader    GuestRole = "leader"     // Capogruppo / Capofamiglia
	GuestRoleMember    GuestRole = "member"     // group or family member
	GuestRoleBusDriver GuestRole = "bus_driver" // exempt up to the driver ratio
	GuestRoleTourGuide GuestRole = "tour_guide"
)

// GuestRoles lists every known role in declaration order
var GuestRoles = []GuestRole{GuestRoleLeader, GuestRoleMember, GuestRoleBusDriver, GuestRoleTourGuide}

func (r GuestRole) IsValid() bool {
	switch r {
	case GuestRoleLeader, GuestRoleMember, GuestRoleBusDriver, GuestRoleTourGuide:
		return true
	}
	return false
}

// ExemptionReason explains why a guest pays no city tax
type ExemptionReason string

const (
	ExemptionAge            ExemptionReason = "age"
	ExemptionBusDriverRatio ExemptionReason = "bus_driver_ratio"
	ExemptionTourGuide      ExemptionReason = "tour_guide"
)

// ExemptionReasons lists the reasons in precedence order
var ExemptionReasons = []ExemptionReason{ExemptionAge, ExemptionBusDriverRatio, ExemptionTourGuide}

// Sex as recorded for TULPS registration
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// BookingType enum constants
const (
	BookingTypeIndividual = "individual"
	BookingTypeFamily     = "family"
	BookingTypeGroup      = "group"
)

// BookingStatus enum constants
const (
	BookingStatusPending    = "pending"
	BookingStatusInProgress = "in_progress"
	BookingStatusComplete   = "complete"
)
