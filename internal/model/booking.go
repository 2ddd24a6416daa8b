package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a reservation whose guests owe city tax for the nights of stay
type Booking struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BookingType    string    `gorm:"type:varchar(20);not null" json:"booking_type"`
	CheckInDate    time.Time `gorm:"type:date;not null;index" json:"check_in_date"`
	CheckOutDate   time.Time `gorm:"type:date;not null" json:"check_out_date"`
	ExpectedGuests int       `gorm:"not null" json:"expected_guests"` // party size used by ratio exemptions
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes          string    `gorm:"type:text" json:"notes"`
	Guests         []Guest   `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"guests,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Guest is a person registered on a booking (TULPS minimum data)
type Guest struct {
	ID                 uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookingID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"booking_id"`
	Position           int              `gorm:"not null;default:0" json:"position"` // entry order within the booking
	Role               GuestRole        `gorm:"type:varchar(20);not null" json:"role"`
	FirstName          string           `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName           string           `gorm:"type:varchar(100);not null" json:"last_name"`
	Sex                Sex              `gorm:"type:varchar(1)" json:"sex"`
	DateOfBirth        time.Time        `gorm:"type:date;not null" json:"date_of_birth"`
	IsTaxExempt        bool             `gorm:"not null;default:false" json:"is_tax_exempt"`
	TaxExemptionReason *ExemptionReason `gorm:"type:varchar(30)" json:"tax_exemption_reason"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// FullName is the denormalized name printed on tax breakdowns
func (g Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
