package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxCalculation is the persisted snapshot of one booking calculation.
// A rule referenced here can no longer be edited.
type TaxCalculation struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BookingID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"booking_id"`
	TaxRuleID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"tax_rule_id"`
	TaxRule            *TaxRule        `gorm:"foreignKey:TaxRuleID" json:"tax_rule,omitempty"`
	CheckInDate        time.Time       `gorm:"type:date;not null" json:"check_in_date"`
	TotalTax           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_tax"`
	TotalTaxableNights int             `gorm:"not null" json:"total_taxable_nights"`
	TotalExemptNights  int             `gorm:"not null" json:"total_exempt_nights"`
	Breakdown          string          `gorm:"type:jsonb" json:"breakdown"` // serialized guest breakdown
	CalculatedBy       *uuid.UUID      `gorm:"type:uuid" json:"calculated_by"`
	CreatedAt          time.Time       `gorm:"index" json:"created_at"`
}
