package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultBusDriverRatio applies when a rule is created without a ratio
const DefaultBusDriverRatio = 25

// ExemptionRules holds the role based exemption parameters of a TaxRule
type ExemptionRules struct {
	BusDriverRatio  int  `json:"bus_driver_ratio"`  // 1 exempt driver per N guests
	TourGuideExempt bool `json:"tour_guide_exempt"` // every tour guide is exempt
}

// TaxRule is a versioned city tax (Imposta di Soggiorno) policy of one property
type TaxRule struct {
	ID                      uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID                uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ValidFrom               time.Time       `gorm:"type:date;not null;index" json:"valid_from"` // inclusive
	ValidUntil              *time.Time      `gorm:"type:date;index" json:"valid_until"`         // inclusive, nil = open ended
	BaseRatePerNight        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_rate_per_night"`
	MaxTaxableNights        int             `gorm:"not null" json:"max_taxable_nights"`
	AgeExemptionThreshold   int             `gorm:"not null;default:0" json:"age_exemption_threshold"`
	ExemptionRules          ExemptionRules  `gorm:"type:jsonb;serializer:json;not null" json:"exemption_rules"`
	StructureClassification string          `gorm:"type:varchar(50)" json:"structure_classification"` // informational only
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}
