package repository

import (
	"context"

	"smartbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxCalculationRepository interface {
	Create(ctx context.Context, calc *model.TaxCalculation) error
	CountByRule(ctx context.Context, ruleID uuid.UUID) (int64, error)
	FindLatestByBooking(ctx context.Context, tenantID, bookingID uuid.UUID) (*model.TaxCalculation, error)
}

type taxCalculationRepository struct {
	db *gorm.DB
}

func NewTaxCalculationRepository(db *gorm.DB) TaxCalculationRepository {
	return &taxCalculationRepository{db: db}
}

func (r *taxCalculationRepository) Create(ctx context.Context, calc *model.TaxCalculation) error {
	err := GetDB(ctx, r.db).Create(calc).Error
	return translate(err, "tax calculation", map[string]any{"booking_id": calc.BookingID})
}

// CountByRule reports how many persisted calculations reference the rule.
func (r *taxCalculationRepository) CountByRule(ctx context.Context, ruleID uuid.UUID) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).
		Model(&model.TaxCalculation{}).
		Where("tax_rule_id = ?", ruleID).
		Count(&count).Error; err != nil {
		return 0, translate(err, "tax calculations", map[string]any{"rule_id": ruleID})
	}
	return count, nil
}

func (r *taxCalculationRepository) FindLatestByBooking(ctx context.Context, tenantID, bookingID uuid.UUID) (*model.TaxCalculation, error) {
	var calc model.TaxCalculation
	if err := GetDB(ctx, r.db).
		Preload("TaxRule").
		Where("tenant_id = ? AND booking_id = ?", tenantID, bookingID).
		Order("created_at DESC").
		First(&calc).Error; err != nil {
		return nil, translate(err, "tax calculation", map[string]any{"booking_id": bookingID})
	}
	return &calc, nil
}
