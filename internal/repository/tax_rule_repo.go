package repository

import (
	"context"
	"time"

	"smartbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxRuleRepository interface {
	Create(ctx context.Context, rule *model.TaxRule) error
	Update(ctx context.Context, rule *model.TaxRule) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.TaxRule, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TaxRule, error)
	ListPage(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.TaxRule, int64, error)
	FindOverlapping(ctx context.Context, tenantID uuid.UUID, from time.Time, until *time.Time, excludeID *uuid.UUID) ([]model.TaxRule, error)
}

type taxRuleRepository struct {
	db *gorm.DB
}

func NewTaxRuleRepository(db *gorm.DB) TaxRuleRepository {
	return &taxRuleRepository{db: db}
}

func (r *taxRuleRepository) Create(ctx context.Context, rule *model.TaxRule) error {
	err := GetDB(ctx, r.db).Create(rule).Error
	return translate(err, "tax rule", map[string]any{"tenant_id": rule.TenantID})
}

func (r *taxRuleRepository) Update(ctx context.Context, rule *model.TaxRule) error {
	err := GetDB(ctx, r.db).Save(rule).Error
	return translate(err, "tax rule", map[string]any{"rule_id": rule.ID})
}

func (r *taxRuleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&model.TaxRule{})
	if result.Error == nil && result.RowsAffected == 0 {
		result.Error = gorm.ErrRecordNotFound
	}
	return translate(result.Error, "tax rule", map[string]any{"rule_id": id})
}

func (r *taxRuleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.TaxRule, error) {
	var rule model.TaxRule
	if err := GetDB(ctx, r.db).First(&rule, "tenant_id = ? AND id = ?", tenantID, id).Error; err != nil {
		return nil, translate(err, "tax rule", map[string]any{"rule_id": id})
	}
	return &rule, nil
}

// ListByTenant returns every rule of the tenant, the input of rule selection.
func (r *taxRuleRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TaxRule, error) {
	var rules []model.TaxRule
	if err := GetDB(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("valid_from ASC").
		Find(&rules).Error; err != nil {
		return nil, translate(err, "tax rules", map[string]any{"tenant_id": tenantID})
	}
	return rules, nil
}

func (r *taxRuleRepository) ListPage(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.TaxRule, int64, error) {
	var rules []model.TaxRule
	var total int64

	db := GetDB(ctx, r.db).Where("tenant_id = ?", tenantID).Session(&gorm.Session{})
	if err := db.Model(&model.TaxRule{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "tax rules", nil)
	}

	offset := (page - 1) * limit
	if err := db.Order("valid_from desc").Offset(offset).Limit(limit).Find(&rules).Error; err != nil {
		return nil, 0, translate(err, "tax rules", nil)
	}

	return rules, total, nil
}

// FindOverlapping returns the tenant rules whose validity window shares a
// day with [from, until]. A nil until means open ended.
func (r *taxRuleRepository) FindOverlapping(ctx context.Context, tenantID uuid.UUID, from time.Time, until *time.Time, excludeID *uuid.UUID) ([]model.TaxRule, error) {
	var rules []model.TaxRule
	query := GetDB(ctx, r.db).Where("tenant_id = ?", tenantID)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	if until != nil {
		// existing.from <= new.until AND (existing.until IS NULL OR existing.until >= new.from)
		query = query.Where("valid_from <= ? AND (valid_until IS NULL OR valid_until >= ?)", *until, from)
	} else {
		query = query.Where("(valid_until IS NULL OR valid_until >= ?)", from)
	}

	if err := query.Find(&rules).Error; err != nil {
		return nil, translate(err, "tax rules", map[string]any{"tenant_id": tenantID})
	}
	return rules, nil
}
