package testutil

import (
	"context"
	"time"

	"smartbook/internal/citytax"
	"smartbook/internal/model"

	"github.com/google/uuid"
)

// InMemoryTaxRuleStore implements repository.TaxRuleRepository
type InMemoryTaxRuleStore struct {
	*InMemoryStore[model.TaxRule]
}

func NewInMemoryTaxRuleStore() *InMemoryTaxRuleStore {
	return &InMemoryTaxRuleStore{InMemoryStore: NewInMemoryStore[model.TaxRule]("tax rule")}
}

func copyTaxRule(r model.TaxRule) model.TaxRule {
	if r.ValidUntil != nil {
		until := *r.ValidUntil
		r.ValidUntil = &until
	}
	return r
}

func byValidFrom(a, b model.TaxRule) int {
	return a.ValidFrom.Compare(b.ValidFrom)
}

func (s *InMemoryTaxRuleStore) Create(ctx context.Context, rule *model.TaxRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	now := time.Now().UTC()
	rule.CreatedAt, rule.UpdatedAt = now, now
	return s.Put(ctx, rule.ID, copyTaxRule(*rule))
}

func (s *InMemoryTaxRuleStore) Update(ctx context.Context, rule *model.TaxRule) error {
	rule.UpdatedAt = time.Now().UTC()
	return s.Replace(ctx, rule.ID, copyTaxRule(*rule))
}

func (s *InMemoryTaxRuleStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.FindByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.Remove(ctx, id)
}

func (s *InMemoryTaxRuleStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.TaxRule, error) {
	rule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule.TenantID != tenantID {
		return nil, s.notFound(id)
	}
	rule = copyTaxRule(rule)
	return &rule, nil
}

func (s *InMemoryTaxRuleStore) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]model.TaxRule, error) {
	return s.Filter(func(r model.TaxRule) bool { return r.TenantID == tenantID }, byValidFrom), nil
}

func (s *InMemoryTaxRuleStore) ListPage(_ context.Context, tenantID uuid.UUID, page, limit int) ([]model.TaxRule, int64, error) {
	rules := s.Filter(func(r model.TaxRule) bool { return r.TenantID == tenantID }, func(a, b model.TaxRule) int {
		return byValidFrom(b, a)
	})
	items, total := paginate(rules, page, limit)
	return items, total, nil
}

func (s *InMemoryTaxRuleStore) FindOverlapping(_ context.Context, tenantID uuid.UUID, from time.Time, until *time.Time, excludeID *uuid.UUID) ([]model.TaxRule, error) {
	candidate := model.TaxRule{ValidFrom: from, ValidUntil: until}
	return s.Filter(func(r model.TaxRule) bool {
		if r.TenantID != tenantID || (excludeID != nil && r.ID == *excludeID) {
			return false
		}
		return citytax.RulesOverlap(r, candidate)
	}, byValidFrom), nil
}
