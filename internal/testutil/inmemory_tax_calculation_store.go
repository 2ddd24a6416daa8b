package testutil

import (
	"context"
	"time"

	"smartbook/internal/model"

	"github.com/google/uuid"
)

// InMemoryTaxCalculationStore implements repository.TaxCalculationRepository.
// FindLatestByBooking resolves TaxRule from the attached rule store.
type InMemoryTaxCalculationStore struct {
	*InMemoryStore[model.TaxCalculation]
	rules *InMemoryTaxRuleStore
}

func NewInMemoryTaxCalculationStore(rules *InMemoryTaxRuleStore) *InMemoryTaxCalculationStore {
	return &InMemoryTaxCalculationStore{
		InMemoryStore: NewInMemoryStore[model.TaxCalculation]("tax calculation"),
		rules:         rules,
	}
}

func (s *InMemoryTaxCalculationStore) Create(ctx context.Context, calc *model.TaxCalculation) error {
	if calc.ID == uuid.Nil {
		calc.ID = uuid.New()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}
	return s.Put(ctx, calc.ID, *calc)
}

func (s *InMemoryTaxCalculationStore) CountByRule(_ context.Context, ruleID uuid.UUID) (int64, error) {
	calcs := s.Filter(func(c model.TaxCalculation) bool { return c.TaxRuleID == ruleID }, nil)
	return int64(len(calcs)), nil
}

func (s *InMemoryTaxCalculationStore) FindLatestByBooking(ctx context.Context, tenantID, bookingID uuid.UUID) (*model.TaxCalculation, error) {
	calcs := s.Filter(func(c model.TaxCalculation) bool {
		return c.TenantID == tenantID && c.BookingID == bookingID
	}, func(a, b model.TaxCalculation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(calcs) == 0 {
		return nil, s.notFound(bookingID)
	}

	latest := calcs[0]
	if rule, err := s.rules.FindByID(ctx, tenantID, latest.TaxRuleID); err == nil {
		latest.TaxRule = rule
	}
	return &latest, nil
}
