package service

import (
	"context"
	"slices"
	"time"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"
	"smartbook/internal/logger"
	"smartbook/internal/model"
	"smartbook/internal/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type TaxRuleRequest struct {
	ValidFrom               string `json:"valid_from" binding:"required"`          // YYYY-MM-DD
	ValidUntil              string `json:"valid_until"`                            // YYYY-MM-DD, empty for open ended
	BaseRatePerNight        string `json:"base_rate_per_night" binding:"required"` // Decimal string, e.g. "2.50"
	MaxTaxableNights        int    `json:"max_taxable_nights" binding:"required"`
	AgeExemptionThreshold   int    `json:"age_exemption_threshold"`
	BusDriverRatio          *int   `json:"bus_driver_ratio"` // defaults to 25
	TourGuideExempt         bool   `json:"tour_guide_exempt"`
	StructureClassification string `json:"structure_classification"`
}

type TaxRuleResponse struct {
	ID                      string               `json:"id"`
	ValidFrom               string               `json:"valid_from"`
	ValidUntil              *string              `json:"valid_until"`
	BaseRatePerNight        string               `json:"base_rate_per_night"`
	MaxTaxableNights        int                  `json:"max_taxable_nights"`
	AgeExemptionThreshold   int                  `json:"age_exemption_threshold"`
	ExemptionRules          model.ExemptionRules `json:"exemption_rules"`
	StructureClassification string               `json:"structure_classification"`
	Warnings                []string             `json:"warnings,omitempty"`
	CreatedAt               string               `json:"created_at"`
}

// --- Interface ---

type TaxRuleService interface {
	RuleProvider
	ListTaxRules(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]TaxRuleResponse, int64, error)
	GetTaxRule(ctx context.Context, tenantID uuid.UUID, id string) (*TaxRuleResponse, error)
	CreateTaxRule(ctx context.Context, tenantID uuid.UUID, req TaxRuleRequest, userID string) (*TaxRuleResponse, error)
	UpdateTaxRule(ctx context.Context, tenantID uuid.UUID, id string, req TaxRuleRequest, userID string) (*TaxRuleResponse, error)
	DeleteTaxRule(ctx context.Context, tenantID uuid.UUID, id string, userID string) error
}

type taxRuleService struct {
	repo      repository.TaxRuleRepository
	calcRepo  repository.TaxCalculationRepository
	txManager repository.TransactionManager
	audit     auditLogger
	publisher EventPublisher
	rules     *gocache.Cache
	logger    *logger.Logger
}

func NewTaxRuleService(
	repo repository.TaxRuleRepository,
	calcRepo repository.TaxCalculationRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	publisher EventPublisher,
	ruleTTL time.Duration,
	log *logger.Logger,
) TaxRuleService {
	return &taxRuleService{
		repo:      repo,
		calcRepo:  calcRepo,
		txManager: txManager,
		audit:     auditLogger{repo: auditRepo, logger: log},
		publisher: publisher,
		rules:     gocache.New(ruleTTL, 2*ruleTTL),
		logger:    log,
	}
}

// --- Implementation ---

// RulesForTenant returns every rule of the tenant, served from cache until a
// rule changes or the TTL runs out.
func (s *taxRuleService) RulesForTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TaxRule, error) {
	key := tenantID.String()
	if cached, ok := s.rules.Get(key); ok {
		return slices.Clone(cached.([]model.TaxRule)), nil
	}

	rules, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	s.rules.SetDefault(key, rules)
	return slices.Clone(rules), nil
}

func (s *taxRuleService) ListTaxRules(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]TaxRuleResponse, int64, error) {
	rules, total, err := s.repo.ListPage(ctx, tenantID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := lo.Map(rules, func(r model.TaxRule, _ int) TaxRuleResponse {
		return toTaxRuleResponse(r)
	})
	return res, total, nil
}

func (s *taxRuleService) GetTaxRule(ctx context.Context, tenantID uuid.UUID, id string) (*TaxRuleResponse, error) {
	ruleID, err := parseUUID(id, "tax rule")
	if err != nil {
		return nil, err
	}

	rule, err := s.repo.FindByID(ctx, tenantID, ruleID)
	if err != nil {
		return nil, err
	}

	resp := toTaxRuleResponse(*rule)
	resp.Warnings, _ = citytax.ValidateRule(*rule)
	return &resp, nil
}

func (s *taxRuleService) CreateTaxRule(ctx context.Context, tenantID uuid.UUID, req TaxRuleRequest, userID string) (*TaxRuleResponse, error) {
	rule := &model.TaxRule{TenantID: tenantID}
	if err := applyTaxRuleRequest(rule, req); err != nil {
		return nil, err
	}

	warnings, err := citytax.ValidateRule(*rule)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkOverlap(txCtx, rule, nil); err != nil {
			return err
		}
		return s.repo.Create(txCtx, rule)
	})
	if err != nil {
		return nil, err
	}

	s.ruleChanged(ctx, *rule, userID, model.ActionCreateTaxRule, warnings, req)

	resp := toTaxRuleResponse(*rule)
	resp.Warnings = warnings
	return &resp, nil
}

func (s *taxRuleService) UpdateTaxRule(ctx context.Context, tenantID uuid.UUID, id string, req TaxRuleRequest, userID string) (*TaxRuleResponse, error) {
	ruleID, err := parseUUID(id, "tax rule")
	if err != nil {
		return nil, err
	}

	var (
		rule     *model.TaxRule
		warnings []string
	)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, tenantID, ruleID)
		if err != nil {
			return err
		}
		if err := s.ensureUnreferenced(txCtx, existing.ID); err != nil {
			return err
		}

		rule = existing
		if err := applyTaxRuleRequest(rule, req); err != nil {
			return err
		}

		warnings, err = citytax.ValidateRule(*rule)
		if err != nil {
			return err
		}

		// Validate overlap (exclude self)
		if err := s.checkOverlap(txCtx, rule, &rule.ID); err != nil {
			return err
		}
		return s.repo.Update(txCtx, rule)
	})
	if err != nil {
		return nil, err
	}

	s.ruleChanged(ctx, *rule, userID, model.ActionUpdateTaxRule, warnings, req)

	resp := toTaxRuleResponse(*rule)
	resp.Warnings = warnings
	return &resp, nil
}

func (s *taxRuleService) DeleteTaxRule(ctx context.Context, tenantID uuid.UUID, id string, userID string) error {
	ruleID, err := parseUUID(id, "tax rule")
	if err != nil {
		return err
	}

	var rule *model.TaxRule
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, tenantID, ruleID)
		if err != nil {
			return err
		}
		rule = found
		if err := s.ensureUnreferenced(txCtx, rule.ID); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, tenantID, rule.ID)
	})
	if err != nil {
		return err
	}

	s.ruleChanged(ctx, *rule, userID, model.ActionDeleteTaxRule, nil, map[string]string{"deleted_id": id})
	return nil
}

// --- Helpers ---

func parseTaxRuleFields(rateStr, fromStr, untilStr string) (decimal.Decimal, time.Time, *time.Time, error) {
	rate, err := citytax.ParseRate(rateStr)
	if err != nil {
		return decimal.Zero, time.Time{}, nil, err
	}

	validFrom, err := citytax.ParseDate(fromStr)
	if err != nil {
		return decimal.Zero, time.Time{}, nil, err
	}

	var validUntil *time.Time
	if untilStr != "" {
		t, err := citytax.ParseDate(untilStr)
		if err != nil {
			return decimal.Zero, time.Time{}, nil, err
		}
		if t.Before(validFrom) {
			return decimal.Zero, time.Time{}, nil, ierr.NewErrorf("valid_until %s before valid_from %s", untilStr, fromStr).
				WithHint("valid_until must not be before valid_from").
				Mark(ierr.ErrValidation)
		}
		validUntil = &t
	}

	return rate, validFrom, validUntil, nil
}

func applyTaxRuleRequest(rule *model.TaxRule, req TaxRuleRequest) error {
	rate, validFrom, validUntil, err := parseTaxRuleFields(req.BaseRatePerNight, req.ValidFrom, req.ValidUntil)
	if err != nil {
		return err
	}

	rule.ValidFrom = validFrom
	rule.ValidUntil = validUntil
	rule.BaseRatePerNight = rate
	rule.MaxTaxableNights = req.MaxTaxableNights
	rule.AgeExemptionThreshold = req.AgeExemptionThreshold
	rule.ExemptionRules = model.ExemptionRules{
		BusDriverRatio:  lo.FromPtrOr(req.BusDriverRatio, model.DefaultBusDriverRatio),
		TourGuideExempt: req.TourGuideExempt,
	}
	rule.StructureClassification = req.StructureClassification
	return nil
}

// checkOverlap keeps validity windows of a tenant disjoint.
func (s *taxRuleService) checkOverlap(ctx context.Context, rule *model.TaxRule, excludeID *uuid.UUID) error {
	overlapping, err := s.repo.FindOverlapping(ctx, rule.TenantID, rule.ValidFrom, rule.ValidUntil, excludeID)
	if err != nil {
		return err
	}

	if len(overlapping) > 0 {
		ids := lo.Map(overlapping, func(r model.TaxRule, _ int) string { return r.ID.String() })
		return ierr.NewErrorf("validity window overlaps %d existing rules", len(overlapping)).
			WithHint("Another tax rule is already valid in this period").
			WithReportableDetails(map[string]any{"overlapping_rule_ids": ids}).
			Mark(ierr.ErrAmbiguousRuleConfiguration)
	}
	return nil
}

// ensureUnreferenced refuses changes to a rule that priced a stored calculation.
func (s *taxRuleService) ensureUnreferenced(ctx context.Context, ruleID uuid.UUID) error {
	count, err := s.calcRepo.CountByRule(ctx, ruleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ierr.NewErrorf("rule %s referenced by %d calculations", ruleID, count).
			WithHint("This tax rule was used for stored calculations and can no longer be changed, close it with valid_until and create a new one").
			WithReportableDetails(map[string]any{"rule_id": ruleID.String(), "calculations": count}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

func (s *taxRuleService) ruleChanged(ctx context.Context, rule model.TaxRule, userID, action string, warnings []string, details any) {
	s.rules.Delete(rule.TenantID.String())

	s.audit.write(ctx, rule.TenantID, userID, action, rule.ID.String(), describeRule(rule), details)

	if len(warnings) > 0 {
		s.logger.Warnw("tax rule saved with configuration warnings",
			"tenant_id", rule.TenantID,
			"rule_id", rule.ID,
			"warnings", warnings)
	}

	s.publisher.Publish(rule.TenantID, EventTaxRuleChange, map[string]string{
		"rule_id": rule.ID.String(),
		"action":  action,
	})
}

func describeRule(r model.TaxRule) string {
	name := r.ValidFrom.Format(citytax.DateLayout) + " " + r.BaseRatePerNight.StringFixed(2) + " EUR/night"
	if r.StructureClassification != "" {
		name = r.StructureClassification + " " + name
	}
	return name
}

func toTaxRuleResponse(r model.TaxRule) TaxRuleResponse {
	resp := TaxRuleResponse{
		ID:                      r.ID.String(),
		ValidFrom:               r.ValidFrom.Format(citytax.DateLayout),
		BaseRatePerNight:        r.BaseRatePerNight.StringFixed(2),
		MaxTaxableNights:        r.MaxTaxableNights,
		AgeExemptionThreshold:   r.AgeExemptionThreshold,
		ExemptionRules:          r.ExemptionRules,
		StructureClassification: r.StructureClassification,
		CreatedAt:               r.CreatedAt.Format(time.RFC3339),
	}
	if r.ValidUntil != nil {
		s := r.ValidUntil.Format(citytax.DateLayout)
		resp.ValidUntil = &s
	}
	return resp
}
