package service

import (
	"context"
	"time"

	"smartbook/internal/citytax"
	"smartbook/internal/logger"
	"smartbook/internal/model"
	"smartbook/internal/report"
	"smartbook/internal/repository"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
)

// defaultReportWorkers bounds concurrent booking calculations per report
const defaultReportWorkers = 8

// --- DTOs ---

type TaxReportResponse struct {
	Period      report.Period              `json:"period"`
	Property    report.Property            `json:"property"`
	Months      []string                   `json:"months,omitempty"`
	Summary     citytax.TaxReport          `json:"summary"`
	Bookings    []citytax.BookingTaxResult `json:"bookings"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// --- Interface ---

type TaxReportService interface {
	MonthlyReport(ctx context.Context, tenantID uuid.UUID, year, month int, userID string) (*TaxReportResponse, error)
	QuarterlyReport(ctx context.Context, tenantID uuid.UUID, year, quarter int, userID string) (*TaxReportResponse, error)
	RangeReport(ctx context.Context, tenantID uuid.UUID, period report.Period, userID string) (*TaxReportResponse, error)
}

type taxReportService struct {
	bookingRepo repository.BookingRepository
	rules       RuleProvider
	audit       auditLogger
	property    report.Property
	workers     int
	logger      *logger.Logger
}

func NewTaxReportService(
	bookingRepo repository.BookingRepository,
	auditRepo repository.AuditRepository,
	rules RuleProvider,
	property report.Property,
	log *logger.Logger,
) TaxReportService {
	return &taxReportService{
		bookingRepo: bookingRepo,
		rules:       rules,
		audit:       auditLogger{repo: auditRepo, logger: log},
		property:    property,
		workers:     defaultReportWorkers,
		logger:      log,
	}
}

// --- Implementation ---

func (s *taxReportService) MonthlyReport(ctx context.Context, tenantID uuid.UUID, year, month int, userID string) (*TaxReportResponse, error) {
	period, err := report.MonthlyPeriod(year, time.Month(month))
	if err != nil {
		return nil, err
	}
	return s.RangeReport(ctx, tenantID, period, userID)
}

func (s *taxReportService) QuarterlyReport(ctx context.Context, tenantID uuid.UUID, year, quarter int, userID string) (*TaxReportResponse, error) {
	period, err := report.QuarterlyPeriod(year, quarter)
	if err != nil {
		return nil, err
	}

	resp, err := s.RangeReport(ctx, tenantID, period, userID)
	if err != nil {
		return nil, err
	}
	resp.Months = report.QuarterMonths(quarter)
	return resp, nil
}

// RangeReport recalculates every booking checking in during the period,
// each with the rule valid at its own check-in, and aggregates the results.
// Any booking that cannot be calculated fails the whole report.
func (s *taxReportService) RangeReport(ctx context.Context, tenantID uuid.UUID, period report.Period, userID string) (*TaxReportResponse, error) {
	bookings, err := s.bookingRepo.ListByCheckInRange(ctx, tenantID, period.From, period.To)
	if err != nil {
		return nil, err
	}

	rules, err := s.rules.RulesForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	results := make([]citytax.BookingTaxResult, len(bookings))
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.workers)

	for i := range bookings {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := citytax.CalculateWithRules(bookings[i], bookings[i].Guests, rules)
			if err != nil {
				s.logger.Warnw("booking blocked report generation",
					"tenant_id", tenantID,
					"booking_id", bookings[i].ID,
					"period", period.Label,
					"error", err)
				return err
			}
			results[i] = *result
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	summary := citytax.GenerateReport(results, period.Label)

	s.audit.write(ctx, tenantID, userID, model.ActionGenerateTaxReport, string(period.Kind), period.Label, map[string]any{
		"from":      period.From.Format(citytax.DateLayout),
		"to":        period.To.Format(citytax.DateLayout),
		"bookings":  summary.TotalBookings,
		"total_tax": summary.TotalTax.StringFixed(2),
	})

	s.logger.Infow("city tax report generated",
		"tenant_id", tenantID,
		"period", period.Label,
		"bookings", summary.TotalBookings,
		"total_tax", summary.TotalTax.String())

	return &TaxReportResponse{
		Period:      period,
		Property:    s.property,
		Summary:     summary,
		Bookings:    results,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
