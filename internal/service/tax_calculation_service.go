package service

import (
	"context"
	"encoding/json"
	"time"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"
	"smartbook/internal/logger"
	"smartbook/internal/model"
	"smartbook/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type TaxCalculationResponse struct {
	CalculationID string `json:"calculation_id,omitempty"` // empty for previews
	CalculatedAt  string `json:"calculated_at"`
	citytax.BookingTaxResult
}

// --- Interface ---

type TaxCalculationService interface {
	CalculateBookingTax(ctx context.Context, tenantID uuid.UUID, bookingID string, userID string) (*TaxCalculationResponse, error)
	PreviewBookingTax(ctx context.Context, tenantID uuid.UUID, bookingID string) (*TaxCalculationResponse, error)
	GetLatestCalculation(ctx context.Context, tenantID uuid.UUID, bookingID string) (*TaxCalculationResponse, error)
}

type taxCalculationService struct {
	bookingRepo repository.BookingRepository
	guestRepo   repository.GuestRepository
	calcRepo    repository.TaxCalculationRepository
	rules       RuleProvider
	txManager   repository.TransactionManager
	audit       auditLogger
	publisher   EventPublisher
	logger      *logger.Logger
}

func NewTaxCalculationService(
	bookingRepo repository.BookingRepository,
	guestRepo repository.GuestRepository,
	calcRepo repository.TaxCalculationRepository,
	auditRepo repository.AuditRepository,
	rules RuleProvider,
	txManager repository.TransactionManager,
	publisher EventPublisher,
	log *logger.Logger,
) TaxCalculationService {
	return &taxCalculationService{
		bookingRepo: bookingRepo,
		guestRepo:   guestRepo,
		calcRepo:    calcRepo,
		rules:       rules,
		txManager:   txManager,
		audit:       auditLogger{repo: auditRepo, logger: log},
		publisher:   publisher,
		logger:      log,
	}
}

// --- Implementation ---

// CalculateBookingTax prices the booking with the rule valid at check-in and
// stores the result together with the guests' exemption flags.
func (s *taxCalculationService) CalculateBookingTax(ctx context.Context, tenantID uuid.UUID, bookingID string, userID string) (*TaxCalculationResponse, error) {
	booking, guests, err := s.loadBooking(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	result, err := s.calculate(ctx, booking, guests)
	if err != nil {
		return nil, err
	}

	breakdown, err := json.Marshal(result)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize tax breakdown").
			Mark(ierr.ErrSystem)
	}

	calc := &model.TaxCalculation{
		TenantID:           tenantID,
		BookingID:          booking.ID,
		TaxRuleID:          result.RuleID,
		CheckInDate:        result.CheckInDate,
		TotalTax:           result.TotalTax,
		TotalTaxableNights: result.TotalTaxableNights,
		TotalExemptNights:  result.TotalExemptNights,
		Breakdown:          string(breakdown),
	}
	if parsed, err := uuid.Parse(userID); err == nil {
		calc.CalculatedBy = &parsed
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.calcRepo.Create(txCtx, calc); err != nil {
			return err
		}
		return s.guestRepo.UpdateExemptions(txCtx, booking.ID, exemptionFlags(result))
	})
	if err != nil {
		return nil, err
	}

	s.audit.write(ctx, tenantID, userID, model.ActionCalculateTax, booking.ID.String(), "EUR "+result.TotalTax.StringFixed(2), map[string]any{
		"calculation_id": calc.ID.String(),
		"rule_id":        result.RuleID.String(),
		"total_tax":      result.TotalTax.StringFixed(2),
	})

	s.publisher.Publish(tenantID, EventTaxCalculated, map[string]any{
		"booking_id":     booking.ID.String(),
		"calculation_id": calc.ID.String(),
		"total_tax":      result.TotalTax.StringFixed(2),
		"guests":         len(result.GuestBreakdown),
	})

	s.logger.Infow("city tax calculated",
		"tenant_id", tenantID,
		"booking_id", booking.ID,
		"rule_id", result.RuleID,
		"total_tax", result.TotalTax.String(),
		"taxable_nights", result.TotalTaxableNights,
		"exempt_nights", result.TotalExemptNights)

	return &TaxCalculationResponse{
		CalculationID:    calc.ID.String(),
		CalculatedAt:     calc.CreatedAt.Format(time.RFC3339),
		BookingTaxResult: *result,
	}, nil
}

// PreviewBookingTax runs the same calculation without storing anything.
func (s *taxCalculationService) PreviewBookingTax(ctx context.Context, tenantID uuid.UUID, bookingID string) (*TaxCalculationResponse, error) {
	booking, guests, err := s.loadBooking(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	result, err := s.calculate(ctx, booking, guests)
	if err != nil {
		return nil, err
	}

	return &TaxCalculationResponse{
		CalculatedAt:     time.Now().UTC().Format(time.RFC3339),
		BookingTaxResult: *result,
	}, nil
}

func (s *taxCalculationService) GetLatestCalculation(ctx context.Context, tenantID uuid.UUID, bookingID string) (*TaxCalculationResponse, error) {
	id, err := parseUUID(bookingID, "booking")
	if err != nil {
		return nil, err
	}

	calc, err := s.calcRepo.FindLatestByBooking(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	resp := &TaxCalculationResponse{
		CalculationID: calc.ID.String(),
		CalculatedAt:  calc.CreatedAt.Format(time.RFC3339),
	}
	if err := json.Unmarshal([]byte(calc.Breakdown), &resp.BookingTaxResult); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored tax breakdown is unreadable").
			WithReportableDetails(map[string]any{"calculation_id": calc.ID.String()}).
			Mark(ierr.ErrSystem)
	}
	return resp, nil
}

// --- Helpers ---

func (s *taxCalculationService) loadBooking(ctx context.Context, tenantID uuid.UUID, bookingID string) (*model.Booking, []model.Guest, error) {
	id, err := parseUUID(bookingID, "booking")
	if err != nil {
		return nil, nil, err
	}

	booking, err := s.bookingRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}

	guests, err := s.guestRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, nil, err
	}
	return booking, guests, nil
}

func (s *taxCalculationService) calculate(ctx context.Context, booking *model.Booking, guests []model.Guest) (*citytax.BookingTaxResult, error) {
	rules, err := s.rules.RulesForTenant(ctx, booking.TenantID)
	if err != nil {
		return nil, err
	}

	result, err := citytax.CalculateWithRules(*booking, guests, rules)
	if err != nil {
		if ierr.IsCityTaxError(err) {
			s.logger.Warnw("city tax calculation rejected",
				"tenant_id", booking.TenantID,
				"booking_id", booking.ID,
				"error", err)
		}
		return nil, err
	}

	if len(result.Warnings) > 0 {
		s.logger.Warnw("tax rule configuration warnings",
			"tenant_id", booking.TenantID,
			"booking_id", booking.ID,
			"rule_id", result.RuleID,
			"warnings", result.Warnings)
	}
	return result, nil
}

func exemptionFlags(result *citytax.BookingTaxResult) map[uuid.UUID]*model.ExemptionReason {
	flags := make(map[uuid.UUID]*model.ExemptionReason, len(result.GuestBreakdown))
	for _, g := range result.GuestBreakdown {
		flags[g.GuestID] = g.ExemptionReason
	}
	return flags
}
