package service

import (
	"context"
	"time"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"
	"smartbook/internal/logger"
	"smartbook/internal/model"
	"smartbook/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// --- DTOs ---

type GuestRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Sex         string `json:"sex" binding:"omitempty,oneof=M F"`
	DateOfBirth string `json:"date_of_birth" binding:"required"` // YYYY-MM-DD
	Role        string `json:"role" binding:"required"`
}

type CreateBookingRequest struct {
	BookingType    string         `json:"booking_type" binding:"required,oneof=individual family group"`
	CheckInDate    string         `json:"check_in_date" binding:"required"`
	CheckOutDate   string         `json:"check_out_date" binding:"required"`
	ExpectedGuests int            `json:"expected_guests" binding:"required,min=1"`
	Notes          string         `json:"notes"`
	Guests         []GuestRequest `json:"guests" binding:"dive"`
}

type GuestResponse struct {
	ID                 string                 `json:"id"`
	Position           int                    `json:"position"`
	Role               model.GuestRole        `json:"role"`
	FirstName          string                 `json:"first_name"`
	LastName           string                 `json:"last_name"`
	Sex                model.Sex              `json:"sex,omitempty"`
	DateOfBirth        string                 `json:"date_of_birth"`
	IsTaxExempt        bool                   `json:"is_tax_exempt"`
	TaxExemptionReason *model.ExemptionReason `json:"tax_exemption_reason,omitempty"`
}

type BookingResponse struct {
	ID             string          `json:"id"`
	BookingType    string          `json:"booking_type"`
	CheckInDate    string          `json:"check_in_date"`
	CheckOutDate   string          `json:"check_out_date"`
	Nights         int             `json:"nights"`
	ExpectedGuests int             `json:"expected_guests"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	Guests         []GuestResponse `json:"guests"`
	CreatedAt      string          `json:"created_at"`
}

// --- Interface ---

type BookingService interface {
	CreateBooking(ctx context.Context, tenantID uuid.UUID, req CreateBookingRequest, userID string) (*BookingResponse, error)
	GetBooking(ctx context.Context, tenantID uuid.UUID, id string) (*BookingResponse, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	guestRepo   repository.GuestRepository
	audit       auditLogger
	logger      *logger.Logger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	guestRepo repository.GuestRepository,
	auditRepo repository.AuditRepository,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		guestRepo:   guestRepo,
		audit:       auditLogger{repo: auditRepo, logger: log},
		logger:      log,
	}
}

// --- Implementation ---

func (s *bookingService) CreateBooking(ctx context.Context, tenantID uuid.UUID, req CreateBookingRequest, userID string) (*BookingResponse, error) {
	booking, err := buildBooking(tenantID, req)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.audit.write(ctx, tenantID, userID, model.ActionCreateBooking, booking.ID.String(), booking.BookingType, map[string]any{
		"check_in":        booking.CheckInDate.Format(citytax.DateLayout),
		"check_out":       booking.CheckOutDate.Format(citytax.DateLayout),
		"expected_guests": booking.ExpectedGuests,
		"guests":          len(booking.Guests),
	})

	return toBookingResponse(booking, booking.Guests), nil
}

func (s *bookingService) GetBooking(ctx context.Context, tenantID uuid.UUID, id string) (*BookingResponse, error) {
	bookingID, err := parseUUID(id, "booking")
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.FindByID(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	guests, err := s.guestRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	return toBookingResponse(booking, guests), nil
}

// --- Helpers ---

func buildBooking(tenantID uuid.UUID, req CreateBookingRequest) (*model.Booking, error) {
	checkIn, err := citytax.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := citytax.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if citytax.Nights(checkIn, checkOut) <= 0 {
		return nil, ierr.NewErrorf("check-out %s not after check-in %s", req.CheckOutDate, req.CheckInDate).
			WithHint("Check-out date must be after check-in date").
			Mark(ierr.ErrInvalidDateRange)
	}

	booking := &model.Booking{
		TenantID:       tenantID,
		BookingType:    req.BookingType,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		ExpectedGuests: req.ExpectedGuests,
		Status:         model.BookingStatusPending,
		Notes:          req.Notes,
		Guests:         make([]model.Guest, 0, len(req.Guests)),
	}

	for i, g := range req.Guests {
		guest, err := buildGuest(i, g, checkIn)
		if err != nil {
			return nil, err
		}
		booking.Guests = append(booking.Guests, guest)
	}

	return booking, nil
}

func buildGuest(position int, req GuestRequest, checkIn time.Time) (model.Guest, error) {
	role := model.GuestRole(req.Role)
	if !role.IsValid() {
		return model.Guest{}, ierr.NewErrorf("unknown guest role %q", req.Role).
			WithHintf("Guest %d has an unknown role %q, expected one of %v", position+1, req.Role, model.GuestRoles).
			Mark(ierr.ErrUnknownGuestRole)
	}

	dateOfBirth, err := citytax.ParseDate(req.DateOfBirth)
	if err != nil {
		return model.Guest{}, err
	}
	if dateOfBirth.After(checkIn) {
		return model.Guest{}, ierr.NewErrorf("guest %d born after check-in", position+1).
			WithHintf("Date of birth of guest %d is after the check-in date", position+1).
			Mark(ierr.ErrValidation)
	}

	return model.Guest{
		ID:          uuid.New(),
		Position:    position,
		Role:        role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Sex:         model.Sex(req.Sex),
		DateOfBirth: dateOfBirth,
	}, nil
}

func toBookingResponse(b *model.Booking, guests []model.Guest) *BookingResponse {
	return &BookingResponse{
		ID:             b.ID.String(),
		BookingType:    b.BookingType,
		CheckInDate:    b.CheckInDate.Format(citytax.DateLayout),
		CheckOutDate:   b.CheckOutDate.Format(citytax.DateLayout),
		Nights:         citytax.Nights(b.CheckInDate, b.CheckOutDate),
		ExpectedGuests: b.ExpectedGuests,
		Status:         b.Status,
		Notes:          b.Notes,
		Guests: lo.Map(guests, func(g model.Guest, _ int) GuestResponse {
			return GuestResponse{
				ID:                 g.ID.String(),
				Position:           g.Position,
				Role:               g.Role,
				FirstName:          g.FirstName,
				LastName:           g.LastName,
				Sex:                g.Sex,
				DateOfBirth:        g.DateOfBirth.Format(citytax.DateLayout),
				IsTaxExempt:        g.IsTaxExempt,
				TaxExemptionReason: g.TaxExemptionReason,
			}
		}),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
