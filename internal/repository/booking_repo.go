package repository

import (
	"context"
	"time"

	"smartbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Booking, error)
	ListByCheckInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]model.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func guestsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the booking together with its guests.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	err := GetDB(ctx, r.db).Create(booking).Error
	return translate(err, "booking", map[string]any{"tenant_id": booking.TenantID})
}

// FindByID loads the booking row only; guests come from GuestRepository.
func (r *bookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := GetDB(ctx, r.db).First(&booking, "tenant_id = ? AND id = ?", tenantID, id).Error; err != nil {
		return nil, translate(err, "booking", map[string]any{"booking_id": id})
	}
	return &booking, nil
}

// ListByCheckInRange returns bookings whose check-in falls in [from, to],
// guests preloaded in entry order.
func (r *bookingRepository) ListByCheckInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := GetDB(ctx, r.db).
		Preload("Guests", guestsInOrder).
		Where("tenant_id = ? AND check_in_date BETWEEN ? AND ?", tenantID, from, to).
		Order("check_in_date ASC, id ASC").
		Find(&bookings).Error; err != nil {
		return nil, translate(err, "bookings", map[string]any{
			"tenant_id": tenantID,
			"from":      from,
			"to":        to,
		})
	}
	return bookings, nil
}
