package repository

import (
	"context"

	"smartbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestRepository interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Guest, error)
	UpdateExemptions(ctx context.Context, bookingID uuid.UUID, reasons map[uuid.UUID]*model.ExemptionReason) error
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Guest, error) {
	var guests []model.Guest
	if err := GetDB(ctx, r.db).
		Where("booking_id = ?", bookingID).
		Order("position ASC").
		Find(&guests).Error; err != nil {
		return nil, translate(err, "guests", map[string]any{"booking_id": bookingID})
	}
	return guests, nil
}

// UpdateExemptions stores the is_tax_exempt flags of the latest calculation.
// A nil reason marks the guest taxable.
func (r *guestRepository) UpdateExemptions(ctx context.Context, bookingID uuid.UUID, reasons map[uuid.UUID]*model.ExemptionReason) error {
	db := GetDB(ctx, r.db)
	for guestID, reason := range reasons {
		err := db.Model(&model.Guest{}).
			Where("booking_id = ? AND id = ?", bookingID, guestID).
			Updates(map[string]any{
				"is_tax_exempt":        reason != nil,
				"tax_exemption_reason": reason,
			}).Error
		if err != nil {
			return translate(err, "guest", map[string]any{"guest_id": guestID})
		}
	}
	return nil
}
