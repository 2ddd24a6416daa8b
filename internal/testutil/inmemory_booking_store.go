package testutil

import (
	"context"
	"time"

	"smartbook/internal/model"

	"github.com/google/uuid"
)

// InMemoryBookingStore implements repository.BookingRepository. Guests of a
// created booking land in the attached guest store.
type InMemoryBookingStore struct {
	*InMemoryStore[model.Booking]
	guests *InMemoryGuestStore
}

func NewInMemoryBookingStore(guests *InMemoryGuestStore) *InMemoryBookingStore {
	return &InMemoryBookingStore{
		InMemoryStore: NewInMemoryStore[model.Booking]("booking"),
		guests:        guests,
	}
}

func (s *InMemoryBookingStore) Create(ctx context.Context, booking *model.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := time.Now().UTC()
	booking.CreatedAt, booking.UpdatedAt = now, now

	for i := range booking.Guests {
		g := &booking.Guests[i]
		if g.ID == uuid.Nil {
			g.ID = uuid.New()
		}
		g.BookingID = booking.ID
		if err := s.guests.Put(ctx, g.ID, *g); err != nil {
			return err
		}
	}

	stored := *booking
	stored.Guests = nil
	return s.Put(ctx, booking.ID, stored)
}

func (s *InMemoryBookingStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.TenantID != tenantID {
		return nil, s.notFound(id)
	}
	return &booking, nil
}

func (s *InMemoryBookingStore) ListByCheckInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]model.Booking, error) {
	bookings := s.Filter(func(b model.Booking) bool {
		return b.TenantID == tenantID && !b.CheckInDate.Before(from) && !b.CheckInDate.After(to)
	}, func(a, b model.Booking) int {
		return a.CheckInDate.Compare(b.CheckInDate)
	})

	for i := range bookings {
		guests, err := s.guests.ListByBooking(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
		bookings[i].Guests = guests
	}
	return bookings, nil
}

// InMemoryGuestStore implements repository.GuestRepository
type InMemoryGuestStore struct {
	*InMemoryStore[model.Guest]
}

func NewInMemoryGuestStore() *InMemoryGuestStore {
	return &InMemoryGuestStore{InMemoryStore: NewInMemoryStore[model.Guest]("guest")}
}

func (s *InMemoryGuestStore) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]model.Guest, error) {
	return s.Filter(func(g model.Guest) bool { return g.BookingID == bookingID }, func(a, b model.Guest) int {
		return a.Position - b.Position
	}), nil
}

func (s *InMemoryGuestStore) UpdateExemptions(ctx context.Context, bookingID uuid.UUID, reasons map[uuid.UUID]*model.ExemptionReason) error {
	guests, _ := s.ListByBooking(ctx, bookingID)
	for _, g := range guests {
		reason, ok := reasons[g.ID]
		if !ok {
			continue
		}
		g.IsTaxExempt = reason != nil
		g.TaxExemptionReason = reason
		if err := s.Replace(ctx, g.ID, g); err != nil {
			return err
		}
	}
	return nil
}

// Guest returns a stored guest, for assertions
func (s *InMemoryGuestStore) Guest(id uuid.UUID) (model.Guest, bool) {
	g, err := s.Get(context.Background(), id)
	return g, err == nil
}

