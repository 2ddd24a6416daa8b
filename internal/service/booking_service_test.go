package service

import (
	"testing"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"
	"smartbook/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BookingService
}

func TestBookingService(t *testing.T) {
	suite.Run(t, new(BookingServiceSuite))
}

func (s *BookingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewBookingService(stores.BookingRepo, stores.GuestRepo, stores.AuditRepo, s.GetLogger())
}

func groupBookingRequest() CreateBookingRequest {
	return CreateBookingRequest{
		BookingType:    model.BookingTypeGroup,
		CheckInDate:    "2025-01-15",
		CheckOutDate:   "2025-01-17",
		ExpectedGuests: 40,
		Guests: []GuestRequest{
			{FirstName: "Giulia", LastName: "Bianchi", Sex: "F", DateOfBirth: "1960-01-01", Role: string(model.GuestRoleLeader)},
			{FirstName: "Marco", LastName: "Verdi", Sex: "M", DateOfBirth: "1970-01-01", Role: string(model.GuestRoleBusDriver)},
			{FirstName: "Luca", LastName: "Neri", Sex: "M", DateOfBirth: "1975-01-01", Role: string(model.GuestRoleBusDriver)},
			{FirstName: "Anna", LastName: "Russo", Sex: "F", DateOfBirth: "1980-01-01", Role: string(model.GuestRoleTourGuide)},
			{FirstName: "Sara", LastName: "Bianchi", Sex: "F", DateOfBirth: "2011-01-20", Role: string(model.GuestRoleMember)},
		},
	}
}

func (s *BookingServiceSuite) TestCreateBooking() {
	resp, err := s.service.CreateBooking(s.GetContext(), s.GetTenantID(), groupBookingRequest(), s.GetUserID())
	s.Require().NoError(err)

	s.NotEmpty(resp.ID)
	s.Equal(2, resp.Nights)
	s.Equal(model.BookingStatusPending, resp.Status)
	s.Require().Len(resp.Guests, 5)
	for i, g := range resp.Guests {
		s.Equal(i, g.Position)
		s.False(g.IsTaxExempt)
	}

	got, err := s.service.GetBooking(s.GetContext(), s.GetTenantID(), resp.ID)
	s.Require().NoError(err)
	s.Equal(resp.CheckInDate, got.CheckInDate)
	s.Require().Len(got.Guests, 5)
	s.Equal("Giulia", got.Guests[0].FirstName)
	s.Equal(model.GuestRoleTourGuide, got.Guests[3].Role)

	s.Equal([]string{model.ActionCreateBooking}, s.GetStores().AuditRepo.Actions(s.GetTenantID()))
}

func (s *BookingServiceSuite) TestCreateBookingRejects() {
	testCases := []struct {
		name    string
		mutate  func(r *CreateBookingRequest)
		wantErr error
	}{
		{
			name:    "same_day_checkout",
			mutate:  func(r *CreateBookingRequest) { r.CheckOutDate = r.CheckInDate },
			wantErr: ierr.ErrInvalidDateRange,
		},
		{
			name:    "checkout_before_checkin",
			mutate:  func(r *CreateBookingRequest) { r.CheckOutDate = "2025-01-10" },
			wantErr: ierr.ErrInvalidDateRange,
		},
		{
			name:    "malformed_date",
			mutate:  func(r *CreateBookingRequest) { r.CheckInDate = "15/01/2025" },
			wantErr: ierr.ErrInvalidDateRange,
		},
		{
			name:    "unknown_role",
			mutate:  func(r *CreateBookingRequest) { r.Guests[2].Role = "chef" },
			wantErr: ierr.ErrUnknownGuestRole,
		},
		{
			name:    "born_after_checkin",
			mutate:  func(r *CreateBookingRequest) { r.Guests[4].DateOfBirth = "2025-02-01" },
			wantErr: ierr.ErrValidation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := groupBookingRequest()
			tc.mutate(&req)

			_, err := s.service.CreateBooking(s.GetContext(), s.GetTenantID(), req, s.GetUserID())
			s.Require().Error(err)
			s.True(ierr.Is(err, tc.wantErr), "got %v", err)
		})
	}
	s.Zero(s.GetStores().BookingRepo.Len())
	s.Zero(s.GetStores().GuestRepo.Len())
}

func (s *BookingServiceSuite) TestGetBookingOtherTenant() {
	resp, err := s.service.CreateBooking(s.GetContext(), s.GetTenantID(), groupBookingRequest(), s.GetUserID())
	s.Require().NoError(err)

	_, err = s.service.GetBooking(s.GetContext(), uuid.New(), resp.ID)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetBooking(s.GetContext(), s.GetTenantID(), "not-a-uuid")
	s.True(ierr.IsValidation(err))
}
