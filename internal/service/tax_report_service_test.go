package service

import (
	"testing"
	"time"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"
	"smartbook/internal/report"
	"smartbook/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TaxReportServiceSuite struct {
	testutil.BaseServiceTestSuite
	rules    TaxRuleService
	bookings BookingService
	service  TaxReportService
}

func TestTaxReportService(t *testing.T) {
	suite.Run(t, new(TaxReportServiceSuite))
}

func (s *TaxReportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.rules = NewTaxRuleService(stores.TaxRuleRepo, stores.TaxCalculationRepo, stores.AuditRepo, s.GetTxManager(), s.GetPublisher(), time.Minute, s.GetLogger())
	s.bookings = NewBookingService(stores.BookingRepo, stores.GuestRepo, stores.AuditRepo, s.GetLogger())
	s.service = NewTaxReportService(stores.BookingRepo, stores.AuditRepo, s.rules, report.Property{Name: "Hotel Test", FacilityCode: "RM-001"}, s.GetLogger())

	_, err := s.rules.CreateTaxRule(s.GetContext(), s.GetTenantID(), ruleRequest("2025-01-01", "", "2.00"), s.GetUserID())
	s.Require().NoError(err)

	s.book(individualBooking("2025-01-05", "2025-01-08"))
	s.book(groupBookingRequest())
	s.book(individualBooking("2025-02-03", "2025-02-05"))
}

func individualBooking(checkIn, checkOut string) CreateBookingRequest {
	return CreateBookingRequest{
		BookingType:    model.BookingTypeIndividual,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		ExpectedGuests: 1,
		Guests: []GuestRequest{
			{FirstName: "Paolo", LastName: "Conte", DateOfBirth: "1980-05-05", Role: string(model.GuestRoleLeader)},
		},
	}
}

func (s *TaxReportServiceSuite) book(req CreateBookingRequest) {
	_, err := s.bookings.CreateBooking(s.GetContext(), s.GetTenantID(), req, s.GetUserID())
	s.Require().NoError(err)
}

func (s *TaxReportServiceSuite) TestMonthlyReport() {
	resp, err := s.service.MonthlyReport(s.GetContext(), s.GetTenantID(), 2025, 1, s.GetUserID())
	s.Require().NoError(err)

	s.Equal("Gennaio 2025", resp.Period.Label)
	s.Equal("Hotel Test", resp.Property.Name)
	s.Empty(resp.Months)

	summary := resp.Summary
	s.Equal(2, summary.TotalBookings)
	s.Equal(6, summary.TotalGuests)
	s.True(decimal.RequireFromString("14.00").Equal(summary.TotalTax), "got %s", summary.TotalTax)
	s.Equal(7, summary.TotalTaxableNights)
	s.Equal(3, summary.TotalExemptGuests)
	s.Equal(1, summary.ExemptionBreakdown[model.ExemptionAge])
	s.Len(resp.Bookings, 2)

	s.Contains(s.GetStores().AuditRepo.Actions(s.GetTenantID()), model.ActionGenerateTaxReport)
}

func (s *TaxReportServiceSuite) TestQuarterlyReport() {
	resp, err := s.service.QuarterlyReport(s.GetContext(), s.GetTenantID(), 2025, 1, s.GetUserID())
	s.Require().NoError(err)

	s.Equal("Q1 2025", resp.Period.Label)
	s.Equal([]string{"Gennaio", "Febbraio", "Marzo"}, resp.Months)
	s.Equal(3, resp.Summary.TotalBookings)
	s.True(decimal.RequireFromString("18.00").Equal(resp.Summary.TotalTax), "got %s", resp.Summary.TotalTax)
}

func (s *TaxReportServiceSuite) TestEmptyPeriod() {
	resp, err := s.service.MonthlyReport(s.GetContext(), s.GetTenantID(), 2025, 6, s.GetUserID())
	s.Require().NoError(err)
	s.Zero(resp.Summary.TotalBookings)
	s.True(resp.Summary.TotalTax.IsZero())
	s.True(resp.Summary.AverageTaxPerBooking.IsZero())
}

func (s *TaxReportServiceSuite) TestInvalidPeriod() {
	_, err := s.service.MonthlyReport(s.GetContext(), s.GetTenantID(), 2025, 13, s.GetUserID())
	s.True(ierr.IsValidation(err))

	_, err = s.service.QuarterlyReport(s.GetContext(), s.GetTenantID(), 2025, 0, s.GetUserID())
	s.True(ierr.IsValidation(err))
}

func (s *TaxReportServiceSuite) TestUncoveredBookingFailsReport() {
	s.book(individualBooking("2024-12-28", "2025-01-02"))

	_, err := s.service.MonthlyReport(s.GetContext(), s.GetTenantID(), 2024, 12, s.GetUserID())
	s.True(ierr.Is(err, ierr.ErrNoApplicableRule), "got %v", err)
}

func (s *TaxReportServiceSuite) TestRangeReport() {
	period, err := report.CustomPeriod(
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		"",
	)
	s.Require().NoError(err)

	resp, err := s.service.RangeReport(s.GetContext(), s.GetTenantID(), period, s.GetUserID())
	s.Require().NoError(err)
	s.Equal(2, resp.Summary.TotalBookings, "both range ends are inclusive")
}
