package testutil

import (
	"context"
	"time"

	"smartbook/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories shared by service tests
type Stores struct {
	TaxRuleRepo        *InMemoryTaxRuleStore
	BookingRepo        *InMemoryBookingStore
	GuestRepo          *InMemoryGuestStore
	TaxCalculationRepo *InMemoryTaxCalculationStore
	AuditRepo          *InMemoryAuditStore
	UserRepo           *InMemoryUserStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	publisher *RecordingPublisher
	logger    *logger.Logger
	tenantID  uuid.UUID
	userID    uuid.UUID
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.setupStores()
	s.publisher = &RecordingPublisher{}
	s.tenantID = uuid.New()
	s.userID = uuid.New()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	rules := NewInMemoryTaxRuleStore()
	guests := NewInMemoryGuestStore()
	s.stores = Stores{
		TaxRuleRepo:        rules,
		BookingRepo:        NewInMemoryBookingStore(guests),
		GuestRepo:          guests,
		TaxCalculationRepo: NewInMemoryTaxCalculationStore(rules),
		AuditRepo:          NewInMemoryAuditStore(),
		UserRepo:           NewInMemoryUserStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.TaxRuleRepo.Clear()
	s.stores.BookingRepo.Clear()
	s.stores.GuestRepo.Clear()
	s.stores.TaxCalculationRepo.Clear()
	s.stores.AuditRepo.Clear()
	s.stores.UserRepo.Clear()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetPublisher() *RecordingPublisher {
	return s.publisher
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetTxManager() NoopTxManager {
	return NoopTxManager{}
}

// GetTenantID is the tenant every test acts on
func (s *BaseServiceTestSuite) GetTenantID() uuid.UUID {
	return s.tenantID
}

// GetUserID is the acting staff member, as the handlers pass it
func (s *BaseServiceTestSuite) GetUserID() string {
	return s.userID.String()
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
