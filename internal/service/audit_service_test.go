package service

import (
	"testing"

	"smartbook/internal/model"
	"smartbook/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuditServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuditService
}

func TestAuditService(t *testing.T) {
	suite.Run(t, new(AuditServiceSuite))
}

func (s *AuditServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAuditService(s.GetStores().AuditRepo)
}

func (s *AuditServiceSuite) TestGetAuditLogs() {
	audit := auditLogger{repo: s.GetStores().AuditRepo, logger: s.GetLogger()}
	audit.write(s.GetContext(), s.GetTenantID(), s.GetUserID(), model.ActionCreateTaxRule, "r1", "rule", map[string]string{"k": "v"})
	audit.write(s.GetContext(), s.GetTenantID(), "", model.ActionCalculateTax, "b1", "booking", nil)
	audit.write(s.GetContext(), uuid.New(), s.GetUserID(), model.ActionCreateBooking, "b2", "other tenant", nil)

	logs, total, err := s.service.GetAuditLogs(s.GetContext(), s.GetTenantID(), 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(logs, 2)

	s.Equal(model.ActionCalculateTax, logs[0].Action, "newest first")
	s.Equal("System", logs[0].Username)
	s.Empty(logs[0].UserID)

	s.Equal(model.ActionCreateTaxRule, logs[1].Action)
	s.Equal(s.GetUserID(), logs[1].UserID)
	s.JSONEq(`{"k":"v"}`, logs[1].Details)

	page2, _, err := s.service.GetAuditLogs(s.GetContext(), s.GetTenantID(), 2, 1)
	s.Require().NoError(err)
	s.Require().Len(page2, 1)
	s.Equal(model.ActionCreateTaxRule, page2[0].Action)
}
