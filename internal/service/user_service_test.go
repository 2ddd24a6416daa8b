package service

import (
	"testing"
	"time"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"
	"smartbook/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewUserService(stores.UserRepo, stores.AuditRepo, testutil.StaticTokenIssuer{Token: "signed", TTL: time.Hour}, s.GetLogger())
}

func (s *UserServiceSuite) bootstrap() *UserResponse {
	admin, err := s.service.BootstrapAdmin(s.GetContext(), BootstrapAdminRequest{
		TenantID: s.GetTenantID().String(),
		Username: "admin",
		Email:    "admin@hotel.test",
		Password: "correct-horse",
	})
	s.Require().NoError(err)
	return admin
}

func (s *UserServiceSuite) TestBootstrapAdmin() {
	admin := s.bootstrap()
	s.Equal(model.UserRoleAdmin, admin.Role)
	s.Equal(s.GetTenantID(), admin.TenantID)

	_, err := s.service.BootstrapAdmin(s.GetContext(), BootstrapAdminRequest{
		TenantID: uuid.NewString(),
		Username: "intruder",
		Email:    "intruder@hotel.test",
		Password: "whatever-pass",
	})
	s.True(ierr.IsInvalidOperation(err), "bootstrap only works on an empty installation")
}

func (s *UserServiceSuite) TestLogin() {
	s.bootstrap()

	testCases := []struct {
		name     string
		req      LoginUserRequest
		wantErr  error
		wantRole string
	}{
		{
			name:     "valid_credentials",
			req:      LoginUserRequest{Username: "admin", Password: "correct-horse"},
			wantRole: model.UserRoleAdmin,
		},
		{
			name:    "wrong_password",
			req:     LoginUserRequest{Username: "admin", Password: "battery-staple"},
			wantErr: ierr.ErrUnauthorized,
		},
		{
			name:    "unknown_user",
			req:     LoginUserRequest{Username: "ghost", Password: "correct-horse"},
			wantErr: ierr.ErrUnauthorized,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			token, err := s.service.Login(s.GetContext(), tc.req)
			if tc.wantErr != nil {
				s.True(ierr.Is(err, tc.wantErr), "got %v", err)
				return
			}
			s.Require().NoError(err)
			s.Equal("signed", token.Token)
			s.Equal(tc.wantRole, token.Role)
			s.Equal(s.GetTenantID().String(), token.TenantID)
		})
	}
}

func (s *UserServiceSuite) TestCreateAndListUsers() {
	admin := s.bootstrap()

	staff, err := s.service.CreateUser(s.GetContext(), s.GetTenantID(), CreateUserRequest{
		Username: "reception",
		Email:    "reception@hotel.test",
		Password: "front-desk-1",
		Role:     model.UserRoleStaff,
	}, admin.ID.String())
	s.Require().NoError(err)
	s.Equal(model.UserRoleStaff, staff.Role)

	_, err = s.service.CreateUser(s.GetContext(), s.GetTenantID(), CreateUserRequest{
		Username: "reception",
		Email:    "other@hotel.test",
		Password: "front-desk-2",
		Role:     model.UserRoleStaff,
	}, admin.ID.String())
	s.True(ierr.Is(err, ierr.ErrAlreadyExists))

	_, err = s.service.CreateUser(s.GetContext(), s.GetTenantID(), CreateUserRequest{
		Username: "boss",
		Email:    "boss@hotel.test",
		Password: "front-desk-3",
		Role:     "owner",
	}, admin.ID.String())
	s.True(ierr.IsValidation(err))

	users, total, err := s.service.ListUsers(s.GetContext(), s.GetTenantID(), 1, 20)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(users, 2)

	others, total, err := s.service.ListUsers(s.GetContext(), uuid.New(), 1, 20)
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(others)
}
