package service

import (
	"context"
	"time"

	ierr "smartbook/internal/errors"
	"smartbook/internal/logger"
	"smartbook/internal/model"
	"smartbook/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin manager staff"`
}

type BootstrapAdminRequest struct {
	TenantID string `json:"tenant_id" binding:"required,uuid"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Role      string `json:"role"`
	TenantID  string `json:"tenant_id"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"created_at"`
}

// TokenIssuer signs access tokens for authenticated staff.
type TokenIssuer interface {
	IssueToken(userID, tenantID uuid.UUID, role string) (string, time.Time, error)
}

// UserService defines the interface for business logic related to User
type UserService interface {
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	BootstrapAdmin(ctx context.Context, req BootstrapAdminRequest) (*UserResponse, error)
	CreateUser(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest, actorID string) (*UserResponse, error)
	ListUsers(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]UserResponse, int64, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens TokenIssuer
	audit  auditLogger
	logger *logger.Logger
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, auditRepo repository.AuditRepository, tokens TokenIssuer, log *logger.Logger) UserService {
	return &userService{
		repo:   repo,
		tokens: tokens,
		audit:  auditLogger{repo: auditRepo, logger: log},
		logger: log,
	}
}

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		TenantID:  user.TenantID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

var errInvalidCredentials = ierr.NewError("invalid credentials").
	WithHint("Invalid username or password").
	Mark(ierr.ErrUnauthorized)

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Infow("login rejected", "username", req.Username)
		return nil, errInvalidCredentials
	}

	token, expiresAt, err := s.tokens.IssueToken(user.ID, user.TenantID, user.Role)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	return &TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		Role:      user.Role,
		TenantID:  user.TenantID.String(),
	}, nil
}

// BootstrapAdmin creates the first admin of an empty installation.
func (s *userService) BootstrapAdmin(ctx context.Context, req BootstrapAdminRequest) (*UserResponse, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ierr.NewError("users already exist").
			WithHint("Bootstrap is only available before the first user is created").
			Mark(ierr.ErrInvalidOperation)
	}

	tenantID, err := parseUUID(req.TenantID, "tenant")
	if err != nil {
		return nil, err
	}

	return s.CreateUser(ctx, tenantID, CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRoleAdmin,
	}, "")
}

func (s *userService) CreateUser(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest, actorID string) (*UserResponse, error) {
	if !lo.Contains([]string{model.UserRoleAdmin, model.UserRoleManager, model.UserRoleStaff}, req.Role) {
		return nil, ierr.NewErrorf("invalid role %q", req.Role).
			WithHint("Role must be admin, manager or staff").
			Mark(ierr.ErrValidation)
	}

	// Hash password automatically
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}

	user := &model.User{
		TenantID: tenantID,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.write(ctx, tenantID, actorID, model.ActionCreateUser, user.ID.String(), user.Username, map[string]string{
		"username": user.Username,
		"role":     user.Role,
	})

	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]UserResponse, int64, error) {
	users, total, err := s.repo.List(ctx, tenantID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := lo.Map(users, func(u model.User, _ int) UserResponse {
		return *mapToResponse(&u)
	})
	return responses, total, nil
}
