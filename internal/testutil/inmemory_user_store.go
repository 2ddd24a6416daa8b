package testutil

import (
	"context"
	"time"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"

	"github.com/google/uuid"
)

// InMemoryUserStore implements repository.UserRepository
type InMemoryUserStore struct {
	*InMemoryStore[model.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{InMemoryStore: NewInMemoryStore[model.User]("user")}
}

func (s *InMemoryUserStore) Create(ctx context.Context, user *model.User) error {
	taken := s.Filter(func(u model.User) bool {
		return u.Username == user.Username || u.Email == user.Email
	}, nil)
	if len(taken) > 0 {
		return ierr.NewErrorf("user %s already exists", user.Username).
			WithHint("user already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	return s.Put(ctx, user.ID, *user)
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *InMemoryUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	users := s.Filter(func(u model.User) bool { return u.Username == username }, nil)
	if len(users) == 0 {
		return nil, ierr.NewErrorf("user %s not found", username).
			WithHint("user not found").
			Mark(ierr.ErrNotFound)
	}
	return &users[0], nil
}

func (s *InMemoryUserStore) List(_ context.Context, tenantID uuid.UUID, page, limit int) ([]model.User, int64, error) {
	users := s.Filter(func(u model.User) bool { return u.TenantID == tenantID }, func(a, b model.User) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	items, total := paginate(users, page, limit)
	return items, total, nil
}

func (s *InMemoryUserStore) Count(_ context.Context) (int64, error) {
	return int64(s.Len()), nil
}
