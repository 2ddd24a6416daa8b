package testutil

import (
	"context"
	"sync"
	"time"

	"smartbook/internal/model"

	"github.com/google/uuid"
)

// InMemoryAuditStore implements repository.AuditRepository. Setting Err makes
// every Log call fail.
type InMemoryAuditStore struct {
	*InMemoryStore[model.AuditLog]
	Err error

	mu   sync.Mutex
	last time.Time
}

func NewInMemoryAuditStore() *InMemoryAuditStore {
	return &InMemoryAuditStore{InMemoryStore: NewInMemoryStore[model.AuditLog]("audit log")}
}

func (s *InMemoryAuditStore) Log(ctx context.Context, entry *model.AuditLog) error {
	if s.Err != nil {
		return s.Err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.tick()
	}
	return s.Put(ctx, entry.ID, *entry)
}

func (s *InMemoryAuditStore) List(_ context.Context, tenantID uuid.UUID, page, limit int) ([]model.AuditLog, int64, error) {
	logs := s.Filter(func(l model.AuditLog) bool { return l.TenantID == tenantID }, func(a, b model.AuditLog) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	items, total := paginate(logs, page, limit)
	return items, total, nil
}

// Actions returns the logged actions of a tenant, oldest first
func (s *InMemoryAuditStore) Actions(tenantID uuid.UUID) []string {
	logs := s.Filter(func(l model.AuditLog) bool { return l.TenantID == tenantID }, func(a, b model.AuditLog) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	actions := make([]string, 0, len(logs))
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	return actions
}

// tick returns strictly increasing timestamps so listings keep insertion order
func (s *InMemoryAuditStore) tick() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}
