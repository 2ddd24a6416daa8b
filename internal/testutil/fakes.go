package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NoopTxManager runs the function inline; the in-memory stores have no rollback.
type NoopTxManager struct{}

func (NoopTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// PublishedEvent is one event captured by RecordingPublisher
type PublishedEvent struct {
	TenantID uuid.UUID
	Type     string
	Payload  any
}

// RecordingPublisher keeps every published event in memory
type RecordingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

func (p *RecordingPublisher) Publish(tenantID uuid.UUID, eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{TenantID: tenantID, Type: eventType, Payload: payload})
}

// Events returns a snapshot of the published events
func (p *RecordingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent(nil), p.events...)
}

func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// StaticTokenIssuer hands out a fixed token
type StaticTokenIssuer struct {
	Token string
	TTL   time.Duration
	Err   error
}

func (t StaticTokenIssuer) IssueToken(userID, tenantID uuid.UUID, role string) (string, time.Time, error) {
	if t.Err != nil {
		return "", time.Time{}, t.Err
	}
	return t.Token, time.Now().Add(t.TTL).UTC(), nil
}
