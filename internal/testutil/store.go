package testutil

import (
	"context"
	"slices"
	"sync"

	ierr "smartbook/internal/errors"

	"github.com/google/uuid"
)

// FilterFunc reports whether an item belongs to a listing
type FilterFunc[T any] func(item T) bool

// InMemoryStore implements a generic in-memory store keyed by UUID
type InMemoryStore[T any] struct {
	mu     sync.RWMutex
	entity string
	items  map[uuid.UUID]T
}

// NewInMemoryStore creates a new InMemoryStore; entity names the stored type in errors
func NewInMemoryStore[T any](entity string) *InMemoryStore[T] {
	return &InMemoryStore[T]{
		entity: entity,
		items:  make(map[uuid.UUID]T),
	}
}

// Put adds a new item to the store
func (s *InMemoryStore[T]) Put(_ context.Context, id uuid.UUID, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("%s %s already exists", s.entity, id).
			WithHintf("%s already exists", s.entity).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = item
	return nil
}

// Get retrieves an item by ID
func (s *InMemoryStore[T]) Get(_ context.Context, id uuid.UUID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, exists := s.items[id]; exists {
		return item, nil
	}

	var zero T
	return zero, s.notFound(id)
}

// Replace overwrites an existing item
func (s *InMemoryStore[T]) Replace(_ context.Context, id uuid.UUID, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return s.notFound(id)
	}

	s.items[id] = item
	return nil
}

// Remove deletes an item from the store
func (s *InMemoryStore[T]) Remove(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return s.notFound(id)
	}

	delete(s.items, id)
	return nil
}

// Filter returns the matching items ordered by cmp
func (s *InMemoryStore[T]) Filter(filterFn FilterFunc[T], cmp func(a, b T) int) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if filterFn == nil || filterFn(item) {
			result = append(result, item)
		}
	}

	if cmp != nil {
		slices.SortStableFunc(result, cmp)
	}
	return result
}

// Len returns the number of stored items
func (s *InMemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear removes all items from the store
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[uuid.UUID]T)
}

func (s *InMemoryStore[T]) notFound(id uuid.UUID) error {
	return ierr.NewErrorf("%s %s not found", s.entity, id).
		WithHintf("%s not found", s.entity).
		Mark(ierr.ErrNotFound)
}

// paginate applies 1-based page/limit the way the SQL repositories do
func paginate[T any](items []T, page, limit int) ([]T, int64) {
	total := int64(len(items))
	if page < 1 || limit < 1 {
		return items, total
	}

	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}, total
	}
	end := min(start+limit, len(items))
	return items[start:end], total
}
