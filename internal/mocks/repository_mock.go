package mocks

import (
	"context"
	"sync"

	"github.com/Olprog59/go-fromagerie/internal/repository/db"
)

// MockRepository is an in-memory implementation of ports.Repository for testing
type MockRepository[T any, K comparable] struct {
	mu sync.Mutex

	// Mock data storage
	Items  map[K]*T
	order  []K
	keyOf  func(*T) K
	nextID func(*T)

	// Mock behavior flags
	ListError    error
	GetByIDError error
	CreateError  error
	UpdateError  error
	DeleteError  error

	// Call tracking
	ListCalls    int
	GetByIDCalls int
	CreateCalls  int
	UpdateCalls  int
	DeleteCalls  int
}

// NewMockRepository creates a mock repository; assignKey may be nil for caller-supplied keys
func NewMockRepository[T any, K comparable](keyOf func(*T) K, assignKey func(*T, int64)) *MockRepository[T, K] {
	m := &MockRepository[T, K]{
		Items: make(map[K]*T),
		keyOf: keyOf,
	}
	if assignKey != nil {
		var seq int64
		m.nextID = func(e *T) {
			seq++
			assignKey(e, seq)
		}
	}
	return m
}

func clone[T any](e *T) *T {
	c := *e
	return &c
}

func (m *MockRepository[T, K]) List(ctx context.Context) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	items := make([]*T, 0, len(m.order))
	for _, k := range m.order {
		items = append(items, clone(m.Items[k]))
	}
	return items, nil
}

func (m *MockRepository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetByIDCalls++
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	item, ok := m.Items[id]
	if !ok {
		return nil, db.ErrNoRecord
	}
	return clone(item), nil
}

func (m *MockRepository[T, K]) Create(ctx context.Context, entity *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	stored := clone(entity)
	if m.nextID != nil {
		m.nextID(stored)
	}
	key := m.keyOf(stored)
	if _, exists := m.Items[key]; exists {
		return nil, &db.DuplicateError{Table: "mock", Column: "key", Value: key}
	}
	m.Items[key] = stored
	m.order = append(m.order, key)
	return clone(stored), nil
}

func (m *MockRepository[T, K]) Update(ctx context.Context, id K, mutate func(*T) error) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	item, ok := m.Items[id]
	if !ok {
		return nil, db.ErrNoRecord
	}
	working := clone(item)
	if mutate != nil {
		if err := mutate(working); err != nil {
			return nil, err
		}
	}
	m.Items[id] = working
	return clone(working), nil
}

func (m *MockRepository[T, K]) Delete(ctx context.Context, id K) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.Items[id]; !ok {
		return db.ErrNoRecord
	}
	delete(m.Items, id)
	for i, k := range m.order {
		if k == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
