package mocks

import "sync"

// MockMetrics is a mock implementation of metrics recorder for testing
type MockMetrics struct {
	mu         sync.Mutex
	Operations []string // "entity/operation/outcome"
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) RecordOperation(entity, operation, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Operations = append(m.Operations, entity+"/"+operation+"/"+outcome)
}

// Count returns how many times the given operation outcome was recorded
func (m *MockMetrics) Count(entity, operation, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, op := range m.Operations {
		if op == entity+"/"+operation+"/"+outcome {
			n++
		}
	}
	return n
}
