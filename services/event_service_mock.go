package services

import (
	"sync"

	"github.com/dishiq/dishiq-api/models"
)

// MockEventService is a mock implementation of EventService for testing
type MockEventService struct {
	events []models.Event
	mu     sync.RWMutex
}

// NewMockEventService creates a new mock event service
func NewMockEventService() *MockEventService {
	return &MockEventService{}
}

// SetAsMockForTesting sets this mock as the global event service instance for testing
func (m *MockEventService) SetAsMockForTesting() {
	SetEventService(m)
}

// Publish records the event in memory
func (m *MockEventService) Publish(event models.Event) {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
}

// Events returns a copy of all recorded events (for testing assertions)
func (m *MockEventService) Events() []models.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Event(nil), m.events...)
}

// EventsFor returns the recorded operations for a given entity id
func (m *MockEventService) EventsFor(entityID string) []models.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Event
	for _, event := range m.events {
		if event.EntityID == entityID {
			out = append(out, event)
		}
	}
	return out
}

// Clear removes all recorded events
func (m *MockEventService) Clear() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}
