package services

import (
	"context"
	"sync"

	"github.com/dishiq/dishiq-api/models"
)

// MockMenuCacheService is an in-memory mock of MenuCacheService for testing
type MockMenuCacheService struct {
	menus       map[string][]*models.MenuItem
	mu          sync.RWMutex
	Invalidated int
}

// NewMockMenuCacheService creates a new mock menu cache
func NewMockMenuCacheService() *MockMenuCacheService {
	return &MockMenuCacheService{menus: make(map[string][]*models.MenuItem)}
}

// SetAsMockForTesting sets this mock as the global menu cache instance for testing
func (m *MockMenuCacheService) SetAsMockForTesting() {
	SetMenuCacheService(m)
}

// GetMenu returns the cached menu for an audience
func (m *MockMenuCacheService) GetMenu(_ context.Context, audience string) ([]*models.MenuItem, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items, ok := m.menus[audience]
	return items, ok, nil
}

// SetMenu stores the menu for an audience
func (m *MockMenuCacheService) SetMenu(_ context.Context, audience string, items []*models.MenuItem) error {
	m.mu.Lock()
	m.menus[audience] = items
	m.mu.Unlock()
	return nil
}

// Invalidate drops all cached menus and counts the invalidation
func (m *MockMenuCacheService) Invalidate(context.Context) error {
	m.mu.Lock()
	m.menus = make(map[string][]*models.MenuItem)
	m.Invalidated++
	m.mu.Unlock()
	return nil
}
