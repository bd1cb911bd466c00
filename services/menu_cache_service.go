package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dishiq/dishiq-api/models"
	"github.com/redis/go-redis/v9"
)

// MenuCacheService caches rendered menu views per audience so repeated
// browsing does not rebuild the filtered list every time. Menu mutations
// invalidate the whole menu keyspace.
type MenuCacheService interface {
	// GetMenu returns the cached menu for an audience, or ok=false on a miss
	GetMenu(ctx context.Context, audience string) ([]*models.MenuItem, bool, error)

	// SetMenu caches the menu for an audience
	SetMenu(ctx context.Context, audience string, items []*models.MenuItem) error

	// Invalidate drops every cached menu view
	Invalidate(ctx context.Context) error
}

// Cache audiences: visitors see the public menu, registered users (and VIPs)
// see early-access items too.
const (
	MenuAudienceVisitor    = "visitor"
	MenuAudienceRegistered = "registered"
)

var menuCacheInstance MenuCacheService

// InitMenuCacheService initializes the menu cache with a Redis backend
func InitMenuCacheService(client *redis.Client, ttl time.Duration) MenuCacheService {
	menuCacheInstance = &RedisMenuCache{client: client, ttl: ttl}
	return menuCacheInstance
}

// GetMenuCacheService returns the initialized menu cache instance, which may
// be nil when no Redis address is configured
func GetMenuCacheService() MenuCacheService {
	return menuCacheInstance
}

// SetMenuCacheService sets the menu cache instance (primarily for testing)
func SetMenuCacheService(service MenuCacheService) {
	menuCacheInstance = service
}

// RedisMenuCache implements MenuCacheService on top of Redis
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

func menuKey(audience string) string {
	return "menu:" + audience
}

// GetMenu fetches and decodes the cached menu for an audience
func (c *RedisMenuCache) GetMenu(ctx context.Context, audience string) ([]*models.MenuItem, bool, error) {
	payload, err := c.client.Get(ctx, menuKey(audience)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read menu cache: %w", err)
	}
	var items []*models.MenuItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached menu: %w", err)
	}
	return items, true, nil
}

// SetMenu encodes and stores the menu for an audience with the configured TTL
func (c *RedisMenuCache) SetMenu(ctx context.Context, audience string, items []*models.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}
	return c.client.Set(ctx, menuKey(audience), payload, c.ttl).Err()
}

// Invalidate drops both audience views
func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, menuKey(MenuAudienceVisitor), menuKey(MenuAudienceRegistered)).Err()
}
