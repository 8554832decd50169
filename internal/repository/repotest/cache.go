package repotest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is an in-memory redisrepo.Default with a manual clock, so tests
// can cross TTL boundaries without sleeping.
type Cache struct {
	now   time.Time
	items map[string]cacheItem
}

type cacheItem struct {
	value     string
	expiresAt time.Time
}

func NewCache() *Cache {
	return &Cache{
		now: time.Date(2023, 5, 15, 22, 27, 0, 0, time.UTC),
		items: make(map[string]cacheItem),
	}
}

func (c *Cache) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.items[key] = cacheItem{
		value: fmt.Sprint(value),
		expiresAt: c.now.Add(ttl),
	}
	return nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, string(valueJSON), ttl)
}

func (c *Cache) Get(ctx context.Context, key string) *redis.StringCmd {
	item, ok := c.items[key]
	if !ok || !c.now.Before(item.expiresAt) {
		delete(c.items, key)
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(item.value, nil)
}

func (c *Cache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var deleted int64
	for _, key := range keys {
		if _, ok := c.items[key]; ok {
			delete(c.items, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

// Keys supports the trailing-wildcard patterns used by the services.
func (c *Cache) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	prefix := strings.TrimSuffix(pattern, "*")
	keys := []string{}
	for key, item := range c.items {
		if !c.now.Before(item.expiresAt) {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return redis.NewStringSliceResult(keys, nil)
}
