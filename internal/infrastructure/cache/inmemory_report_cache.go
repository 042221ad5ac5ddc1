package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// InMemoryReportCache implements ReportCache with a process-local map.
// This is suitable for single-instance deployments and testing.
// WARNING: in-memory entries are not shared across process instances, so a
// write handled by one instance does not invalidate reports cached by another.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryReportCache creates an empty in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{entries: make(map[string]inMemoryEntry)}
}

// Get returns the cached payload if present and not expired
func (c *InMemoryReportCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// Set stores a payload with a TTL
func (c *InMemoryReportCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{payload: payload, expiresAt: time.Now().Add(ttl)}
	return nil
}

// InvalidateTenant drops every entry whose key carries the tenant prefix
func (c *InMemoryReportCache) InvalidateTenant(_ context.Context, tenantID string) error {
	prefix := reportKeyPrefix(tenantID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Close is a no-op for the in-memory cache
func (c *InMemoryReportCache) Close() error {
	return nil
}

// reportKeyPrefix is shared by every ReportCache implementation so tenant
// invalidation works regardless of backend
func reportKeyPrefix(tenantID string) string {
	return "report:" + tenantID + ":"
}

// ReportKey builds the cache key for one tenant and request fingerprint
func ReportKey(tenantID, fingerprint string) string {
	return reportKeyPrefix(tenantID) + fingerprint
}

var _ ReportCache = (*InMemoryReportCache)(nil)
