package cache

import (
	"context"
	"time"
)

// ReportCache stores rendered report payloads keyed by tenant and request
// fingerprint. Reports are pure functions of the tenant's records, so any
// write to a tenant's ledger invalidates that tenant's entries wholesale.
type ReportCache interface {
	// Get returns the cached payload and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a payload with a TTL
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// InvalidateTenant drops every entry belonging to one tenant
	InvalidateTenant(ctx context.Context, tenantID string) error
	// Close releases underlying resources
	Close() error
}
