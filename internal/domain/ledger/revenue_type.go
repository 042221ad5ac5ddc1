package ledger

import (
	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RevenueType is a flat, un-hierarchied tag used to classify income records
// and split portions.
type RevenueType struct {
	shared.TenantAggregateRoot
	Name string `json:"name"`
}

// NewRevenueType creates a new revenue type
func NewRevenueType(tenantID uuid.UUID, name string) (*RevenueType, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Revenue type name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Revenue type name cannot exceed 200 characters")
	}
	return &RevenueType{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}, nil
}

// Rename changes the revenue type display name
func (t *RevenueType) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Revenue type name cannot be empty")
	}
	t.Name = name
	t.Touch()
	return nil
}
