package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RevenueTypeService provides application-level revenue type operations
type RevenueTypeService struct {
	revenueTypeRepo ledger.RevenueTypeRepository
}

// NewRevenueTypeService creates a new RevenueTypeService
func NewRevenueTypeService(revenueTypeRepo ledger.RevenueTypeRepository) *RevenueTypeService {
	return &RevenueTypeService{revenueTypeRepo: revenueTypeRepo}
}

// RevenueTypeRequest carries the mutable fields of a revenue type
type RevenueTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// RevenueTypeResponse represents a revenue type in API responses
type RevenueTypeResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRevenueType creates a new revenue type
func (s *RevenueTypeService) CreateRevenueType(ctx context.Context, tenantID uuid.UUID, req RevenueTypeRequest) (*RevenueTypeResponse, error) {
	revenueType, err := ledger.NewRevenueType(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.revenueTypeRepo.Save(ctx, revenueType); err != nil {
		return nil, err
	}
	return toRevenueTypeResponse(revenueType), nil
}

// ListRevenueTypes returns the tenant's revenue types sorted by name
func (s *RevenueTypeService) ListRevenueTypes(ctx context.Context, tenantID uuid.UUID) ([]RevenueTypeResponse, error) {
	types, err := s.revenueTypeRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	responses := make([]RevenueTypeResponse, 0, len(types))
	for i := range types {
		responses = append(responses, *toRevenueTypeResponse(&types[i]))
	}
	return responses, nil
}

// RenameRevenueType renames a revenue type
func (s *RevenueTypeService) RenameRevenueType(ctx context.Context, tenantID, id uuid.UUID, req RevenueTypeRequest) (*RevenueTypeResponse, error) {
	revenueType, err := s.revenueTypeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if revenueType == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Revenue type not found")
	}
	if err := revenueType.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.revenueTypeRepo.Save(ctx, revenueType); err != nil {
		return nil, err
	}
	return toRevenueTypeResponse(revenueType), nil
}

// DeleteRevenueType removes a revenue type
func (s *RevenueTypeService) DeleteRevenueType(ctx context.Context, tenantID, id uuid.UUID) error {
	revenueType, err := s.revenueTypeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if revenueType == nil {
		return shared.NewDomainError("NOT_FOUND", "Revenue type not found")
	}
	return s.revenueTypeRepo.Delete(ctx, tenantID, id)
}

func toRevenueTypeResponse(revenueType *ledger.RevenueType) *RevenueTypeResponse {
	return &RevenueTypeResponse{
		ID:        revenueType.ID,
		TenantID:  revenueType.TenantID,
		Name:      revenueType.Name,
		CreatedAt: revenueType.CreatedAt,
		UpdatedAt: revenueType.UpdatedAt,
	}
}
