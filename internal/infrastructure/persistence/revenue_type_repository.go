package persistence

import (
	"context"
	"errors"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRevenueTypeRepository implements RevenueTypeRepository using GORM
type GormRevenueTypeRepository struct {
	db *gorm.DB
}

// NewGormRevenueTypeRepository creates a new GormRevenueTypeRepository
func NewGormRevenueTypeRepository(db *gorm.DB) *GormRevenueTypeRepository {
	return &GormRevenueTypeRepository{db: db}
}

// FindByIDForTenant finds a revenue type by ID for a specific tenant
func (r *GormRevenueTypeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.RevenueType, error) {
	var model models.RevenueTypeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant returns all revenue types for a tenant
func (r *GormRevenueTypeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.RevenueType, error) {
	var typeModels []models.RevenueTypeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&typeModels).Error; err != nil {
		return nil, err
	}
	types := make([]ledger.RevenueType, len(typeModels))
	for i := range typeModels {
		types[i] = *typeModels[i].ToDomain()
	}
	return types, nil
}

// Save persists a revenue type
func (r *GormRevenueTypeRepository) Save(ctx context.Context, revenueType *ledger.RevenueType) error {
	model := models.RevenueTypeModelFromDomain(revenueType)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a revenue type
func (r *GormRevenueTypeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.RevenueTypeModel{}).Error
}

var _ ledger.RevenueTypeRepository = (*GormRevenueTypeRepository)(nil)
