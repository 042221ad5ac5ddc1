package persistence

import (
	"context"
	"errors"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChartOfAccountRepository implements ChartOfAccountRepository using GORM
type GormChartOfAccountRepository struct {
	db *gorm.DB
}

// NewGormChartOfAccountRepository creates a new GormChartOfAccountRepository
func NewGormChartOfAccountRepository(db *gorm.DB) *GormChartOfAccountRepository {
	return &GormChartOfAccountRepository{db: db}
}

// FindByIDForTenant finds a chart account by ID for a specific tenant
func (r *GormChartOfAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.ChartOfAccount, error) {
	var model models.ChartOfAccountModel
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

// FindByRubricCode finds a chart account by rubric code for a tenant
func (r *GormChartOfAccountRepository) FindByRubricCode(ctx context.Context, tenantID uuid.UUID, rubricCode string) (*ledger.ChartOfAccount, error) {
	var model models.ChartOfAccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND rubric_code = ?", tenantID, rubricCode).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant returns the tenant's whole chart of accounts
func (r *GormChartOfAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.ChartOfAccount, error) {
	var accountModels []models.ChartOfAccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.ChartOfAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = *accountModels[i].ToDomain()
	}
	return accounts, nil
}

// Save persists a chart account
func (r *GormChartOfAccountRepository) Save(ctx context.Context, account *ledger.ChartOfAccount) error {
	model := models.ChartOfAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a chart account
func (r *GormChartOfAccountRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ChartOfAccountModel{}).Error
}

var _ ledger.ChartOfAccountRepository = (*GormChartOfAccountRepository)(nil)
