package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecordRepository implements RecordRepository using GORM.
// Lookups that find nothing return (nil, nil); the application layer decides
// whether absence is an error.
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByIDForTenant finds a record by ID for a specific tenant
func (r *GormRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Record, error) {
	var model models.RecordModel
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

// FindAllForTenant finds records for a tenant with filtering and pagination
func (r *GormRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.RecordFilter) ([]ledger.Record, error) {
	var recordModels []models.RecordModel
	query := r.applyFilter(r.tenantQuery(ctx, tenantID), filter).
		Order("due_date ASC, created_at ASC")
	if filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// CountForTenant counts records matching the filter
func (r *GormRecordRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.RecordFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.tenantQuery(ctx, tenantID), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindBySeries finds every record sharing a series id, ordered by due date
func (r *GormRecordRepository) FindBySeries(ctx context.Context, tenantID, seriesID uuid.UUID) ([]ledger.Record, error) {
	var recordModels []models.RecordModel
	if err := r.tenantQuery(ctx, tenantID).
		Where("series_id = ?", seriesID).
		Order("due_date ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindForReporting returns every record with any of its dates inside the
// window, without pagination
func (r *GormRecordRepository) FindForReporting(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ledger.Record, error) {
	var recordModels []models.RecordModel
	if err := r.tenantQuery(ctx, tenantID).
		Where(
			"(due_date BETWEEN ? AND ?) OR (competence_date BETWEEN ? AND ?) OR (payment_date BETWEEN ? AND ?)",
			from, to, from, to, from, to,
		).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// Save persists one record
func (r *GormRecordRepository) Save(ctx context.Context, record *ledger.Record) error {
	model := models.RecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a batch of records in one transaction
func (r *GormRecordRepository) SaveAll(ctx context.Context, records []*ledger.Record) error {
	if len(records) == 0 {
		return nil
	}
	recordModels := make([]*models.RecordModel, len(records))
	for i, record := range records {
		recordModels[i] = models.RecordModelFromDomain(record)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range recordModels {
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes one record
func (r *GormRecordRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.RecordModel{}).Error
}

// DeleteBySeries removes every record sharing a series id
func (r *GormRecordRepository) DeleteBySeries(ctx context.Context, tenantID, seriesID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND series_id = ?", tenantID, seriesID).
		Delete(&models.RecordModel{}).Error
}

func (r *GormRecordRepository) tenantQuery(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.RecordModel{}).Where("tenant_id = ?", tenantID)
}

func (r *GormRecordRepository) applyFilter(query *gorm.DB, filter ledger.RecordFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.NeedsValidation != nil {
		query = query.Where("needs_validation = ?", *filter.NeedsValidation)
	}
	if filter.SeriesID != nil {
		query = query.Where("series_id = ?", *filter.SeriesID)
	}
	if filter.RubricID != nil {
		query = query.Where("rubric_id = ?", *filter.RubricID)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	return query
}

func toDomainRecords(recordModels []models.RecordModel) []ledger.Record {
	records := make([]ledger.Record, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records
}

var _ ledger.RecordRepository = (*GormRecordRepository)(nil)
