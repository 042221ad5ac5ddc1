package ledger

import (
	"context"
	"time"

	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RecordFilter defines filtering options for ledger record queries
type RecordFilter struct {
	Type            *RecordType
	Status          *RecordStatus
	NeedsValidation *bool
	SeriesID        *uuid.UUID
	RubricID        *uuid.UUID
	DueFrom         *time.Time
	DueTo           *time.Time
	Page            int
	PageSize        int
}

// RecordRepository defines the persistence interface for ledger records
type RecordRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Record, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter RecordFilter) ([]Record, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter RecordFilter) (int64, error)
	FindBySeries(ctx context.Context, tenantID, seriesID uuid.UUID) ([]Record, error)
	// FindForReporting returns every record with any of its dates inside the
	// window, without pagination. Report building filters the rest.
	FindForReporting(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Record, error)
	Save(ctx context.Context, record *Record) error
	SaveAll(ctx context.Context, records []*Record) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	DeleteBySeries(ctx context.Context, tenantID, seriesID uuid.UUID) error
}

// ChartOfAccountRepository defines the persistence interface for the chart of accounts
type ChartOfAccountRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ChartOfAccount, error)
	FindByRubricCode(ctx context.Context, tenantID uuid.UUID, rubricCode string) (*ChartOfAccount, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ChartOfAccount, error)
	Save(ctx context.Context, account *ChartOfAccount) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// RevenueTypeRepository defines the persistence interface for revenue types
type RevenueTypeRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*RevenueType, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]RevenueType, error)
	Save(ctx context.Context, revenueType *RevenueType) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// Ensure filter defaults stay within sane bounds
func (f *RecordFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 500 {
		f.PageSize = shared.DefaultFilter().PageSize
	}
}
