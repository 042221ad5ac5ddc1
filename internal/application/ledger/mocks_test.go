package ledger

import (
	"context"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRecordRepository is a mock implementation of ledger.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Record, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Record), args.Error(1)
}

func (m *MockRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.RecordFilter) ([]ledger.Record, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.Record), args.Error(1)
}

func (m *MockRecordRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.RecordFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) FindBySeries(ctx context.Context, tenantID, seriesID uuid.UUID) ([]ledger.Record, error) {
	args := m.Called(ctx, tenantID, seriesID)
	return args.Get(0).([]ledger.Record), args.Error(1)
}

func (m *MockRecordRepository) FindForReporting(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ledger.Record, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]ledger.Record), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, record *ledger.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) SaveAll(ctx context.Context, records []*ledger.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockRecordRepository) DeleteBySeries(ctx context.Context, tenantID, seriesID uuid.UUID) error {
	args := m.Called(ctx, tenantID, seriesID)
	return args.Error(0)
}

// MockChartOfAccountRepository is a mock implementation of ledger.ChartOfAccountRepository
type MockChartOfAccountRepository struct {
	mock.Mock
}

func (m *MockChartOfAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.ChartOfAccount, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ChartOfAccount), args.Error(1)
}

func (m *MockChartOfAccountRepository) FindByRubricCode(ctx context.Context, tenantID uuid.UUID, rubricCode string) (*ledger.ChartOfAccount, error) {
	args := m.Called(ctx, tenantID, rubricCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ChartOfAccount), args.Error(1)
}

func (m *MockChartOfAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.ChartOfAccount, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ledger.ChartOfAccount), args.Error(1)
}

func (m *MockChartOfAccountRepository) Save(ctx context.Context, account *ledger.ChartOfAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartOfAccountRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockRevenueTypeRepository is a mock implementation of ledger.RevenueTypeRepository
type MockRevenueTypeRepository struct {
	mock.Mock
}

func (m *MockRevenueTypeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.RevenueType, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RevenueType), args.Error(1)
}

func (m *MockRevenueTypeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.RevenueType, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ledger.RevenueType), args.Error(1)
}

func (m *MockRevenueTypeRepository) Save(ctx context.Context, revenueType *ledger.RevenueType) error {
	args := m.Called(ctx, revenueType)
	return args.Error(0)
}

func (m *MockRevenueTypeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
