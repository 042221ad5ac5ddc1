package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the ledger schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, (&Database{DB: db}).AutoMigrate())
	return db
}

func newTestRecord(t *testing.T, tenantID uuid.UUID, description string, due time.Time) *ledger.Record {
	t.Helper()
	record, err := ledger.NewRecord(tenantID, description, decimal.RequireFromString("100.00"),
		ledger.RecordTypeExpense, false, due)
	require.NoError(t, err)
	return record
}

func TestGormRecordRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRecordRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	record := newTestRecord(t, tenantID, "office rent", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	rubricID := uuid.New()
	require.NoError(t, record.ClassifyByRubric(rubricID))
	require.NoError(t, repo.Save(ctx, record))

	t.Run("round-trips all fields", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, record.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "office rent", found.Description)
		assert.True(t, found.Amount.Equal(decimal.RequireFromString("-100.00")))
		assert.Equal(t, ledger.RecordTypeExpense, found.Type)
		assert.Equal(t, ledger.RecordStatusPending, found.Status)
		require.NotNil(t, found.RubricID)
		assert.Equal(t, rubricID, *found.RubricID)
	})

	t.Run("missing record returns nil without error", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("another tenant cannot see the record", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, uuid.New(), record.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormRecordRepository_SplitRevenueRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRecordRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	record, err := ledger.NewRecord(tenantID, "project invoice", decimal.RequireFromString("1000.00"),
		ledger.RecordTypeIncome, false, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	splits := ledger.RevenueSplits{
		{RevenueTypeID: uuid.New(), Amount: decimal.RequireFromString("600.00")},
		{RevenueTypeID: uuid.New(), Amount: decimal.RequireFromString("400.00")},
	}
	require.NoError(t, record.ClassifyBySplitRevenue(splits))
	require.NoError(t, repo.Save(ctx, record))

	found, err := repo.FindByIDForTenant(ctx, tenantID, record.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.SplitRevenue, 2)
	assert.Equal(t, splits[0].RevenueTypeID, found.SplitRevenue[0].RevenueTypeID)
	assert.True(t, found.SplitRevenue.Total().Equal(decimal.RequireFromString("1000.00")))
}

func TestGormRecordRepository_FilterAndPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRecordRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := newTestRecord(t, tenantID, "expense", base.AddDate(0, i, 0))
		require.NoError(t, repo.Save(ctx, record))
	}
	income, err := ledger.NewRecord(tenantID, "sale", decimal.RequireFromString("50.00"),
		ledger.RecordTypeIncome, false, base)
	require.NoError(t, err)
	require.NoError(t, income.MarkPaid(base))
	require.NoError(t, repo.Save(ctx, income))

	t.Run("filters by type", func(t *testing.T) {
		incomeType := ledger.RecordTypeIncome
		filter := ledger.RecordFilter{Type: &incomeType}
		filter.Normalize()
		records, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "sale", records[0].Description)
	})

	t.Run("filters by status", func(t *testing.T) {
		paid := ledger.RecordStatusPaid
		filter := ledger.RecordFilter{Status: &paid}
		filter.Normalize()
		count, err := repo.CountForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("paginates in due date order", func(t *testing.T) {
		filter := ledger.RecordFilter{Page: 2, PageSize: 2}
		records, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.True(t, records[0].DueDate.Before(records[1].DueDate))
	})

	t.Run("filters by due date window", func(t *testing.T) {
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
		filter := ledger.RecordFilter{DueFrom: &from, DueTo: &to}
		filter.Normalize()
		count, err := repo.CountForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormRecordRepository_Series(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRecordRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	seriesID := uuid.New()

	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	records := make([]*ledger.Record, 0, 3)
	for i := 0; i < 3; i++ {
		record := newTestRecord(t, tenantID, "installment", base.AddDate(0, i, 0))
		record.AttachToSeries(seriesID)
		records = append(records, record)
	}
	require.NoError(t, repo.SaveAll(ctx, records))

	found, err := repo.FindBySeries(ctx, tenantID, seriesID)
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.True(t, found[0].DueDate.Before(found[1].DueDate))

	require.NoError(t, repo.DeleteBySeries(ctx, tenantID, seriesID))
	found, err = repo.FindBySeries(ctx, tenantID, seriesID)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGormRecordRepository_FindForReporting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRecordRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	inside := newTestRecord(t, tenantID, "inside", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, inside))

	// Due date outside the window but payment date inside
	straddling := newTestRecord(t, tenantID, "straddling", time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, straddling.MarkPaid(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Save(ctx, straddling))

	outside := newTestRecord(t, tenantID, "outside", time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, outside))

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	records, err := repo.FindForReporting(ctx, tenantID, from, to)
	require.NoError(t, err)
	require.Len(t, records, 2)
	descriptions := []string{records[0].Description, records[1].Description}
	assert.ElementsMatch(t, []string{"inside", "straddling"}, descriptions)
}
