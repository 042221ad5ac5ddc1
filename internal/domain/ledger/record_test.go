package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTenant = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func newTestRecord(t *testing.T, recordType RecordType, isRefund bool) *Record {
	t.Helper()
	record, err := NewRecord(
		testTenant,
		"office rent",
		decimal.RequireFromString("150.00"),
		recordType,
		isRefund,
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return record
}

func TestSignedAmount(t *testing.T) {
	magnitude := decimal.RequireFromString("42.50")

	t.Run("expense is stored negative", func(t *testing.T) {
		assert.True(t, SignedAmount(RecordTypeExpense, false, magnitude).IsNegative())
	})

	t.Run("expense refund is stored positive", func(t *testing.T) {
		assert.True(t, SignedAmount(RecordTypeExpense, true, magnitude).IsPositive())
	})

	t.Run("income is stored positive", func(t *testing.T) {
		assert.True(t, SignedAmount(RecordTypeIncome, false, magnitude).IsPositive())
	})

	t.Run("income refund is stored negative", func(t *testing.T) {
		assert.True(t, SignedAmount(RecordTypeIncome, true, magnitude).IsNegative())
	})

	t.Run("magnitude sign is ignored", func(t *testing.T) {
		negative := decimal.RequireFromString("-42.50")
		assert.True(t, SignedAmount(RecordTypeIncome, false, negative).IsPositive())
	})
}

func TestNewRecord(t *testing.T) {
	t.Run("creates a pending record with the signed amount", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeExpense, false)
		assert.Equal(t, RecordStatusPending, record.Status)
		assert.True(t, record.Amount.Equal(decimal.RequireFromString("-150.00")))
		assert.Equal(t, testTenant, record.TenantID)
		assert.Len(t, record.GetDomainEvents(), 1)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewRecord(testTenant, "", decimal.NewFromInt(10), RecordTypeIncome, false, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive magnitude", func(t *testing.T) {
		_, err := NewRecord(testTenant, "x", decimal.Zero, RecordTypeIncome, false, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects missing due date", func(t *testing.T) {
		_, err := NewRecord(testTenant, "x", decimal.NewFromInt(10), RecordTypeIncome, false, time.Time{})
		assert.Error(t, err)
	})
}

func TestRecordClassification(t *testing.T) {
	t.Run("income accepts a single revenue type", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeIncome, false)
		require.NoError(t, record.ClassifyByRevenueType(uuid.New()))
		assert.True(t, record.HasRevenueClassification())
	})

	t.Run("revenue type and split revenue are mutually exclusive", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeIncome, false)
		require.NoError(t, record.ClassifyByRevenueType(uuid.New()))
		err := record.ClassifyBySplitRevenue(RevenueSplits{
			{RevenueTypeID: uuid.New(), Amount: decimal.RequireFromString("150.00")},
		})
		assert.Error(t, err)
	})

	t.Run("split revenue must total the record amount", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeIncome, false)
		err := record.ClassifyBySplitRevenue(RevenueSplits{
			{RevenueTypeID: uuid.New(), Amount: decimal.RequireFromString("90.00")},
			{RevenueTypeID: uuid.New(), Amount: decimal.RequireFromString("70.00")},
		})
		assert.Error(t, err)

		err = record.ClassifyBySplitRevenue(RevenueSplits{
			{RevenueTypeID: uuid.New(), Amount: decimal.RequireFromString("90.00")},
			{RevenueTypeID: uuid.New(), Amount: decimal.RequireFromString("60.00")},
		})
		assert.NoError(t, err)
	})

	t.Run("expense records cannot carry revenue classification", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeExpense, false)
		assert.Error(t, record.ClassifyByRevenueType(uuid.New()))
		assert.Error(t, record.ClassifyBySplitRevenue(RevenueSplits{
			{RevenueTypeID: uuid.New(), Amount: decimal.NewFromInt(150)},
		}))
	})

	t.Run("unclassified detection", func(t *testing.T) {
		expense := newTestRecord(t, RecordTypeExpense, false)
		assert.True(t, expense.IsUnclassified())
		require.NoError(t, expense.ClassifyByRubric(uuid.New()))
		assert.False(t, expense.IsUnclassified())

		income := newTestRecord(t, RecordTypeIncome, false)
		assert.True(t, income.IsUnclassified())
		require.NoError(t, income.ClassifyByRevenueType(uuid.New()))
		assert.False(t, income.IsUnclassified())
	})
}

func TestRecordLifecycle(t *testing.T) {
	t.Run("mark paid sets payment date and status", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeExpense, false)
		paidAt := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
		require.NoError(t, record.MarkPaid(paidAt))
		assert.Equal(t, RecordStatusPaid, record.Status)
		require.NotNil(t, record.PaymentDate)
		assert.Equal(t, paidAt, *record.PaymentDate)
	})

	t.Run("mark paid twice fails", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeExpense, false)
		require.NoError(t, record.MarkPaid(time.Now()))
		assert.Error(t, record.MarkPaid(time.Now()))
	})

	t.Run("paid records cannot become overdue", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeExpense, false)
		require.NoError(t, record.MarkPaid(time.Now()))
		assert.Error(t, record.MarkOverdue())
	})

	t.Run("validation flag round-trip", func(t *testing.T) {
		record := newTestRecord(t, RecordTypeIncome, false)
		record.FlagForValidation()
		assert.True(t, record.NeedsValidation)
		record.ClearValidation()
		assert.False(t, record.NeedsValidation)
	})
}

func TestRevenueSplitsScan(t *testing.T) {
	t.Run("round-trips through jsonb", func(t *testing.T) {
		splits := RevenueSplits{
			{RevenueTypeID: uuid.New(), Amount: decimal.RequireFromString("12.34")},
		}
		value, err := splits.Value()
		require.NoError(t, err)

		var decoded RevenueSplits
		require.NoError(t, decoded.Scan(value))
		require.Len(t, decoded, 1)
		assert.Equal(t, splits[0].RevenueTypeID, decoded[0].RevenueTypeID)
		assert.True(t, splits[0].Amount.Equal(decoded[0].Amount))
	})

	t.Run("nil scans to empty slice", func(t *testing.T) {
		var decoded RevenueSplits
		require.NoError(t, decoded.Scan(nil))
		assert.Empty(t, decoded)
	})
}
