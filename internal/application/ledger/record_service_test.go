package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected a domain error, got %T: %v", err, err)
	return domainErr.Code
}

func testChartAccount(t *testing.T, tenantID uuid.UUID) *ledger.ChartOfAccount {
	t.Helper()
	account, err := ledger.NewChartOfAccount(tenantID,
		"3", "Fixed Expenses", "3.1", "Facilities", "3.1.1", "Rent")
	require.NoError(t, err)
	return account
}

func TestRecordService_CreateRecords_SingleExpense(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	account := testChartAccount(t, tenantID)
	chartRepo.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)

	var saved []*ledger.Record
	recordRepo.On("SaveAll", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]*ledger.Record)
	}).Return(nil)

	responses, err := service.CreateRecords(context.Background(), tenantID, CreateRecordRequest{
		Description: "Office rent",
		Amount:      decimal.RequireFromString("1200.00"),
		Type:        "EXPENSE",
		DueDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		RubricID:    &account.ID,
	})
	require.NoError(t, err)
	require.Len(t, responses, 1)

	assert.True(t, responses[0].Amount.Equal(decimal.RequireFromString("-1200.00")))
	assert.Equal(t, "PENDING", responses[0].Status)
	assert.Nil(t, responses[0].SeriesID)
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].RubricID)
	assert.Equal(t, account.ID, *saved[0].RubricID)
	recordRepo.AssertExpectations(t)
}

func TestRecordService_CreateRecords_InstallmentSeries(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	recordRepo.On("SaveAll", mock.Anything, mock.Anything).Return(nil)

	responses, err := service.CreateRecords(context.Background(), tenantID, CreateRecordRequest{
		Description:  "Annual license",
		Amount:       decimal.RequireFromString("1000.00"),
		Type:         "EXPENSE",
		DueDate:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Installments: 3,
		Distribution: "TOTAL",
	})
	require.NoError(t, err)
	require.Len(t, responses, 3)

	// Truncation remainder lands on the first installment
	assert.True(t, responses[0].Amount.Equal(decimal.RequireFromString("-333.34")))
	assert.True(t, responses[1].Amount.Equal(decimal.RequireFromString("-333.33")))
	assert.True(t, responses[2].Amount.Equal(decimal.RequireFromString("-333.33")))

	// Month-end due dates clamp instead of overflowing
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), responses[1].DueDate)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), responses[2].DueDate)

	require.NotNil(t, responses[0].SeriesID)
	assert.Equal(t, *responses[0].SeriesID, *responses[2].SeriesID)
}

func TestRecordService_CreateRecords_SplitIncome(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	consulting := uuid.New()
	training := uuid.New()
	recordRepo.On("SaveAll", mock.Anything, mock.Anything).Return(nil)

	responses, err := service.CreateRecords(context.Background(), tenantID, CreateRecordRequest{
		Description: "Project delivery",
		Amount:      decimal.RequireFromString("1000.00"),
		Type:        "INCOME",
		DueDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Splits: []SplitEntry{
			{RevenueTypeID: consulting, Amount: decimal.RequireFromString("600.00")},
			{RevenueTypeID: training, Amount: decimal.RequireFromString("400.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Len(t, responses[0].SplitRevenue, 2)
	assert.True(t, responses[0].Amount.Equal(responses[0].SplitRevenue.Total()))
}

func TestRecordService_CreateRecords_UnknownRubric(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	rubricID := uuid.New()
	chartRepo.On("FindByIDForTenant", mock.Anything, tenantID, rubricID).Return(nil, nil)

	_, err := service.CreateRecords(context.Background(), tenantID, CreateRecordRequest{
		Description: "Office rent",
		Amount:      decimal.RequireFromString("100.00"),
		Type:        "EXPENSE",
		DueDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		RubricID:    &rubricID,
	})
	require.Error(t, err)
	assert.Equal(t, "RUBRIC_NOT_FOUND", domainCode(t, err))
	recordRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestRecordService_CreateRecords_UnclassifiedExpenseIsFlagged(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	var saved []*ledger.Record
	recordRepo.On("SaveAll", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]*ledger.Record)
	}).Return(nil)

	responses, err := service.CreateRecords(context.Background(), tenantID, CreateRecordRequest{
		Description: "Unfiled invoice",
		Amount:      decimal.RequireFromString("250.00"),
		Type:        "EXPENSE",
		DueDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, responses, 1)

	// An expense without a rubric lands in the validation queue instead of
	// disappearing from every report
	assert.True(t, responses[0].NeedsValidation)
	require.Len(t, saved, 1)
	assert.True(t, saved[0].NeedsValidation)
	assert.True(t, saved[0].IsUnclassified())
}

func TestRecordService_UpdateRecord_DroppedClassificationIsFlagged(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	account := testChartAccount(t, tenantID)
	record, err := ledger.NewRecord(tenantID, "Office rent", decimal.RequireFromString("1200.00"),
		ledger.RecordTypeExpense, false, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, record.ClassifyByRubric(account.ID))

	recordRepo.On("FindByIDForTenant", mock.Anything, tenantID, record.ID).Return(record, nil)
	recordRepo.On("Save", mock.Anything, record).Return(nil)

	response, err := service.UpdateRecord(context.Background(), tenantID, record.ID, UpdateRecordRequest{
		Description: "Office rent",
		Amount:      decimal.RequireFromString("1200.00"),
		DueDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Nil(t, response.RubricID)
	assert.True(t, response.NeedsValidation)
	recordRepo.AssertExpectations(t)
}

func TestRecordService_UpdateRecord_ReplacesClassification(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	record, err := ledger.NewRecord(tenantID, "Sale", decimal.RequireFromString("500.00"),
		ledger.RecordTypeIncome, false, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, record.ClassifyByRevenueType(uuid.New()))

	recordRepo.On("FindByIDForTenant", mock.Anything, tenantID, record.ID).Return(record, nil)
	recordRepo.On("Save", mock.Anything, record).Return(nil)

	newRevenueType := uuid.New()
	response, err := service.UpdateRecord(context.Background(), tenantID, record.ID, UpdateRecordRequest{
		Description:   "Sale with discount",
		Amount:        decimal.RequireFromString("450.00"),
		DueDate:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		RevenueTypeID: &newRevenueType,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sale with discount", response.Description)
	assert.True(t, response.Amount.Equal(decimal.RequireFromString("450.00")))
	require.NotNil(t, response.RevenueTypeID)
	assert.Equal(t, newRevenueType, *response.RevenueTypeID)
	recordRepo.AssertExpectations(t)
}

func TestRecordService_PayRecord(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	record, err := ledger.NewRecord(tenantID, "Sale", decimal.RequireFromString("500.00"),
		ledger.RecordTypeIncome, false, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	recordRepo.On("FindByIDForTenant", mock.Anything, tenantID, record.ID).Return(record, nil)
	recordRepo.On("Save", mock.Anything, record).Return(nil)

	paymentDate := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	bankID := uuid.New()
	response, err := service.PayRecord(context.Background(), tenantID, record.ID, PayRecordRequest{
		PaymentDate: paymentDate,
		BankID:      &bankID,
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", response.Status)
	require.NotNil(t, response.PaymentDate)
	assert.Equal(t, paymentDate, *response.PaymentDate)
	require.NotNil(t, response.BankID)
	assert.Equal(t, bankID, *response.BankID)
}

func TestRecordService_PayRecord_NotFound(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	id := uuid.New()
	recordRepo.On("FindByIDForTenant", mock.Anything, tenantID, id).Return(nil, nil)

	_, err := service.PayRecord(context.Background(), tenantID, id, PayRecordRequest{
		PaymentDate: time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestRecordService_DeleteRecord_WholeSeries(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	tenantID := uuid.New()
	seriesID := uuid.New()
	record, err := ledger.NewRecord(tenantID, "Installment", decimal.RequireFromString("100.00"),
		ledger.RecordTypeExpense, false, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	record.AttachToSeries(seriesID)

	recordRepo.On("FindByIDForTenant", mock.Anything, tenantID, record.ID).Return(record, nil)
	recordRepo.On("DeleteBySeries", mock.Anything, tenantID, seriesID).Return(nil)

	require.NoError(t, service.DeleteRecord(context.Background(), tenantID, record.ID, true))
	recordRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	recordRepo.AssertExpectations(t)
}

func TestRecordService_ListRecords_InvalidFilter(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	chartRepo := new(MockChartOfAccountRepository)
	service := NewRecordService(recordRepo, chartRepo)

	_, err := service.ListRecords(context.Background(), uuid.New(), RecordListFilter{Type: "TRANSFER"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_TYPE", domainCode(t, err))
}
