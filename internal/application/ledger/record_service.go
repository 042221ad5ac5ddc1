package ledger

import (
	"context"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordService provides application-level ledger record operations
type RecordService struct {
	recordRepo ledger.RecordRepository
	chartRepo  ledger.ChartOfAccountRepository
}

// NewRecordService creates a new RecordService
func NewRecordService(
	recordRepo ledger.RecordRepository,
	chartRepo ledger.ChartOfAccountRepository,
) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		chartRepo:  chartRepo,
	}
}

// SplitEntry is one share of a record's amount attributed to a revenue type
type SplitEntry struct {
	RevenueTypeID uuid.UUID       `json:"revenue_type_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// CreateRecordRequest represents a request to create one entry, optionally
// expanded into a series of installments
type CreateRecordRequest struct {
	Description    string          `json:"description" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Type           string          `json:"type" binding:"required"`
	IsRefund       bool            `json:"is_refund"`
	DueDate        time.Time       `json:"due_date" binding:"required"`
	CompetenceDate *time.Time      `json:"competence_date"`
	Installments   int             `json:"installments"`
	Distribution   string          `json:"distribution"`
	CompetenceMode string          `json:"competence_mode"`
	RubricID       *uuid.UUID      `json:"rubric_id"`
	RevenueTypeID  *uuid.UUID      `json:"revenue_type_id"`
	Splits         []SplitEntry    `json:"splits"`
	CompanyID      *uuid.UUID      `json:"company_id"`
	BankID         *uuid.UUID      `json:"bank_id"`
}

// UpdateRecordRequest represents a request to update a single record
type UpdateRecordRequest struct {
	Description    string          `json:"description" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	IsRefund       bool            `json:"is_refund"`
	DueDate        time.Time       `json:"due_date" binding:"required"`
	CompetenceDate *time.Time      `json:"competence_date"`
	RubricID       *uuid.UUID      `json:"rubric_id"`
	RevenueTypeID  *uuid.UUID      `json:"revenue_type_id"`
	Splits         []SplitEntry    `json:"splits"`
	CompanyID      *uuid.UUID      `json:"company_id"`
	BankID         *uuid.UUID      `json:"bank_id"`
}

// PayRecordRequest represents a request to settle a record
type PayRecordRequest struct {
	PaymentDate time.Time  `json:"payment_date"`
	BankID      *uuid.UUID `json:"bank_id"`
}

// RecordListFilter defines filtering options for record list queries
type RecordListFilter struct {
	Type            string     `form:"type"`
	Status          string     `form:"status"`
	NeedsValidation *bool      `form:"needs_validation"`
	SeriesID        *uuid.UUID `form:"series_id"`
	RubricID        *uuid.UUID `form:"rubric_id"`
	DueFrom         *time.Time `form:"due_from"`
	DueTo           *time.Time `form:"due_to"`
	Page            int        `form:"page"`
	PageSize        int        `form:"page_size"`
}

// RecordResponse represents a ledger record in API responses
type RecordResponse struct {
	ID              uuid.UUID            `json:"id"`
	TenantID        uuid.UUID            `json:"tenant_id"`
	Description     string               `json:"description"`
	Amount          decimal.Decimal      `json:"amount"`
	Type            string               `json:"type"`
	Status          string               `json:"status"`
	IsRefund        bool                 `json:"is_refund"`
	DueDate         time.Time            `json:"due_date"`
	CompetenceDate  *time.Time           `json:"competence_date,omitempty"`
	PaymentDate     *time.Time           `json:"payment_date,omitempty"`
	RubricID        *uuid.UUID           `json:"rubric_id,omitempty"`
	RevenueTypeID   *uuid.UUID           `json:"revenue_type_id,omitempty"`
	SeriesID        *uuid.UUID           `json:"series_id,omitempty"`
	CompanyID       *uuid.UUID           `json:"company_id,omitempty"`
	BankID          *uuid.UUID           `json:"bank_id,omitempty"`
	SplitRevenue    ledger.RevenueSplits `json:"split_revenue,omitempty"`
	NeedsValidation bool                 `json:"needs_validation"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Version         int                  `json:"version"`
}

// CreateRecords expands the request into one record per installment and
// persists them atomically. Multi-installment entries share a series id.
func (s *RecordService) CreateRecords(ctx context.Context, tenantID uuid.UUID, req CreateRecordRequest) ([]RecordResponse, error) {
	recordType := ledger.RecordType(req.Type)

	count := req.Installments
	if count == 0 {
		count = 1
	}

	spec := ledger.InstallmentSpec{
		Amount:         req.Amount,
		Count:          count,
		Type:           recordType,
		IsRefund:       req.IsRefund,
		DueDate:        req.DueDate,
		CompetenceDate: req.CompetenceDate,
		Distribution:   ledger.DistributionMode(req.Distribution),
		Competence:     ledger.CompetenceMode(req.CompetenceMode),
		Splits:         toRevenueSplits(req.Splits),
	}

	installments, err := ledger.GenerateInstallments(spec)
	if err != nil {
		return nil, err
	}

	var seriesID *uuid.UUID
	if len(installments) > 1 {
		id := uuid.New()
		seriesID = &id
	}

	records := make([]*ledger.Record, 0, len(installments))
	for _, installment := range installments {
		record, err := ledger.NewRecord(
			tenantID,
			req.Description,
			installment.Amount.Abs(),
			recordType,
			req.IsRefund,
			installment.DueDate,
		)
		if err != nil {
			return nil, err
		}
		if installment.CompetenceDate != nil {
			record.SetCompetenceDate(*installment.CompetenceDate)
		}
		if err := s.applyClassification(ctx, tenantID, record, req.RubricID, req.RevenueTypeID, installment.Splits); err != nil {
			return nil, err
		}
		if seriesID != nil {
			record.AttachToSeries(*seriesID)
		}
		record.CompanyID = req.CompanyID
		record.BankID = req.BankID
		records = append(records, record)
	}

	if err := s.recordRepo.SaveAll(ctx, records); err != nil {
		return nil, err
	}

	responses := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record))
	}
	return responses, nil
}

// GetRecordByID gets a record by ID
func (s *RecordService) GetRecordByID(ctx context.Context, tenantID, id uuid.UUID) (*RecordResponse, error) {
	record, err := s.findRecord(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := toRecordResponse(record)
	return &response, nil
}

// ListRecords returns a paginated record list matching the filter
func (s *RecordService) ListRecords(ctx context.Context, tenantID uuid.UUID, filter RecordListFilter) (*shared.Paginated[RecordResponse], error) {
	domainFilter, err := toDomainFilter(filter)
	if err != nil {
		return nil, err
	}
	domainFilter.Normalize()

	records, err := s.recordRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.recordRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toRecordResponse(&records[i]))
	}
	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// UpdateRecord rewrites a record's mutable fields. Changing the amount or the
// classification re-derives the signed amount and replaces the previous
// classification wholesale.
func (s *RecordService) UpdateRecord(ctx context.Context, tenantID, id uuid.UUID, req UpdateRecordRequest) (*RecordResponse, error) {
	record, err := s.findRecord(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := record.Rewrite(req.Description, req.Amount, req.IsRefund, req.DueDate); err != nil {
		return nil, err
	}
	record.CompetenceDate = req.CompetenceDate
	record.RubricID = nil
	record.RevenueTypeID = nil
	record.SplitRevenue = nil
	if err := s.applyClassification(ctx, tenantID, record, req.RubricID, req.RevenueTypeID, toRevenueSplits(req.Splits)); err != nil {
		return nil, err
	}
	record.CompanyID = req.CompanyID
	record.BankID = req.BankID

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := toRecordResponse(record)
	return &response, nil
}

// PayRecord settles a record on the given payment date
func (s *RecordService) PayRecord(ctx context.Context, tenantID, id uuid.UUID, req PayRecordRequest) (*RecordResponse, error) {
	record, err := s.findRecord(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := record.MarkPaid(req.PaymentDate); err != nil {
		return nil, err
	}
	if req.BankID != nil {
		record.BankID = req.BankID
	}

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := toRecordResponse(record)
	return &response, nil
}

// ValidateRecord clears the needs-validation flag, re-admitting the record
// into every report
func (s *RecordService) ValidateRecord(ctx context.Context, tenantID, id uuid.UUID) (*RecordResponse, error) {
	record, err := s.findRecord(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	record.ClearValidation()
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := toRecordResponse(record)
	return &response, nil
}

// DeleteRecord deletes one record; with wholeSeries it removes every record
// sharing the series id
func (s *RecordService) DeleteRecord(ctx context.Context, tenantID, id uuid.UUID, wholeSeries bool) error {
	record, err := s.findRecord(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if wholeSeries && record.SeriesID != nil {
		return s.recordRepo.DeleteBySeries(ctx, tenantID, *record.SeriesID)
	}
	return s.recordRepo.Delete(ctx, tenantID, id)
}

// ListSeries returns every record sharing a series id, ordered by due date
func (s *RecordService) ListSeries(ctx context.Context, tenantID, seriesID uuid.UUID) ([]RecordResponse, error) {
	records, err := s.recordRepo.FindBySeries(ctx, tenantID, seriesID)
	if err != nil {
		return nil, err
	}
	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toRecordResponse(&records[i]))
	}
	return responses, nil
}

// applyClassification attributes the record to a rubric, one revenue type or
// a revenue split. The rubric must exist in the tenant's chart of accounts.
func (s *RecordService) applyClassification(
	ctx context.Context,
	tenantID uuid.UUID,
	record *ledger.Record,
	rubricID, revenueTypeID *uuid.UUID,
	splits ledger.RevenueSplits,
) error {
	if rubricID != nil {
		account, err := s.chartRepo.FindByIDForTenant(ctx, tenantID, *rubricID)
		if err != nil {
			return err
		}
		if account == nil {
			return shared.NewDomainError("RUBRIC_NOT_FOUND", "Rubric does not exist in the chart of accounts")
		}
		if err := record.ClassifyByRubric(*rubricID); err != nil {
			return err
		}
	}
	if revenueTypeID != nil {
		if err := record.ClassifyByRevenueType(*revenueTypeID); err != nil {
			return err
		}
	}
	if len(splits) > 0 {
		if err := record.ClassifyBySplitRevenue(splits); err != nil {
			return err
		}
	}
	// A record no report predicate can resolve must stay visible in the
	// validation queue instead of vanishing from every view.
	if record.IsUnclassified() {
		record.FlagForValidation()
	}
	return nil
}

func (s *RecordService) findRecord(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Record, error) {
	record, err := s.recordRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Record not found")
	}
	return record, nil
}

func toRevenueSplits(entries []SplitEntry) ledger.RevenueSplits {
	if len(entries) == 0 {
		return nil
	}
	splits := make(ledger.RevenueSplits, 0, len(entries))
	for _, entry := range entries {
		splits = append(splits, ledger.RevenueSplit{
			RevenueTypeID: entry.RevenueTypeID,
			Amount:        entry.Amount,
		})
	}
	return splits
}

func toDomainFilter(filter RecordListFilter) (ledger.RecordFilter, error) {
	out := ledger.RecordFilter{
		NeedsValidation: filter.NeedsValidation,
		SeriesID:        filter.SeriesID,
		RubricID:        filter.RubricID,
		DueFrom:         filter.DueFrom,
		DueTo:           filter.DueTo,
		Page:            filter.Page,
		PageSize:        filter.PageSize,
	}
	if filter.Type != "" {
		recordType := ledger.RecordType(filter.Type)
		if !recordType.IsValid() {
			return out, shared.NewDomainError("INVALID_TYPE", "Record type is not valid")
		}
		out.Type = &recordType
	}
	if filter.Status != "" {
		status := ledger.RecordStatus(filter.Status)
		if !status.IsValid() {
			return out, shared.NewDomainError("INVALID_STATUS", "Record status is not valid")
		}
		out.Status = &status
	}
	return out, nil
}

func toRecordResponse(record *ledger.Record) RecordResponse {
	return RecordResponse{
		ID:              record.ID,
		TenantID:        record.TenantID,
		Description:     record.Description,
		Amount:          record.Amount,
		Type:            record.Type.String(),
		Status:          record.Status.String(),
		IsRefund:        record.IsRefund,
		DueDate:         record.DueDate,
		CompetenceDate:  record.CompetenceDate,
		PaymentDate:     record.PaymentDate,
		RubricID:        record.RubricID,
		RevenueTypeID:   record.RevenueTypeID,
		SeriesID:        record.SeriesID,
		CompanyID:       record.CompanyID,
		BankID:          record.BankID,
		SplitRevenue:    record.SplitRevenue,
		NeedsValidation: record.NeedsValidation,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
		Version:         record.Version,
	}
}
