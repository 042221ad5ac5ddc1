package ledger

import (
	"context"
	"io"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/fluxo/backend/internal/infrastructure/importer"
	"github.com/google/uuid"
)

// ImportService ingests statement exports into ledger records
type ImportService struct {
	recordRepo ledger.RecordRepository
	chartRepo  ledger.ChartOfAccountRepository
}

// NewImportService creates a new ImportService
func NewImportService(recordRepo ledger.RecordRepository, chartRepo ledger.ChartOfAccountRepository) *ImportService {
	return &ImportService{recordRepo: recordRepo, chartRepo: chartRepo}
}

// ImportResult represents the outcome of one statement import
type ImportResult struct {
	TotalRows      int                 `json:"total_rows"`
	ImportedRows   int                 `json:"imported_rows"`
	FlaggedRows    int                 `json:"flagged_rows"`
	ErrorRows      int                 `json:"error_rows"`
	Errors         []importer.RowError `json:"errors,omitempty"`
	ImportedRecord []RecordResponse    `json:"imported_records,omitempty"`
}

// ImportStatement parses a statement export and creates one record per row.
// The amount's sign decides the record type: negative amounts become
// expenses, positive amounts income. Rows whose rubric code is missing or
// unknown still import but are flagged for validation, keeping them out of
// every report until someone classifies them.
func (s *ImportService) ImportStatement(ctx context.Context, tenantID uuid.UUID, r io.Reader) (*ImportResult, error) {
	parsed, err := importer.Parse(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_STATEMENT", err.Error())
	}

	accounts, err := s.chartRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	byRubricCode := make(map[string]uuid.UUID, len(accounts))
	for i := range accounts {
		byRubricCode[accounts[i].RubricCode] = accounts[i].ID
	}

	result := &ImportResult{
		TotalRows: len(parsed.Rows) + len(parsed.Errors),
		Errors:    parsed.Errors,
		ErrorRows: len(parsed.Errors),
	}

	records := make([]*ledger.Record, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		record, rowErr := s.buildRecord(tenantID, row, byRubricCode)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			result.ErrorRows++
			continue
		}
		if record.NeedsValidation {
			result.FlaggedRows++
		}
		records = append(records, record)
	}

	if len(records) > 0 {
		if err := s.recordRepo.SaveAll(ctx, records); err != nil {
			return nil, err
		}
	}

	for _, record := range records {
		result.ImportedRecord = append(result.ImportedRecord, toRecordResponse(record))
	}
	result.ImportedRows = len(records)
	return result, nil
}

func (s *ImportService) buildRecord(
	tenantID uuid.UUID,
	row importer.StatementRow,
	byRubricCode map[string]uuid.UUID,
) (*ledger.Record, *importer.RowError) {
	recordType := ledger.RecordTypeIncome
	if row.Amount.IsNegative() {
		recordType = ledger.RecordTypeExpense
	}
	if row.Amount.IsZero() {
		return nil, &importer.RowError{LineNumber: row.LineNumber, Field: "amount", Message: "amount cannot be zero"}
	}

	record, err := ledger.NewRecord(tenantID, row.Description, row.Amount.Abs(), recordType, false, row.DueDate)
	if err != nil {
		return nil, &importer.RowError{LineNumber: row.LineNumber, Field: "", Message: err.Error()}
	}
	if row.Competence != nil {
		record.SetCompetenceDate(*row.Competence)
	}

	rubricID, known := byRubricCode[row.RubricCode]
	if row.RubricCode != "" && known {
		if err := record.ClassifyByRubric(rubricID); err != nil {
			return nil, &importer.RowError{LineNumber: row.LineNumber, Field: "rubric_code", Message: err.Error()}
		}
	} else {
		record.FlagForValidation()
	}

	return record, nil
}
