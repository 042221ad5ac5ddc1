package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ChartService provides application-level chart of accounts operations
type ChartService struct {
	chartRepo  ledger.ChartOfAccountRepository
	recordRepo ledger.RecordRepository
}

// NewChartService creates a new ChartService
func NewChartService(chartRepo ledger.ChartOfAccountRepository, recordRepo ledger.RecordRepository) *ChartService {
	return &ChartService{chartRepo: chartRepo, recordRepo: recordRepo}
}

// CreateChartAccountRequest represents a request to create one chart account
type CreateChartAccountRequest struct {
	ClassificationCode string `json:"classification_code" binding:"required"`
	ClassificationName string `json:"classification_name" binding:"required"`
	CenterCode         string `json:"center_code" binding:"required"`
	CenterName         string `json:"center_name" binding:"required"`
	RubricCode         string `json:"rubric_code" binding:"required"`
	RubricName         string `json:"rubric_name" binding:"required"`
}

// ChartAccountResponse represents a chart account in API responses
type ChartAccountResponse struct {
	ID                 uuid.UUID `json:"id"`
	TenantID           uuid.UUID `json:"tenant_id"`
	ClassificationCode string    `json:"classification_code"`
	ClassificationName string    `json:"classification_name"`
	CenterCode         string    `json:"center_code"`
	CenterName         string    `json:"center_name"`
	RubricCode         string    `json:"rubric_code"`
	RubricName         string    `json:"rubric_name"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateAccount adds one rubric to the tenant's chart of accounts. The rubric
// code must extend its center code, which must extend its classification code.
func (s *ChartService) CreateAccount(ctx context.Context, tenantID uuid.UUID, req CreateChartAccountRequest) (*ChartAccountResponse, error) {
	existing, err := s.chartRepo.FindByRubricCode(ctx, tenantID, req.RubricCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_RUBRIC", "Rubric code already exists in the chart of accounts")
	}

	account, err := ledger.NewChartOfAccount(
		tenantID,
		req.ClassificationCode,
		req.ClassificationName,
		req.CenterCode,
		req.CenterName,
		req.RubricCode,
		req.RubricName,
	)
	if err != nil {
		return nil, err
	}

	if err := s.chartRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return toChartAccountResponse(account), nil
}

// ListAccounts returns the tenant's whole chart in natural code order
func (s *ChartService) ListAccounts(ctx context.Context, tenantID uuid.UUID) ([]ChartAccountResponse, error) {
	accounts, err := s.chartRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sort.Slice(accounts, func(i, j int) bool {
		return ledger.CompareCodes(accounts[i].RubricCode, accounts[j].RubricCode) < 0
	})
	responses := make([]ChartAccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, *toChartAccountResponse(&accounts[i]))
	}
	return responses, nil
}

// DeleteAccount removes a rubric from the chart. Rubrics still referenced by
// records cannot be deleted.
func (s *ChartService) DeleteAccount(ctx context.Context, tenantID, id uuid.UUID) error {
	account, err := s.chartRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if account == nil {
		return shared.NewDomainError("NOT_FOUND", "Chart account not found")
	}

	filter := ledger.RecordFilter{RubricID: &id}
	filter.Normalize()
	count, err := s.recordRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("RUBRIC_IN_USE", "Rubric is referenced by existing records")
	}

	return s.chartRepo.Delete(ctx, tenantID, id)
}

func toChartAccountResponse(account *ledger.ChartOfAccount) *ChartAccountResponse {
	return &ChartAccountResponse{
		ID:                 account.ID,
		TenantID:           account.TenantID,
		ClassificationCode: account.ClassificationCode,
		ClassificationName: account.ClassificationName,
		CenterCode:         account.CenterCode,
		CenterName:         account.CenterName,
		RubricCode:         account.RubricCode,
		RubricName:         account.RubricName,
		CreatedAt:          account.CreatedAt,
		UpdatedAt:          account.UpdatedAt,
	}
}
