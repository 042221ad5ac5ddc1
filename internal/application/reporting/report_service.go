package reporting

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/domain/reporting"
	"github.com/fluxo/backend/internal/infrastructure/cache"
	"github.com/fluxo/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportService assembles period reports from a tenant's ledger snapshot.
// Rendered reports are cached per tenant and request fingerprint; any ledger
// write invalidates the tenant's entries.
type ReportService struct {
	recordRepo      ledger.RecordRepository
	chartRepo       ledger.ChartOfAccountRepository
	revenueTypeRepo ledger.RevenueTypeRepository
	reportCache     cache.ReportCache
	cfg             config.ReportConfig
	logger          *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	recordRepo ledger.RecordRepository,
	chartRepo ledger.ChartOfAccountRepository,
	revenueTypeRepo ledger.RevenueTypeRepository,
	reportCache cache.ReportCache,
	cfg config.ReportConfig,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		recordRepo:      recordRepo,
		chartRepo:       chartRepo,
		revenueTypeRepo: revenueTypeRepo,
		reportCache:     reportCache,
		cfg:             cfg,
		logger:          logger,
	}
}

// ReportQuery represents a report request at the API boundary
type ReportQuery struct {
	Mode               string `json:"mode" form:"mode" binding:"required"`
	Year               int    `json:"year" form:"year" binding:"required"`
	Months             []int  `json:"months" form:"months"`
	CompareYear        int    `json:"compare_year" form:"compare_year"`
	CompareMonths      []int  `json:"compare_months" form:"compare_months"`
	IncludeProjections bool   `json:"include_projections" form:"include_projections"`
	HideEmptyRows      bool   `json:"hide_empty_rows" form:"hide_empty_rows"`
}

// DrillDownQuery identifies one report cell at the API boundary
type DrillDownQuery struct {
	ReportQuery
	NodeType string `json:"node_type" form:"node_type" binding:"required"`
	Code     string `json:"code" form:"code" binding:"required"`
	Key      string `json:"key" form:"key" binding:"required"`
}

// GenerateReport builds (or serves from cache) the hierarchical report for
// one tenant
func (s *ReportService) GenerateReport(ctx context.Context, tenantID uuid.UUID, query ReportQuery) (*reporting.Report, error) {
	request, err := s.toDomainRequest(query)
	if err != nil {
		return nil, err
	}

	key := cache.ReportKey(tenantID.String(), fingerprint(query))
	if s.reportCache != nil {
		if payload, ok, cacheErr := s.reportCache.Get(ctx, key); cacheErr == nil && ok {
			var cached reporting.Report
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
			// A stale or corrupt entry falls through to a rebuild
		} else if cacheErr != nil {
			s.logger.Warn("report cache read failed", zap.Error(cacheErr))
		}
	}

	records, accounts, revenueTypes, err := s.loadSnapshot(ctx, tenantID, request)
	if err != nil {
		return nil, err
	}

	report, err := reporting.BuildReport(records, accounts, revenueTypes, request)
	if err != nil {
		return nil, err
	}

	if s.reportCache != nil {
		if payload, err := json.Marshal(report); err == nil {
			if cacheErr := s.reportCache.Set(ctx, key, payload, s.cfg.CacheTTL); cacheErr != nil {
				s.logger.Warn("report cache write failed", zap.Error(cacheErr))
			}
		}
	}
	return report, nil
}

// DrillDown returns the records behind one report cell
func (s *ReportService) DrillDown(ctx context.Context, tenantID uuid.UUID, query DrillDownQuery) ([]ledger.Record, error) {
	request, err := s.toDomainRequest(query.ReportQuery)
	if err != nil {
		return nil, err
	}
	records, accounts, _, err := s.loadSnapshot(ctx, tenantID, request)
	if err != nil {
		return nil, err
	}
	return reporting.DrillDown(records, accounts, request, reporting.DrillDownQuery{
		NodeType: reporting.NodeType(query.NodeType),
		Code:     query.Code,
		Key:      reporting.PeriodKey(query.Key),
	})
}

// Invalidate drops every cached report for one tenant. Called after any
// ledger write.
func (s *ReportService) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.InvalidateTenant(ctx, tenantID.String()); err != nil {
		s.logger.Warn("report cache invalidation failed",
			zap.String("tenant_id", tenantID.String()), zap.Error(err))
	}
}

func (s *ReportService) toDomainRequest(query ReportQuery) (reporting.ReportRequest, error) {
	months := query.Months
	if len(months) == 0 {
		months = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	}
	primary, err := reporting.NewPeriod(query.Year, months...)
	if err != nil {
		return reporting.ReportRequest{}, err
	}

	request := reporting.ReportRequest{
		Mode:                     reporting.ReportMode(query.Mode),
		Primary:                  primary,
		IncludeProjections:       query.IncludeProjections,
		HideEmptyRows:            query.HideEmptyRows,
		IncomeClassificationCode: s.cfg.IncomeClassificationCode,
	}

	if query.CompareYear != 0 {
		compareMonths := query.CompareMonths
		if len(compareMonths) == 0 {
			compareMonths = months
		}
		compare, err := reporting.NewPeriod(query.CompareYear, compareMonths...)
		if err != nil {
			return reporting.ReportRequest{}, err
		}
		request.Compare = &compare
	}

	return request, request.Validate()
}

// loadSnapshot fetches the records and reference data a report needs. The
// date window covers the calendar years of both periods, and the fetch
// matches any of a record's three dates so one query serves every view.
func (s *ReportService) loadSnapshot(
	ctx context.Context,
	tenantID uuid.UUID,
	request reporting.ReportRequest,
) ([]ledger.Record, []ledger.ChartOfAccount, []ledger.RevenueType, error) {
	from, to := reportWindow(request)

	records, err := s.recordRepo.FindForReporting(ctx, tenantID, from, to)
	if err != nil {
		return nil, nil, nil, err
	}
	accounts, err := s.chartRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, nil, err
	}
	revenueTypes, err := s.revenueTypeRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, nil, err
	}
	return records, accounts, revenueTypes, nil
}

func reportWindow(request reporting.ReportRequest) (time.Time, time.Time) {
	years := []int{request.Primary.Year}
	if request.Compare != nil {
		years = append(years, request.Compare.Year)
	}
	minYear, maxYear := years[0], years[0]
	for _, year := range years[1:] {
		if year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}
	from := time.Date(minYear, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(maxYear+1, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	return from, to
}

func fingerprint(query ReportQuery) string {
	payload, _ := json.Marshal(query)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
