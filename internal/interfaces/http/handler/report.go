package handler

import (
	reportingapp "github.com/fluxo/backend/internal/application/reporting"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report generation, drill-down and insight endpoints
type ReportHandler struct {
	BaseHandler
	reportService  *reportingapp.ReportService
	insightService *reportingapp.InsightService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportingapp.ReportService, insightService *reportingapp.InsightService) *ReportHandler {
	return &ReportHandler{reportService: reportService, insightService: insightService}
}

// RegisterRoutes registers report routes. Report queries are POSTed because
// the month selections do not fit comfortably in a query string.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.POST("/generate", h.Generate)
		reports.POST("/drill-down", h.DrillDown)
		reports.POST("/insight", h.Insight)
	}
}

// Generate godoc
// @Summary      Generate a hierarchical period report
// @Description  Build an accrual (DRE) or cash-flow matrix for the requested periods
// @Tags         reports
// @Router       /reports/generate [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query reportingapp.ReportQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	report, err := h.reportService.GenerateReport(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// DrillDown godoc
// @Summary      List the records behind one report cell
// @Tags         reports
// @Router       /reports/drill-down [post]
func (h *ReportHandler) DrillDown(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query reportingapp.DrillDownQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	records, err := h.reportService.DrillDown(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, records)
}

// Insight godoc
// @Summary      Generate a narrative summary of a report
// @Tags         reports
// @Router       /reports/insight [post]
func (h *ReportHandler) Insight(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query reportingapp.ReportQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	insight, err := h.insightService.GenerateInsight(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, insight)
}
