package handler

import (
	ledgerapp "github.com/fluxo/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChartHandler handles chart of accounts endpoints
type ChartHandler struct {
	BaseHandler
	chartService *ledgerapp.ChartService
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(chartService *ledgerapp.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

// RegisterRoutes registers chart of accounts routes
func (h *ChartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	chart := rg.Group("/ledger/chart-of-accounts")
	{
		chart.POST("", h.Create)
		chart.GET("", h.List)
		chart.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary      Add a rubric to the chart of accounts
// @Tags         ledger
// @Router       /ledger/chart-of-accounts [post]
func (h *ChartHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ledgerapp.CreateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.chartService.CreateAccount(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, account)
}

// List godoc
// @Summary      List the chart of accounts in natural code order
// @Tags         ledger
// @Router       /ledger/chart-of-accounts [get]
func (h *ChartHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	accounts, err := h.chartService.ListAccounts(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, accounts)
}

// Delete godoc
// @Summary      Delete an unused rubric
// @Tags         ledger
// @Router       /ledger/chart-of-accounts/{id} [delete]
func (h *ChartHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	if err := h.chartService.DeleteAccount(c.Request.Context(), tenantID, accountID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
