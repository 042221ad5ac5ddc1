package handler

import (
	ledgerapp "github.com/fluxo/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RevenueTypeHandler handles revenue type endpoints
type RevenueTypeHandler struct {
	BaseHandler
	revenueTypeService *ledgerapp.RevenueTypeService
}

// NewRevenueTypeHandler creates a new RevenueTypeHandler
func NewRevenueTypeHandler(revenueTypeService *ledgerapp.RevenueTypeService) *RevenueTypeHandler {
	return &RevenueTypeHandler{revenueTypeService: revenueTypeService}
}

// RegisterRoutes registers revenue type routes
func (h *RevenueTypeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	types := rg.Group("/ledger/revenue-types")
	{
		types.POST("", h.Create)
		types.GET("", h.List)
		types.PUT("/:id", h.Rename)
		types.DELETE("/:id", h.Delete)
	}
}

func (h *RevenueTypeHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ledgerapp.RevenueTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	revenueType, err := h.revenueTypeService.CreateRevenueType(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, revenueType)
}

func (h *RevenueTypeHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	types, err := h.revenueTypeService.ListRevenueTypes(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, types)
}

func (h *RevenueTypeHandler) Rename(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	typeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid revenue type ID format")
		return
	}

	var req ledgerapp.RevenueTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	revenueType, err := h.revenueTypeService.RenameRevenueType(c.Request.Context(), tenantID, typeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, revenueType)
}

func (h *RevenueTypeHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	typeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid revenue type ID format")
		return
	}

	if err := h.revenueTypeService.DeleteRevenueType(c.Request.Context(), tenantID, typeID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
