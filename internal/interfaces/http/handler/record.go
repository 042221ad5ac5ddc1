package handler

import (
	"context"

	ledgerapp "github.com/fluxo/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportInvalidator drops a tenant's cached reports after a ledger write
type ReportInvalidator interface {
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// RecordHandler handles ledger record endpoints
type RecordHandler struct {
	BaseHandler
	recordService *ledgerapp.RecordService
	invalidator   ReportInvalidator
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(recordService *ledgerapp.RecordService, invalidator ReportInvalidator) *RecordHandler {
	return &RecordHandler{recordService: recordService, invalidator: invalidator}
}

// RegisterRoutes registers record routes
func (h *RecordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	records := rg.Group("/ledger/records")
	{
		records.POST("", h.Create)
		records.GET("", h.List)
		records.GET("/:id", h.GetByID)
		records.PUT("/:id", h.Update)
		records.DELETE("/:id", h.Delete)
		records.POST("/:id/pay", h.Pay)
		records.POST("/:id/validate", h.Validate)
	}
	rg.GET("/ledger/series/:id", h.ListSeries)
}

// Create godoc
// @Summary      Create ledger records
// @Description  Create an entry, optionally expanded into an installment series
// @Tags         ledger
// @Router       /ledger/records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ledgerapp.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	records, err := h.recordService.CreateRecords(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.invalidator.Invalidate(c.Request.Context(), tenantID)
	h.Created(c, records)
}

// List godoc
// @Summary      List ledger records
// @Tags         ledger
// @Router       /ledger/records [get]
func (h *RecordHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter ledgerapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.recordService.ListRecords(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get a ledger record
// @Tags         ledger
// @Router       /ledger/records/{id} [get]
func (h *RecordHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	record, err := h.recordService.GetRecordByID(c.Request.Context(), tenantID, recordID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// Update godoc
// @Summary      Update a ledger record
// @Tags         ledger
// @Router       /ledger/records/{id} [put]
func (h *RecordHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	var req ledgerapp.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	record, err := h.recordService.UpdateRecord(c.Request.Context(), tenantID, recordID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.invalidator.Invalidate(c.Request.Context(), tenantID)
	h.Success(c, record)
}

// Pay godoc
// @Summary      Settle a ledger record
// @Tags         ledger
// @Router       /ledger/records/{id}/pay [post]
func (h *RecordHandler) Pay(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	var req ledgerapp.PayRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	record, err := h.recordService.PayRecord(c.Request.Context(), tenantID, recordID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.invalidator.Invalidate(c.Request.Context(), tenantID)
	h.Success(c, record)
}

// Validate godoc
// @Summary      Confirm a flagged record
// @Description  Clear the needs-validation flag so the record re-enters reports
// @Tags         ledger
// @Router       /ledger/records/{id}/validate [post]
func (h *RecordHandler) Validate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	record, err := h.recordService.ValidateRecord(c.Request.Context(), tenantID, recordID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.invalidator.Invalidate(c.Request.Context(), tenantID)
	h.Success(c, record)
}

// Delete godoc
// @Summary      Delete a ledger record
// @Description  Delete one record, or the whole installment series with ?series=true
// @Tags         ledger
// @Router       /ledger/records/{id} [delete]
func (h *RecordHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	wholeSeries := c.Query("series") == "true"
	if err := h.recordService.DeleteRecord(c.Request.Context(), tenantID, recordID, wholeSeries); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.invalidator.Invalidate(c.Request.Context(), tenantID)
	h.NoContent(c)
}

// ListSeries godoc
// @Summary      List an installment series
// @Tags         ledger
// @Router       /ledger/series/{id} [get]
func (h *RecordHandler) ListSeries(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid series ID format")
		return
	}

	records, err := h.recordService.ListSeries(c.Request.Context(), tenantID, seriesID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, records)
}
