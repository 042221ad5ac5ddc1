package handler

import (
	ledgerapp "github.com/fluxo/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// maxImportSize caps uploaded statement files at 10 MB
const maxImportSize = 10 << 20

// ImportHandler handles statement import endpoints
type ImportHandler struct {
	BaseHandler
	importService *ledgerapp.ImportService
	invalidator   ReportInvalidator
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *ledgerapp.ImportService, invalidator ReportInvalidator) *ImportHandler {
	return &ImportHandler{importService: importService, invalidator: invalidator}
}

// RegisterRoutes registers import routes
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ledger/import", h.ImportStatement)
}

// ImportStatement godoc
// @Summary      Import a statement export
// @Description  Parse an uploaded CSV statement and create one record per row
// @Tags         ledger
// @Accept       multipart/form-data
// @Router       /ledger/import [post]
func (h *ImportHandler) ImportStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Statement file is required")
		return
	}
	if fileHeader.Size > maxImportSize {
		h.BadRequest(c, "Statement file exceeds the 10 MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to open the statement file")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportStatement(c.Request.Context(), tenantID, file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if result.ImportedRows > 0 {
		h.invalidator.Invalidate(c.Request.Context(), tenantID)
	}
	h.Success(c, result)
}
