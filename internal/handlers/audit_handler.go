package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditLogs handles listing audit entries, newest first.
// @Summary     List audit logs
// @Tags        audit
// @Produce     json
// @Security    BearerAuth
// @Param       resource_type query string false "category, transaction, budget or setting"
// @Param       page          query int    false "Page number (default 1)"
// @Param       page_size     query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AuditLog] "Paginated audit logs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.auditService.ListAuditLogs(c.Query("resource_type"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
