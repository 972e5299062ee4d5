package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Failures are logged and swallowed so the
// audited operation still succeeds.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// ListAuditLogs returns audit entries newest first, optionally for one resource type.
func (s *auditService) ListAuditLogs(resourceType string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()

	base := s.db.Model(&models.AuditLog{})
	if resourceType != "" {
		base = base.Where("resource_type = ?", resourceType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.AuditLog
	if err := base.Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
