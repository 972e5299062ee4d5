package models

// AuditLog records every change made through the API.
type AuditLog struct {
	Base
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null;index" json:"resource_type"`
	ResourceID   string `gorm:"index" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
