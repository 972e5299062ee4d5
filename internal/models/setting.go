package models

import "time"

// Setting keys.
const (
	SettingDisplayCurrency = "display_currency"
)

// Setting is a single user preference stored as a key/value pair.
type Setting struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All returns every model managed by the application, in dependency order.
func All() []any {
	return []any{
		&Category{},
		&Transaction{},
		&Budget{},
		&Setting{},
		&AuditLog{},
	}
}
