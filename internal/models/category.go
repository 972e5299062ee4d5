package models

import "fintrack/internal/domain"

// Category is a user-managed grouping. Transactions and budgets reference it
// by name; deleting a category leaves them as they are.
type Category struct {
	Base
	Name  string      `gorm:"not null;index" json:"name"`
	Kind  domain.Kind `gorm:"type:varchar(16);not null" json:"kind"`
	Icon  string      `json:"icon"`
	Color string      `gorm:"type:varchar(7)" json:"color"`
}
