package models

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// Transaction is a stored income or expense entry.
//
// Currency is nullable: rows written before multi-currency support have no
// currency and are read as the base currency.
type Transaction struct {
	Base
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `json:"description"`
	Category    string          `gorm:"not null;index" json:"category"`
	Kind        domain.Kind     `gorm:"type:varchar(16);not null" json:"kind"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Currency    *string         `gorm:"type:varchar(3)" json:"currency"`
}
