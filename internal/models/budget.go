package models

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// Budget caps spending of one category per period. Currency is nullable for
// rows created before budgets carried a currency.
type Budget struct {
	Base
	Category string          `gorm:"not null;index" json:"category"`
	Amount   decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Period   domain.Period   `gorm:"type:varchar(16);not null" json:"period"`
	Currency *string         `gorm:"type:varchar(3)" json:"currency"`
}
