// Package domain holds the plain value types the aggregation engine works on.
// They carry no persistence concerns; services map storage rows into them.
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the direction of a transaction or the type of a category.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind maps "Income", "income", "EXPENSE" etc. to a Kind.
// The second return value is false for anything else.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindIncome):
		return KindIncome, true
	case string(KindExpense):
		return KindExpense, true
	}
	return "", false
}

// Valid reports whether k is income or expense.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Period is the recurrence of a budget.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod maps a case-insensitive period name to a Period.
func ParsePeriod(s string) (Period, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PeriodMonthly):
		return PeriodMonthly, true
	case string(PeriodWeekly):
		return PeriodWeekly, true
	case string(PeriodYearly):
		return PeriodYearly, true
	}
	return "", false
}

// Transaction is a single income or expense entry. Amount is always positive;
// the direction comes from Kind.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

// Category groups transactions. Transactions and budgets reference it by name.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Budget caps expense spending of one category per period.
type Budget struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   Period          `json:"period"`
	Currency string          `json:"currency"`
}
