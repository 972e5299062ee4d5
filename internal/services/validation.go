package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/currency"
	apperrors "fintrack/internal/errors"
)

// MaxAmount is the largest amount a transaction or budget may carry.
var MaxAmount = decimal.NewFromInt(999_999_999)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if amount.GreaterThan(MaxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not exceed 999,999,999")
	}
	return nil
}

// resolveCurrency normalizes code and checks it against the table. An empty
// code means the base currency.
func resolveCurrency(table *currency.Table, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return table.Base().Code, nil
	}
	if !table.Known(code) {
		return "", apperrors.WithMessage(apperrors.ErrUnknownCurrency, "currency "+code+" is not supported")
	}
	return code, nil
}
