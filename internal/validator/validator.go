// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fintrack/internal/domain"
	"fintrack/internal/ledger"
)

var (
	hexColorRegex     = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	currencyCodeRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// Register registers all custom validators with the Gin binding engine.
//
// currency_code only checks the shape of a code. Whether the code is in the
// currency table is decided by the services, which answer UNKNOWN_CURRENCY.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("kind", validateKind)
		_ = v.RegisterValidation("budget_period", validateBudgetPeriod)
		_ = v.RegisterValidation("sort_key", validateSortKey)
	}
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodeRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateKind(fl validator.FieldLevel) bool {
	_, ok := domain.ParseKind(fl.Field().String())
	return ok
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	_, ok := domain.ParsePeriod(fl.Field().String())
	return ok
}

func validateSortKey(fl validator.FieldLevel) bool {
	key := ledger.SortKey(strings.ToLower(fl.Field().String()))
	for _, k := range ledger.SortKeys {
		if k == key {
			return true
		}
	}
	return false
}
