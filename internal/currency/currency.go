// Package currency holds the static rate table and the conversion and
// formatting rules built on it. All cross-currency arithmetic routes through
// the base currency: A -> base -> B. Direct cross rates are never used.
package currency

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"fintrack/internal/logger"
)

// Currency is one entry of the rate table. RateToBase means
// "RateToBase units of this currency equal 1 unit of the base currency".
type Currency struct {
	Code       string          `json:"code"`
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	RateToBase decimal.Decimal `json:"rate_to_base"`
}

// DisplayName renders the currency the way pickers show it, e.g. "€ EUR - Euro".
func (c Currency) DisplayName() string {
	return fmt.Sprintf("%s %s - %s", c.Symbol, c.Code, c.Name)
}

// Table is an immutable registry of currencies. Build it once at startup with
// NewTable and pass it to whatever needs conversions.
type Table struct {
	currencies  []Currency
	byCode      map[string]int
	base        Currency
	zeroDecimal map[string]bool
}

// NewTable validates cfg and builds a Table. The base currency is cfg.Base when
// it names a configured currency, otherwise the first entry.
func NewTable(cfg Config) (*Table, error) {
	if len(cfg.Currencies) == 0 {
		return nil, fmt.Errorf("currency table is empty")
	}

	t := &Table{
		currencies:  make([]Currency, 0, len(cfg.Currencies)),
		byCode:      make(map[string]int, len(cfg.Currencies)),
		zeroDecimal: make(map[string]bool, len(cfg.ZeroDecimal)),
	}
	for _, c := range cfg.Currencies {
		c.Code = normalize(c.Code)
		if c.Code == "" {
			return nil, fmt.Errorf("currency code is required")
		}
		if !c.RateToBase.IsPositive() {
			return nil, fmt.Errorf("currency %s: rate must be greater than zero, got %s", c.Code, c.RateToBase)
		}
		if _, dup := t.byCode[c.Code]; dup {
			return nil, fmt.Errorf("currency %s is listed twice", c.Code)
		}
		t.byCode[c.Code] = len(t.currencies)
		t.currencies = append(t.currencies, c)
	}
	for _, code := range cfg.ZeroDecimal {
		t.zeroDecimal[normalize(code)] = true
	}

	t.base = t.currencies[0]
	if i, ok := t.byCode[normalize(cfg.Base)]; ok {
		t.base = t.currencies[i]
	}
	return t, nil
}

// MustNewTable is NewTable for configurations known to be valid, such as DefaultConfig.
func MustNewTable(cfg Config) *Table {
	t, err := NewTable(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// AllCurrencies returns the configured currencies in configuration order.
func (t *Table) AllCurrencies() []Currency {
	out := make([]Currency, len(t.currencies))
	copy(out, t.currencies)
	return out
}

// Base returns the base currency.
func (t *Table) Base() Currency {
	return t.base
}

// Known reports whether code is in the table.
func (t *Table) Known(code string) bool {
	_, ok := t.byCode[normalize(code)]
	return ok
}

// Lookup returns the currency for code. Unknown or empty codes resolve to the
// base currency.
func (t *Table) Lookup(code string) Currency {
	if i, ok := t.byCode[normalize(code)]; ok {
		return t.currencies[i]
	}
	if code != "" {
		logger.Get().Debugw("unknown currency code, using base currency",
			"code", code,
			"base", t.base.Code,
		)
	}
	return t.base
}

// ToBase converts amount expressed in from into the base currency.
func (t *Table) ToBase(amount decimal.Decimal, from string) decimal.Decimal {
	rate := t.Lookup(from).RateToBase
	if rate.IsZero() {
		return amount
	}
	return amount.Div(rate)
}

// FromBase converts an amount in the base currency into to.
func (t *Table) FromBase(amountInBase decimal.Decimal, to string) decimal.Decimal {
	return amountInBase.Mul(t.Lookup(to).RateToBase)
}

// Convert converts amount from one currency to another through the base
// currency. Identical codes return amount untouched, even when unknown.
func (t *Table) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}
	return t.FromBase(t.ToBase(amount, from), to)
}

// Decimals returns how many fractional digits code is displayed with.
func (t *Table) Decimals(code string) int32 {
	if t.zeroDecimal[t.Lookup(code).Code] {
		return 0
	}
	return 2
}

// Format converts an amount in the base currency into displayCode and renders
// it as symbol followed by a grouped number, e.g. "€1,234.50" or "¥16,250".
func (t *Table) Format(amountInBase decimal.Decimal, displayCode string) string {
	c := t.Lookup(displayCode)
	return t.FormatIn(t.FromBase(amountInBase, c.Code), c.Code)
}

// FormatIn renders an amount that is already expressed in code.
func (t *Table) FormatIn(amount decimal.Decimal, code string) string {
	c := t.Lookup(code)
	return c.Symbol + groupDigits(amount, t.Decimals(c.Code))
}

// groupDigits rounds half away from zero to places and inserts thousands separators.
func groupDigits(amount decimal.Decimal, places int32) string {
	s := amount.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	if n, ok := new(big.Int).SetString(intPart, 10); ok {
		intPart = humanize.BigComma(n)
	}
	if hasFrac {
		return sign + intPart + "." + frac
	}
	return sign + intPart
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
