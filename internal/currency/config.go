package currency

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config describes a rate table. It is a plain value so tests and callers can
// substitute alternate tables.
type Config struct {
	Base        string
	ZeroDecimal []string
	Currencies  []Currency
}

// DefaultConfig returns the built-in table: USD base, rates as of February 2026.
func DefaultConfig() Config {
	return Config{
		Base:        "USD",
		ZeroDecimal: []string{"JPY", "KRW", "VND", "KHR"},
		Currencies: []Currency{
			{Code: "USD", Symbol: "$", Name: "US Dollar", RateToBase: decimal.RequireFromString("1.0")},
			{Code: "EUR", Symbol: "€", Name: "Euro", RateToBase: decimal.RequireFromString("0.92")},
			{Code: "GBP", Symbol: "£", Name: "British Pound", RateToBase: decimal.RequireFromString("0.79")},
			{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", RateToBase: decimal.RequireFromString("149.50")},
			{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan", RateToBase: decimal.RequireFromString("7.24")},
			{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", RateToBase: decimal.RequireFromString("1.53")},
			{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", RateToBase: decimal.RequireFromString("1.36")},
			{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc", RateToBase: decimal.RequireFromString("0.88")},
			{Code: "KHR", Symbol: "៛", Name: "Cambodian Riel", RateToBase: decimal.RequireFromString("4050.0")},
			{Code: "THB", Symbol: "฿", Name: "Thai Baht", RateToBase: decimal.RequireFromString("35.80")},
			{Code: "VND", Symbol: "₫", Name: "Vietnamese Dong", RateToBase: decimal.RequireFromString("24500.0")},
			{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", RateToBase: decimal.RequireFromString("1.34")},
			{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit", RateToBase: decimal.RequireFromString("4.72")},
			{Code: "INR", Symbol: "₹", Name: "Indian Rupee", RateToBase: decimal.RequireFromString("83.12")},
			{Code: "KRW", Symbol: "₩", Name: "South Korean Won", RateToBase: decimal.RequireFromString("1340.0")},
			{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar", RateToBase: decimal.RequireFromString("7.83")},
			{Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar", RateToBase: decimal.RequireFromString("1.65")},
			{Code: "SEK", Symbol: "kr", Name: "Swedish Krona", RateToBase: decimal.RequireFromString("10.45")},
			{Code: "NOK", Symbol: "kr", Name: "Norwegian Krone", RateToBase: decimal.RequireFromString("10.72")},
			{Code: "DKK", Symbol: "kr", Name: "Danish Krone", RateToBase: decimal.RequireFromString("6.87")},
		},
	}
}

type fileEntry struct {
	Code   string `yaml:"code" validate:"required,len=3,uppercase"`
	Symbol string `yaml:"symbol" validate:"required"`
	Name   string `yaml:"name" validate:"required"`
	Rate   string `yaml:"rate" validate:"required,numeric"`
}

type fileConfig struct {
	Base        string      `yaml:"base" validate:"omitempty,len=3,uppercase"`
	ZeroDecimal []string    `yaml:"zeroDecimal,omitempty" validate:"dive,len=3,uppercase"`
	Currencies  []fileEntry `yaml:"currencies" validate:"required,min=1,unique=Code,dive"`
}

var validate = validator.New()

// LoadConfig reads a YAML rate table:
//
//	base: USD
//	zeroDecimal: [JPY]
//	currencies:
//	  - {code: USD, symbol: $, name: US Dollar, rate: "1"}
//	  - {code: EUR, symbol: €, name: Euro, rate: "0.92"}
func LoadConfig(path string) (Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("can't read currency table '%s': %w", path, err)
	}
	return ParseConfig(buf)
}

// ParseConfig decodes and validates a YAML rate table.
func ParseConfig(buf []byte) (Config, error) {
	var fc fileConfig
	decoder := yaml.NewDecoder(strings.NewReader(string(buf)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("can't decode currency table: %w", err)
	}
	if err := validate.Struct(fc); err != nil {
		return Config{}, fmt.Errorf("invalid currency table: %w", err)
	}

	cfg := Config{Base: fc.Base, ZeroDecimal: fc.ZeroDecimal}
	for _, e := range fc.Currencies {
		rate, err := decimal.NewFromString(e.Rate)
		if err != nil {
			return Config{}, fmt.Errorf("currency %s: invalid rate %q: %w", e.Code, e.Rate, err)
		}
		if !rate.IsPositive() {
			return Config{}, fmt.Errorf("currency %s: rate must be greater than zero", e.Code)
		}
		cfg.Currencies = append(cfg.Currencies, Currency{
			Code:       e.Code,
			Symbol:     e.Symbol,
			Name:       e.Name,
			RateToBase: rate,
		})
	}
	if cfg.Base != "" {
		found := false
		for _, c := range cfg.Currencies {
			if c.Code == cfg.Base {
				found = true
				break
			}
		}
		if !found {
			return Config{}, fmt.Errorf("base currency %s is not in the table", cfg.Base)
		}
	}
	return cfg, nil
}
