package services

import (
	"testing"

	"fintrack/internal/currency"
	"fintrack/internal/testutil"
)

func TestDisplayCurrency(t *testing.T) {
	table := currency.MustNewTable(currency.DefaultConfig())

	t.Run("default_until_set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, table, "EUR")

		code, err := svc.GetDisplayCurrency()
		testutil.AssertNoError(t, err)
		if code != "EUR" {
			t.Errorf("expected EUR, got %s", code)
		}
	})

	t.Run("unknown_default_falls_back_to_base", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, table, "XXX")

		code, err := svc.GetDisplayCurrency()
		testutil.AssertNoError(t, err)
		if code != "USD" {
			t.Errorf("expected USD, got %s", code)
		}
	})

	t.Run("set_and_overwrite", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, table, "USD")

		code, err := svc.SetDisplayCurrency("jpy")
		testutil.AssertNoError(t, err)
		if code != "JPY" {
			t.Errorf("expected JPY, got %s", code)
		}

		_, err = svc.SetDisplayCurrency("GBP")
		testutil.AssertNoError(t, err)

		code, err = svc.GetDisplayCurrency()
		testutil.AssertNoError(t, err)
		if code != "GBP" {
			t.Errorf("expected GBP, got %s", code)
		}
	})

	t.Run("unknown_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, table, "USD")

		_, err := svc.SetDisplayCurrency("BTC")
		testutil.AssertAppError(t, err, "UNKNOWN_CURRENCY")
	})
}
