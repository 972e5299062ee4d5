package integration

import (
	"net/http"
	"testing"
)

func TestCurrencyFlow_ListConvertFormat(t *testing.T) {
	app := setupApp(t)

	result := app.mustRequest(t, http.MethodGet, "/api/v1/currencies", "", http.StatusOK)
	if result["base"] != "USD" {
		t.Errorf("expected USD base, got %v", result["base"])
	}
	if currencies := result["currencies"].([]interface{}); len(currencies) != 20 {
		t.Errorf("expected 20 currencies, got %d", len(currencies))
	}

	result = app.mustRequest(t, http.MethodGet, "/api/v1/currencies/convert?amount=100&from=USD&to=JPY", "", http.StatusOK)
	if result["result"] != "14950" || result["formatted"] != "¥14,950" {
		t.Errorf("expected ¥14,950, got %v %v", result["result"], result["formatted"])
	}

	result = app.mustRequest(t, http.MethodGet, "/api/v1/currencies/format?amount=1234.5&currency=EUR", "", http.StatusOK)
	if result["formatted"] != "€1,234.50" {
		t.Errorf("expected €1,234.50, got %v", result["formatted"])
	}

	rec := app.request(http.MethodGet, "/api/v1/currencies/convert?amount=1&from=USD&to=QQQ", "")
	if code := errorCode(t, rec); code != "UNKNOWN_CURRENCY" {
		t.Errorf("expected UNKNOWN_CURRENCY, got %s", code)
	}
}

func TestSettingsFlow_DisplayCurrencyIsAudited(t *testing.T) {
	app := setupApp(t)

	result := app.mustRequest(t, http.MethodGet, "/api/v1/settings", "", http.StatusOK)
	if result["display_currency"] != "USD" || result["base_currency"] != "USD" {
		t.Errorf("expected USD defaults, got %v", result)
	}

	rec := app.request(http.MethodPut, "/api/v1/settings", `{"display_currency":"XYZ"}`)
	if code := errorCode(t, rec); code != "UNKNOWN_CURRENCY" {
		t.Errorf("expected UNKNOWN_CURRENCY, got %s", code)
	}

	app.mustRequest(t, http.MethodPut, "/api/v1/settings", `{"display_currency":"GBP"}`, http.StatusOK)
	result = app.mustRequest(t, http.MethodGet, "/api/v1/settings", "", http.StatusOK)
	if result["display_currency"] != "GBP" {
		t.Errorf("expected GBP after update, got %v", result["display_currency"])
	}

	result = app.mustRequest(t, http.MethodGet, "/api/v1/audit-logs?resource_type=setting", "", http.StatusOK)
	if result["total_items"] != float64(1) {
		t.Fatalf("expected one settings audit entry, got %v", result["total_items"])
	}
	entry := result["data"].([]interface{})[0].(map[string]interface{})
	if entry["action"] != "UPDATE_SETTINGS" {
		t.Errorf("expected UPDATE_SETTINGS, got %v", entry["action"])
	}
}
