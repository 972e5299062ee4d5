package integration

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
)

// decimalField reads a decimal serialized as a JSON string.
func decimalField(t *testing.T, m map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	s, ok := m[key].(string)
	if !ok {
		t.Fatalf("expected %s to be a decimal string, got %v", key, m[key])
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %s=%q: %v", key, s, err)
	}
	return d
}

func statusesByCategory(t *testing.T, result map[string]interface{}) map[string]map[string]interface{} {
	t.Helper()
	out := make(map[string]map[string]interface{})
	for _, raw := range result["budgets"].([]interface{}) {
		s := raw.(map[string]interface{})
		out[s["category"].(string)] = s
	}
	return out
}

func TestBudgetFlow_StatusesAcrossPeriodsAndCurrencies(t *testing.T) {
	app := setupApp(t)

	app.createCategory(t, "Groceries", "expense")
	app.createCategory(t, "Dining", "expense")
	app.createCategory(t, "Transport", "expense")

	app.createBudget(t, "Groceries", "200", "monthly", "USD")
	app.createBudget(t, "Dining", "100", "monthly", "EUR")
	app.createBudget(t, "Transport", "50", "weekly", "USD")

	// March: 170 of 200 USD is a warning.
	app.createTransaction(t, "2026-03-02", "Groceries", "expense", "150", "USD")
	app.createTransaction(t, "2026-03-10", "Groceries", "expense", "20", "USD")
	// February spending is outside the monthly window.
	app.createTransaction(t, "2026-02-20", "Groceries", "expense", "500", "USD")
	// 50 USD is 46 EUR against a 100 EUR budget.
	app.createTransaction(t, "2026-03-05", "Dining", "expense", "50", "USD")
	// The ISO week of 2026-03-15 starts on Monday 2026-03-09.
	app.createTransaction(t, "2026-03-12", "Transport", "expense", "60", "USD")
	app.createTransaction(t, "2026-03-06", "Transport", "expense", "40", "USD")

	result := app.mustRequest(t, http.MethodGet, "/api/v1/budgets/status", "", http.StatusOK)
	statuses := statusesByCategory(t, result)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	groceries := statuses["Groceries"]
	if groceries["status"] != "warning" {
		t.Errorf("expected groceries warning, got %v", groceries["status"])
	}
	if !decimalField(t, groceries, "spent").Equal(decimal.NewFromInt(170)) {
		t.Errorf("expected groceries spent 170, got %v", groceries["spent"])
	}
	if !decimalField(t, groceries, "progress_percentage").Equal(decimal.NewFromInt(85)) {
		t.Errorf("expected 85%% progress, got %v", groceries["progress_percentage"])
	}

	dining := statuses["Dining"]
	if dining["status"] != "on_track" || dining["budget_currency"] != "EUR" {
		t.Errorf("expected dining on_track in EUR, got %v %v", dining["status"], dining["budget_currency"])
	}
	if !decimalField(t, dining, "spent").Equal(decimal.NewFromInt(46)) {
		t.Errorf("expected dining spent 46 EUR, got %v", dining["spent"])
	}

	transport := statuses["Transport"]
	if transport["status"] != "over_budget" || transport["status_label"] != "Over Budget!" {
		t.Errorf("expected transport over budget, got %v %v", transport["status"], transport["status_label"])
	}
	if !decimalField(t, transport, "remaining").Equal(decimal.NewFromInt(-10)) {
		t.Errorf("expected remaining -10, got %v", transport["remaining"])
	}

	counts := result["counts"].(map[string]interface{})
	for _, state := range []string{"on_track", "warning", "over_budget"} {
		if counts[state] != float64(1) {
			t.Errorf("expected one %s budget, got %v", state, counts[state])
		}
	}
}

func TestBudgetFlow_CRUDAndDuplicates(t *testing.T) {
	app := setupApp(t)
	app.createCategory(t, "Groceries", "expense")

	id := app.createBudget(t, "Groceries", "200", "monthly", "")

	rec := app.request(http.MethodPost, "/api/v1/budgets", `{"category":"groceries","amount":"50"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate budget, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "DUPLICATE_BUDGET" {
		t.Errorf("expected DUPLICATE_BUDGET, got %s", code)
	}

	rec = app.request(http.MethodPost, "/api/v1/budgets", `{"category":"Rent","amount":"-5"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative amount, got %d", rec.Code)
	}
	rec = app.request(http.MethodPost, "/api/v1/budgets", `{"category":"Rent","amount":"5","currency":"XYZ"}`)
	if code := errorCode(t, rec); code != "UNKNOWN_CURRENCY" {
		t.Errorf("expected UNKNOWN_CURRENCY, got %s", code)
	}

	result := app.mustRequest(t, http.MethodGet, "/api/v1/budgets/"+id, "", http.StatusOK)
	b := result["budget"].(map[string]interface{})
	if b["currency"] != "USD" || b["period"] != "monthly" {
		t.Errorf("expected USD monthly defaults, got %v %v", b["currency"], b["period"])
	}

	result = app.mustRequest(t, http.MethodPut, "/api/v1/budgets/"+id, `{"amount":"250","period":"yearly"}`, http.StatusOK)
	b = result["budget"].(map[string]interface{})
	if b["period"] != "yearly" {
		t.Errorf("expected yearly period after update, got %v", b["period"])
	}

	list := app.mustRequest(t, http.MethodGet, "/api/v1/budgets", "", http.StatusOK)
	if list["total_items"] != float64(1) {
		t.Errorf("expected 1 budget, got %v", list["total_items"])
	}

	app.mustRequest(t, http.MethodDelete, "/api/v1/budgets/"+id, "", http.StatusOK)
	rec = app.request(http.MethodGet, "/api/v1/budgets/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}

	// The category is free for a new budget once the old one is deleted.
	app.createBudget(t, "Groceries", "300", "monthly", "GBP")
}
