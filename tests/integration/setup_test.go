package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/clock"
	"fintrack/internal/currency"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/router"
	"fintrack/internal/validator"
)

// now is the instant every test app sees as the current time.
var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	token  string
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// setupApp creates a full application stack with auth disabled.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWithOptions(t, router.Options{DisplayCurrency: "USD"})
}

// setupAppWithOptions creates a full application stack with the given options.
// The clock is always pinned to now.
func setupAppWithOptions(t *testing.T, opts router.Options) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	opts.Clock = clock.Fixed(now)
	app := router.New(db, currency.MustNewTable(currency.DefaultConfig()), opts)

	return &testApp{DB: db, Router: app.Engine}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if app.token != "" {
		req.Header.Set("Authorization", "Bearer "+app.token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// mustRequest makes a request and fails the test unless it returns want.
func (app *testApp) mustRequest(t *testing.T, method, path, body string, want int) map[string]interface{} {
	t.Helper()
	rec := app.request(method, path, body)
	if rec.Code != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts error.code from an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := parseJSON(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

// createCategory creates a category and returns its id.
func (app *testApp) createCategory(t *testing.T, name, kind string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"kind":%q}`, name, kind)
	result := app.mustRequest(t, http.MethodPost, "/api/v1/categories", body, http.StatusCreated)
	return result["category"].(map[string]interface{})["id"].(string)
}

// createTransaction records a transaction and returns its id.
func (app *testApp) createTransaction(t *testing.T, date, category, kind, amount, code string) string {
	t.Helper()
	body := fmt.Sprintf(`{"date":%q,"description":"%s %s","category":%q,"kind":%q,"amount":%q,"currency":%q}`,
		date, category, amount, category, kind, amount, code)
	result := app.mustRequest(t, http.MethodPost, "/api/v1/transactions", body, http.StatusCreated)
	return result["transaction"].(map[string]interface{})["id"].(string)
}

// createBudget creates a budget and returns its id.
func (app *testApp) createBudget(t *testing.T, category, amount, period, code string) string {
	t.Helper()
	body := fmt.Sprintf(`{"category":%q,"amount":%q,"period":%q,"currency":%q}`, category, amount, period, code)
	result := app.mustRequest(t, http.MethodPost, "/api/v1/budgets", body, http.StatusCreated)
	return result["budget"].(map[string]interface{})["id"].(string)
}
