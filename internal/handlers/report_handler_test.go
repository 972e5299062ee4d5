package handlers

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/period"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func setupReportRouter(analytics services.AnalyticsServicer, display string) *gin.Engine {
	handler := NewReportHandler(analytics, &mockSettingsService{display: display}, testTable())
	r := gin.New()
	r.GET("/dashboard", handler.GetDashboard)
	r.GET("/reports", handler.GetReport)
	r.GET("/reports/export.xlsx", handler.ExportReport)
	r.GET("/reports/charts/monthly.png", handler.GetMonthlyChart)
	r.GET("/reports/charts/expenses.png", handler.GetExpenseChart)
	return r
}

func sampleReport() *report.Report {
	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &report.Report{
		Range: period.Window{Start: march, End: time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)},
		Summary: report.Summary{
			TotalIncome:      decimal.NewFromInt(1000),
			TotalExpenses:    decimal.NewFromInt(250),
			NetSavings:       decimal.NewFromInt(750),
			TransactionCount: 3,
		},
		ExpenseBreakdown: []report.CategoryStat{
			{Category: "Food", Color: "#FF6B6B", Total: decimal.NewFromInt(150), Count: 1},
			{Category: "Transport", Color: "#4ECDC4", Total: decimal.NewFromInt(100), Count: 1},
		},
		MonthlyTrend: []report.MonthPoint{
			{Month: march, Label: "Mar 2026", Income: decimal.NewFromInt(1000), Expense: decimal.NewFromInt(250), Net: decimal.NewFromInt(750)},
		},
	}
}

func TestReportHandler_GetDashboard(t *testing.T) {
	t.Run("formats figures in the display currency", func(t *testing.T) {
		analytics := &mockAnalyticsService{
			dashboardFn: func() (*report.Dashboard, error) {
				return &report.Dashboard{
					AllTime:   report.Summary{TotalIncome: decimal.NewFromInt(1000), TotalExpenses: decimal.NewFromInt(250)},
					ThisMonth: report.Summary{TotalExpenses: decimal.NewFromInt(100)},
				}, nil
			},
		}
		r := setupReportRouter(analytics, "EUR")

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["display_currency"] != "EUR" {
			t.Errorf("expected EUR, got %v", result["display_currency"])
		}
		allTime := result["all_time_formatted"].(map[string]interface{})
		if allTime["total_income"] != "€920.00" {
			t.Errorf("expected €920.00, got %v", allTime["total_income"])
		}
		thisMonth := result["this_month_formatted"].(map[string]interface{})
		if thisMonth["total_expenses"] != "€92.00" {
			t.Errorf("expected €92.00, got %v", thisMonth["total_expenses"])
		}
	})

	t.Run("returns 500 when loading fails", func(t *testing.T) {
		analytics := &mockAnalyticsService{
			dashboardFn: func() (*report.Dashboard, error) { return nil, apperrors.ErrInternalServer },
		}
		r := setupReportRouter(analytics, "USD")

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestReportHandler_GetReport(t *testing.T) {
	t.Run("passes preset and returns formatted summary", func(t *testing.T) {
		var got services.ReportRequest
		analytics := &mockAnalyticsService{
			reportFn: func(req services.ReportRequest) (*report.Report, error) {
				got = req
				return sampleReport(), nil
			},
		}
		r := setupReportRouter(analytics, "JPY")

		rec := doRequest(r, "GET", "/reports?range=last_3_months", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Preset != period.LastMonths3 || got.From != nil || got.To != nil {
			t.Errorf("unexpected request %+v", got)
		}
		summary := parseJSON(t, rec)["summary_formatted"].(map[string]interface{})
		if summary["total_income"] != "¥149,500" {
			t.Errorf("expected ¥149,500, got %v", summary["total_income"])
		}
	})

	t.Run("defaults to this month", func(t *testing.T) {
		var got services.ReportRequest
		analytics := &mockAnalyticsService{
			reportFn: func(req services.ReportRequest) (*report.Report, error) {
				got = req
				return sampleReport(), nil
			},
		}
		r := setupReportRouter(analytics, "USD")

		rec := doRequest(r, "GET", "/reports", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Preset != period.ThisMonth {
			t.Errorf("expected this_month, got %q", got.Preset)
		}
	})

	t.Run("passes custom bounds", func(t *testing.T) {
		var got services.ReportRequest
		analytics := &mockAnalyticsService{
			reportFn: func(req services.ReportRequest) (*report.Report, error) {
				got = req
				return sampleReport(), nil
			},
		}
		r := setupReportRouter(analytics, "USD")

		rec := doRequest(r, "GET", "/reports?from=2026-01-01&to=2026-02-15", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.From == nil || got.To == nil || got.To.Month() != time.February {
			t.Errorf("expected both bounds, got %+v", got)
		}
	})

	t.Run("returns 400 on unknown range", func(t *testing.T) {
		r := setupReportRouter(&mockAnalyticsService{}, "USD")

		rec := doRequest(r, "GET", "/reports?range=fortnight", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		r := setupReportRouter(&mockAnalyticsService{}, "USD")

		rec := doRequest(r, "GET", "/reports?from=yesterday&to=2026-02-15", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReportHandler_ExportReport(t *testing.T) {
	t.Run("returns a workbook", func(t *testing.T) {
		analytics := &mockAnalyticsService{
			reportFn: func(services.ReportRequest) (*report.Report, error) { return sampleReport(), nil },
		}
		r := setupReportRouter(analytics, "EUR")

		rec := doRequest(r, "GET", "/reports/export.xlsx", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
			t.Errorf("expected xlsx content type, got %q", ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
			t.Error("expected a zip container")
		}
	})

	t.Run("returns 404 when the range is empty", func(t *testing.T) {
		r := setupReportRouter(&mockAnalyticsService{}, "EUR")

		rec := doRequest(r, "GET", "/reports/export.xlsx", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NO_REPORT_DATA")
	})
}

func TestReportHandler_Charts(t *testing.T) {
	for _, path := range []string{"/reports/charts/monthly.png", "/reports/charts/expenses.png"} {
		t.Run("renders "+path, func(t *testing.T) {
			analytics := &mockAnalyticsService{
				reportFn: func(services.ReportRequest) (*report.Report, error) { return sampleReport(), nil },
			}
			r := setupReportRouter(analytics, "USD")

			rec := doRequest(r, "GET", path, "")

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("expected image/png, got %q", ct)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), pngMagic) {
				t.Error("expected PNG data")
			}
		})

		t.Run("returns 404 without data for "+path, func(t *testing.T) {
			r := setupReportRouter(&mockAnalyticsService{}, "USD")

			rec := doRequest(r, "GET", path, "")

			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "NO_REPORT_DATA")
		})
	}
}
