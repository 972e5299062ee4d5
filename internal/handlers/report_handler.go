package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/chart"
	"fintrack/internal/currency"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/export"
	"fintrack/internal/period"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

// ReportHandler serves the dashboard, reports and their exports.
type ReportHandler struct {
	analyticsService services.AnalyticsServicer
	settingsService  services.SettingsServicer
	table            *currency.Table
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(analyticsService services.AnalyticsServicer, settingsService services.SettingsServicer, table *currency.Table) *ReportHandler {
	return &ReportHandler{
		analyticsService: analyticsService,
		settingsService:  settingsService,
		table:            table,
	}
}

// FormattedSummary holds summary figures rendered in the display currency.
type FormattedSummary struct {
	TotalIncome         string `json:"total_income"`
	TotalExpenses       string `json:"total_expenses"`
	NetSavings          string `json:"net_savings"`
	DailyAverageExpense string `json:"daily_average_expense"`
	LargestExpense      string `json:"largest_expense"`
}

// DashboardResponse is the dashboard with display-currency strings.
type DashboardResponse struct {
	Dashboard       *report.Dashboard `json:"dashboard"`
	DisplayCurrency string            `json:"display_currency"`
	AllTime         FormattedSummary  `json:"all_time_formatted"`
	ThisMonth       FormattedSummary  `json:"this_month_formatted"`
}

// ReportResponse is a report with display-currency strings.
type ReportResponse struct {
	Report          *report.Report   `json:"report"`
	DisplayCurrency string           `json:"display_currency"`
	Summary         FormattedSummary `json:"summary_formatted"`
}

func (h *ReportHandler) format(s report.Summary, display string) FormattedSummary {
	return FormattedSummary{
		TotalIncome:         h.table.Format(s.TotalIncome, display),
		TotalExpenses:       h.table.Format(s.TotalExpenses, display),
		NetSavings:          h.table.Format(s.NetSavings, display),
		DailyAverageExpense: h.table.Format(s.DailyAverageExpense, display),
		LargestExpense:      h.table.Format(s.LargestExpense, display),
	}
}

// GetDashboard handles the dashboard request.
// @Summary     Dashboard
// @Description All-time and this-month summaries, month-over-month changes, top expense categories, recent transactions and budget statuses. Amounts are in the base currency; *_formatted fields are in the display currency.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse "Dashboard"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	d, err := h.analyticsService.Dashboard()
	if err != nil {
		respondWithError(c, err)
		return
	}
	display, err := h.settingsService.GetDisplayCurrency()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Dashboard:       d,
		DisplayCurrency: display,
		AllTime:         h.format(d.AllTime, display),
		ThisMonth:       h.format(d.ThisMonth, display),
	})
}

// GetReport handles the report request.
// @Summary     Report
// @Description Summary, category breakdowns, monthly trend, top category trends, day-of-week spending and month-over-month changes over a range
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       range query string false "this_month (default), last_3_months, last_6_months, this_year, all_time, custom"
// @Param       from  query string false "Custom range start (YYYY-MM-DD)"
// @Param       to    query string false "Custom range end (YYYY-MM-DD)"
// @Success     200 {object} ReportResponse "Report"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	r, display, ok := h.loadReport(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ReportResponse{
		Report:          r,
		DisplayCurrency: display,
		Summary:         h.format(r.Summary, display),
	})
}

// ExportReport handles downloading a report workbook.
// @Summary     Export report
// @Description Download the report over a range as an xlsx workbook in the display currency
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       range query string false "Range preset"
// @Param       from  query string false "Custom range start (YYYY-MM-DD)"
// @Param       to    query string false "Custom range end (YYYY-MM-DD)"
// @Success     200 {file} file "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     404 {object} ErrorResponse "No transactions in range"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/export.xlsx [get]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	r, display, ok := h.loadReport(c)
	if !ok {
		return
	}
	if r.Summary.TransactionCount == 0 {
		respondWithError(c, apperrors.ErrNoReportData)
		return
	}

	h.writeFile(c, xlsxContentType, "report.xlsx", func(w io.Writer) error {
		return export.NewWriter(h.table, display).Report(w, r)
	})
}

// GetMonthlyChart handles rendering the monthly trend chart.
// @Summary     Monthly trend chart
// @Tags        reports
// @Produce     image/png
// @Security    BearerAuth
// @Param       range query string false "Range preset"
// @Param       from  query string false "Custom range start (YYYY-MM-DD)"
// @Param       to    query string false "Custom range end (YYYY-MM-DD)"
// @Success     200 {file} file "PNG image"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     404 {object} ErrorResponse "No transactions in range"
// @Router      /reports/charts/monthly.png [get]
func (h *ReportHandler) GetMonthlyChart(c *gin.Context) {
	r, display, ok := h.loadReport(c)
	if !ok {
		return
	}

	opts := chart.Options{Table: h.table, Display: display}
	h.writeChart(c, func(w io.Writer) error { return chart.MonthlyTrend(w, r.MonthlyTrend, opts) })
}

// GetExpenseChart handles rendering the expense breakdown chart.
// @Summary     Expense breakdown chart
// @Tags        reports
// @Produce     image/png
// @Security    BearerAuth
// @Param       range query string false "Range preset"
// @Param       from  query string false "Custom range start (YYYY-MM-DD)"
// @Param       to    query string false "Custom range end (YYYY-MM-DD)"
// @Success     200 {file} file "PNG image"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     404 {object} ErrorResponse "No expenses in range"
// @Router      /reports/charts/expenses.png [get]
func (h *ReportHandler) GetExpenseChart(c *gin.Context) {
	r, display, ok := h.loadReport(c)
	if !ok {
		return
	}

	opts := chart.Options{Table: h.table, Display: display}
	h.writeChart(c, func(w io.Writer) error { return chart.ExpenseBreakdown(w, r.ExpenseBreakdown, opts) })
}

// loadReport parses the range query and builds the report. It writes the
// error response itself and reports whether the caller should go on.
func (h *ReportHandler) loadReport(c *gin.Context) (*report.Report, string, bool) {
	preset, err := period.ParsePreset(c.Query("range"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"range must be one of this_month, last_3_months, last_6_months, this_year, all_time, custom"))
		return nil, "", false
	}
	from, err := optionalTimeQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return nil, "", false
	}
	to, err := optionalTimeQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return nil, "", false
	}

	r, err := h.analyticsService.Report(services.ReportRequest{Preset: preset, From: from, To: to})
	if err != nil {
		respondWithError(c, err)
		return nil, "", false
	}
	display, err := h.settingsService.GetDisplayCurrency()
	if err != nil {
		respondWithError(c, err)
		return nil, "", false
	}
	return r, display, true
}

func (h *ReportHandler) writeChart(c *gin.Context, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			respondWithError(c, apperrors.ErrNoReportData)
			return
		}
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *ReportHandler) writeFile(c *gin.Context, contentType, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
