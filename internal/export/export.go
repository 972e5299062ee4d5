// Package export writes reports and transaction lists as xlsx workbooks.
package export

import (
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"fintrack/internal/currency"
	"fintrack/internal/domain"
	"fintrack/internal/report"
)

// Sheet names of the report workbook.
const (
	SheetSummary      = "Summary"
	SheetExpenses     = "Expenses"
	SheetIncome       = "Income"
	SheetMonthly      = "Monthly"
	SheetWeekdays     = "Weekdays"
	SheetTransactions = "Transactions"
)

const dateFormat = "yyyy-mm-dd"

// Writer converts base-currency figures into one display currency while
// writing workbooks.
type Writer struct {
	table   *currency.Table
	display string
	format  string
	bold    *xlsx.Style
}

// NewWriter creates a Writer for display. Unknown codes fall back to the
// table's base currency.
func NewWriter(table *currency.Table, display string) *Writer {
	if !table.Known(display) {
		display = table.Base().Code
	}
	format := "#,##0.00"
	if table.Decimals(display) == 0 {
		format = "#,##0"
	}

	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true

	return &Writer{table: table, display: display, format: format, bold: bold}
}

// Display returns the currency amounts are written in.
func (w *Writer) Display() string {
	return w.display
}

// Report writes r as a workbook with one sheet per aggregation.
func (w *Writer) Report(out io.Writer, r *report.Report) error {
	file := xlsx.NewFile()

	if err := w.summarySheet(file, r.Summary); err != nil {
		return err
	}
	if err := w.breakdownSheet(file, SheetExpenses, r.ExpenseBreakdown); err != nil {
		return err
	}
	if err := w.breakdownSheet(file, SheetIncome, r.IncomeBreakdown); err != nil {
		return err
	}
	if err := w.monthlySheet(file, r.MonthlyTrend); err != nil {
		return err
	}
	if err := w.weekdaySheet(file, r.DayOfWeek); err != nil {
		return err
	}

	return file.Write(out)
}

// Transactions writes txns with their original amount and the amount in the
// display currency.
func (w *Writer) Transactions(out io.Writer, txns []domain.Transaction) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetTransactions)
	if err != nil {
		return err
	}

	w.header(sheet, "Date", "Description", "Category", "Kind", "Amount", "Currency", "Amount ("+w.display+")")
	for _, t := range txns {
		row := sheet.AddRow()
		date := row.AddCell()
		date.SetDate(t.Date)
		date.NumFmt = dateFormat
		row.AddCell().SetString(t.Description)
		row.AddCell().SetString(t.Category)
		row.AddCell().SetString(string(t.Kind))
		row.AddCell().SetFloatWithFormat(t.Amount.InexactFloat64(), "#,##0.00")
		row.AddCell().SetString(t.Currency)
		w.money(row, w.table.Convert(t.Amount, t.Currency, w.display))
	}
	_ = sheet.SetColWidth(1, 1, 40)

	return file.Write(out)
}

func (w *Writer) summarySheet(file *xlsx.File, s report.Summary) error {
	sheet, err := file.AddSheet(SheetSummary)
	if err != nil {
		return err
	}

	w.header(sheet, "Metric", "Value")

	row := sheet.AddRow()
	row.AddCell().SetString("From")
	from := row.AddCell()
	from.SetDate(s.Start)
	from.NumFmt = dateFormat

	row = sheet.AddRow()
	row.AddCell().SetString("To")
	to := row.AddCell()
	to.SetDate(s.End)
	to.NumFmt = dateFormat

	w.moneyRow(sheet, "Total income", s.TotalIncome)
	w.moneyRow(sheet, "Total expenses", s.TotalExpenses)
	w.moneyRow(sheet, "Net savings", s.NetSavings)
	w.percentRow(sheet, "Savings rate", s.SavingsRate)
	w.moneyRow(sheet, "Daily average expense", s.DailyAverageExpense)
	w.moneyRow(sheet, "Average income", s.AverageIncome)
	w.moneyRow(sheet, "Average expense", s.AverageExpense)
	w.moneyRow(sheet, "Largest income", s.LargestIncome)
	w.moneyRow(sheet, "Largest expense", s.LargestExpense)
	w.textRow(sheet, "Most used category", s.MostUsedCategory)
	w.textRow(sheet, "Transactions", strconv.Itoa(s.TransactionCount))
	w.textRow(sheet, "Days", strconv.Itoa(s.Days))

	_ = sheet.SetColWidth(0, 0, 24)
	return nil
}

func (w *Writer) breakdownSheet(file *xlsx.File, name string, stats []report.CategoryStat) error {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return err
	}

	w.header(sheet, "Category", "Total ("+w.display+")", "Count", "Average ("+w.display+")", "Share %")
	for _, s := range stats {
		row := sheet.AddRow()
		row.AddCell().SetString(s.Category)
		w.money(row, w.table.FromBase(s.Total, w.display))
		row.AddCell().SetInt(s.Count)
		w.money(row, w.table.FromBase(s.Average, w.display))
		row.AddCell().SetFloatWithFormat(s.Percentage.Round(1).InexactFloat64(), "0.0")
	}
	return nil
}

func (w *Writer) monthlySheet(file *xlsx.File, points []report.MonthPoint) error {
	sheet, err := file.AddSheet(SheetMonthly)
	if err != nil {
		return err
	}

	w.header(sheet, "Month", "Income", "Expense", "Net")
	for _, p := range points {
		row := sheet.AddRow()
		row.AddCell().SetString(p.Label)
		w.money(row, w.table.FromBase(p.Income, w.display))
		w.money(row, w.table.FromBase(p.Expense, w.display))
		w.money(row, w.table.FromBase(p.Net, w.display))
	}
	return nil
}

func (w *Writer) weekdaySheet(file *xlsx.File, buckets []report.WeekdayBucket) error {
	sheet, err := file.AddSheet(SheetWeekdays)
	if err != nil {
		return err
	}

	w.header(sheet, "Day", "Expenses", "Count")
	for _, b := range buckets {
		row := sheet.AddRow()
		row.AddCell().SetString(b.Label)
		w.money(row, w.table.FromBase(b.Total, w.display))
		row.AddCell().SetInt(b.Count)
	}
	return nil
}

func (w *Writer) header(sheet *xlsx.Sheet, titles ...string) {
	row := sheet.AddRow()
	for _, title := range titles {
		cell := row.AddCell()
		cell.SetString(title)
		cell.SetStyle(w.bold)
	}
}

func (w *Writer) money(row *xlsx.Row, amount decimal.Decimal) {
	places := w.table.Decimals(w.display)
	row.AddCell().SetFloatWithFormat(amount.Round(places).InexactFloat64(), w.format)
}

func (w *Writer) moneyRow(sheet *xlsx.Sheet, label string, amountInBase decimal.Decimal) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	w.money(row, w.table.FromBase(amountInBase, w.display))
}

func (w *Writer) percentRow(sheet *xlsx.Sheet, label string, pct decimal.Decimal) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloatWithFormat(pct.Round(1).InexactFloat64(), "0.0")
}

func (w *Writer) textRow(sheet *xlsx.Sheet, label, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetString(value)
}
