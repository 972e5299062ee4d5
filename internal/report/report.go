// Package report builds the derived statistics behind the dashboard and the
// reports page. Every figure is in the base currency; converting to a display
// currency is left to the presentation layer.
package report

import (
	"time"

	"fintrack/internal/budget"
	"fintrack/internal/currency"
	"fintrack/internal/domain"
	"fintrack/internal/ledger"
	"fintrack/internal/period"
)

const (
	// TopCategories is how many expense categories the trend series and the
	// dashboard keep.
	TopCategories = 5
	// RecentTransactions is how many transactions the dashboard lists.
	RecentTransactions = 5
)

// Aggregator computes reports from transaction snapshots.
type Aggregator struct {
	table     *currency.Table
	evaluator *budget.Evaluator
}

// NewAggregator wires an Aggregator to its currency table and budget evaluator.
func NewAggregator(table *currency.Table, evaluator *budget.Evaluator) *Aggregator {
	return &Aggregator{table: table, evaluator: evaluator}
}

// Table returns the currency table used for conversion.
func (a *Aggregator) Table() *currency.Table {
	return a.table
}

func (a *Aggregator) newLedger(txns []domain.Transaction) *ledger.Ledger {
	return ledger.New(a.table, txns)
}

// Report bundles every aggregation over one range.
type Report struct {
	Range            period.Window    `json:"range"`
	Summary          Summary          `json:"summary"`
	ExpenseBreakdown []CategoryStat   `json:"expense_breakdown"`
	IncomeBreakdown  []CategoryStat   `json:"income_breakdown"`
	MonthlyTrend     []MonthPoint     `json:"monthly_trend"`
	TopCategoryTrend []CategorySeries `json:"top_category_trend"`
	DayOfWeek        []WeekdayBucket  `json:"day_of_week"`
	MonthOverMonth   MonthOverMonth   `json:"month_over_month"`
}

// BuildReport runs every aggregation for rng. The month-over-month comparison
// always covers the month containing now and the month before, whatever rng is.
func (a *Aggregator) BuildReport(txns []domain.Transaction, categories []domain.Category, rng period.Window, now time.Time) Report {
	idx := domain.NewCategoryIndex(categories)
	return Report{
		Range:            rng,
		Summary:          a.Summary(txns, rng),
		ExpenseBreakdown: a.CategoryBreakdown(txns, rng, domain.KindExpense, idx),
		IncomeBreakdown:  a.CategoryBreakdown(txns, rng, domain.KindIncome, idx),
		MonthlyTrend:     a.MonthlyTrend(txns, rng),
		TopCategoryTrend: a.TopCategoryTrend(txns, rng, TopCategories, idx),
		DayOfWeek:        a.DayOfWeek(txns, rng),
		MonthOverMonth:   a.MonthOverMonth(txns, now),
	}
}

// Dashboard is the landing page bundle.
type Dashboard struct {
	GeneratedAt          time.Time            `json:"generated_at"`
	AllTime              Summary              `json:"all_time"`
	ThisMonth            Summary              `json:"this_month"`
	MonthOverMonth       MonthOverMonth       `json:"month_over_month"`
	TopExpenseCategories []CategoryStat       `json:"top_expense_categories"`
	RecentTransactions   []domain.Transaction `json:"recent_transactions"`
	Budgets              []budget.Status      `json:"budgets"`
	BudgetCounts         map[budget.State]int `json:"budget_counts"`
}

// BuildDashboard assembles the dashboard as of now.
func (a *Aggregator) BuildDashboard(txns []domain.Transaction, budgets []domain.Budget, categories []domain.Category, now time.Time) Dashboard {
	l := a.newLedger(txns)
	idx := domain.NewCategoryIndex(categories)

	allTime := period.Window{Start: period.StartOfDay(now), End: period.EndOfDay(now)}
	if earliest, ok := l.Earliest(); ok && earliest.Before(allTime.Start) {
		allTime.Start = period.StartOfDay(earliest)
	}
	month := period.Month(now, 0)

	top := a.CategoryBreakdown(txns, month, domain.KindExpense, idx)
	if len(top) > TopCategories {
		top = top[:TopCategories]
	}

	statuses := a.evaluator.EvaluateAt(budgets, txns, categories, now)

	return Dashboard{
		GeneratedAt:          now,
		AllTime:              a.Summary(txns, allTime),
		ThisMonth:            a.Summary(txns, month),
		MonthOverMonth:       a.MonthOverMonth(txns, now),
		TopExpenseCategories: top,
		RecentTransactions:   l.Recent(RecentTransactions),
		Budgets:              statuses,
		BudgetCounts:         budget.CountByState(statuses),
	}
}
