package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/period"
)

// MonthLabelLayout formats month labels, e.g. "Feb 2026".
const MonthLabelLayout = "Jan 2006"

// MonthPoint is one calendar month of the income/expense trend.
type MonthPoint struct {
	Month   time.Time       `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// SeriesPoint is one calendar month of a single-category series.
type SeriesPoint struct {
	Month  time.Time       `json:"month"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CategorySeries is the monthly expense series of one category.
type CategorySeries struct {
	Category string          `json:"category"`
	Color    string          `json:"color"`
	Total    decimal.Decimal `json:"total"`
	Points   []SeriesPoint   `json:"points"`
}

// monthBuckets maps transaction dates onto the months of a window.
type monthBuckets struct {
	months []time.Time
	first  time.Time
}

func newMonthBuckets(rng period.Window) monthBuckets {
	months := period.MonthsIn(rng)
	b := monthBuckets{months: months}
	if len(months) > 0 {
		b.first = months[0]
	}
	return b
}

// index returns the bucket of t, or -1 when t falls outside.
func (b monthBuckets) index(t time.Time) int {
	t = t.In(b.first.Location())
	i := (t.Year()-b.first.Year())*12 + int(t.Month()-b.first.Month())
	if i < 0 || i >= len(b.months) {
		return -1
	}
	return i
}

// MonthlyTrend returns income and expense per calendar month from the month
// of rng.Start to the month of rng.End, including months with no activity.
// Only transactions inside rng count, so partial edge months are clipped.
func (a *Aggregator) MonthlyTrend(txns []domain.Transaction, rng period.Window) []MonthPoint {
	buckets := newMonthBuckets(rng)
	points := make([]MonthPoint, len(buckets.months))
	for i, m := range buckets.months {
		points[i] = MonthPoint{Month: m, Label: m.Format(MonthLabelLayout), Income: decimal.Zero, Expense: decimal.Zero}
	}

	l := a.newLedger(txns)
	for _, t := range l.InRange(rng.Start, rng.End) {
		i := buckets.index(t.Date)
		if i < 0 {
			continue
		}
		switch t.Kind {
		case domain.KindIncome:
			points[i].Income = points[i].Income.Add(l.BaseAmount(t))
		case domain.KindExpense:
			points[i].Expense = points[i].Expense.Add(l.BaseAmount(t))
		}
	}
	for i := range points {
		points[i].Net = points[i].Income.Sub(points[i].Expense)
	}
	return points
}

// TopCategoryTrend picks the n expense categories with the largest totals in
// rng and returns a monthly series for each. Other categories are left out.
func (a *Aggregator) TopCategoryTrend(txns []domain.Transaction, rng period.Window, n int, idx domain.CategoryIndex) []CategorySeries {
	if n < 0 {
		n = 0
	}
	top := a.CategoryBreakdown(txns, rng, domain.KindExpense, idx)
	if len(top) > n {
		top = top[:n]
	}

	buckets := newMonthBuckets(rng)
	series := make([]CategorySeries, len(top))
	position := make(map[string]int, len(top))
	for i, stat := range top {
		points := make([]SeriesPoint, len(buckets.months))
		for j, m := range buckets.months {
			points[j] = SeriesPoint{Month: m, Label: m.Format(MonthLabelLayout), Amount: decimal.Zero}
		}
		series[i] = CategorySeries{Category: stat.Category, Color: stat.Color, Total: stat.Total, Points: points}
		position[stat.Category] = i
	}

	l := a.newLedger(txns)
	for _, t := range l.InRange(rng.Start, rng.End) {
		if t.Kind != domain.KindExpense {
			continue
		}
		s, ok := position[t.Category]
		if !ok {
			continue
		}
		if i := buckets.index(t.Date); i >= 0 {
			p := &series[s].Points[i]
			p.Amount = p.Amount.Add(l.BaseAmount(t))
		}
	}
	return series
}
