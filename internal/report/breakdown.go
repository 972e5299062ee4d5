package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/period"
)

// CategoryStat is one row of a category breakdown.
type CategoryStat struct {
	Category   string          `json:"category"`
	Icon       string          `json:"icon"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Average    decimal.Decimal `json:"average"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CategoryBreakdown groups the transactions of one kind inside rng by
// category, sorted by total descending. Categories with equal totals keep
// first-appearance order.
func (a *Aggregator) CategoryBreakdown(txns []domain.Transaction, rng period.Window, kind domain.Kind, idx domain.CategoryIndex) []CategoryStat {
	l := a.newLedger(txns)
	groups := l.GroupByCategory(l.InRange(rng.Start, rng.End), kind)

	subtotal := decimal.Zero
	for _, g := range groups {
		subtotal = subtotal.Add(g.TotalBase)
	}

	stats := make([]CategoryStat, 0, len(groups))
	for _, g := range groups {
		cat := idx.Lookup(g.Category)
		stats = append(stats, CategoryStat{
			Category:   g.Category,
			Icon:       cat.Icon,
			Color:      cat.Color,
			Total:      g.TotalBase,
			Count:      g.Count,
			Average:    average(g.TotalBase, g.Count),
			Percentage: percentOf(g.TotalBase, subtotal),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total.GreaterThan(stats[j].Total)
	})
	return stats
}

// WeekdayBucket is the expense total of one weekday.
type WeekdayBucket struct {
	Day   time.Weekday    `json:"day"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// DayOfWeek sums expenses inside rng per weekday. The result always has seven
// buckets, Sunday first.
func (a *Aggregator) DayOfWeek(txns []domain.Transaction, rng period.Window) []WeekdayBucket {
	buckets := make([]WeekdayBucket, 7)
	for i := range buckets {
		day := time.Weekday(i)
		buckets[i] = WeekdayBucket{Day: day, Label: day.String()[:3], Total: decimal.Zero}
	}

	l := a.newLedger(txns)
	for _, t := range l.InRange(rng.Start, rng.End) {
		if t.Kind != domain.KindExpense {
			continue
		}
		b := &buckets[t.Date.Weekday()]
		b.Total = b.Total.Add(l.BaseAmount(t))
		b.Count++
	}
	return buckets
}
