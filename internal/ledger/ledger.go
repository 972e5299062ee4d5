// Package ledger answers filtered, grouped and summed queries over a
// transaction snapshot. Every amount it returns is in the base currency.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/currency"
	"fintrack/internal/domain"
)

// Ledger is a read-only view over one snapshot of transactions.
type Ledger struct {
	table *currency.Table
	txns  []domain.Transaction
}

// New wraps txns. The slice is not copied; callers must not mutate it while
// the ledger is in use.
func New(table *currency.Table, txns []domain.Transaction) *Ledger {
	return &Ledger{table: table, txns: txns}
}

// Transactions returns the snapshot.
func (l *Ledger) Transactions() []domain.Transaction {
	return l.txns
}

// Table returns the currency table the ledger converts with.
func (l *Ledger) Table() *currency.Table {
	return l.table
}

// BaseAmount converts t.Amount into the base currency.
func (l *Ledger) BaseAmount(t domain.Transaction) decimal.Decimal {
	return l.table.ToBase(t.Amount, t.Currency)
}

// TotalByKind sums the whole snapshot for one kind.
func (l *Ledger) TotalByKind(kind domain.Kind) decimal.Decimal {
	return l.Sum(l.txns, kind)
}

// Sum adds up the base amounts of txns matching kind.
func (l *Ledger) Sum(txns []domain.Transaction, kind domain.Kind) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Kind == kind {
			total = total.Add(l.BaseAmount(t))
		}
	}
	return total
}

// InRange returns the transactions dated within [start, end], both inclusive,
// in snapshot order.
func (l *Ledger) InRange(start, end time.Time) []domain.Transaction {
	return Between(l.txns, start, end)
}

// Between filters txns to [start, end], both inclusive.
func Between(txns []domain.Transaction, start, end time.Time) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t)
		}
	}
	return out
}

// OfKind filters txns to one kind.
func OfKind(txns []domain.Transaction, kind domain.Kind) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// CategoryGroup is the per-category aggregate produced by GroupByCategory.
type CategoryGroup struct {
	Category  string          `json:"category"`
	TotalBase decimal.Decimal `json:"total_base"`
	Count     int             `json:"count"`
}

// GroupByCategory groups txns of the given kind by their stored category
// string. Groups appear in the order their category was first seen.
func (l *Ledger) GroupByCategory(txns []domain.Transaction, kind domain.Kind) []CategoryGroup {
	index := make(map[string]int)
	var groups []CategoryGroup
	for _, t := range txns {
		if t.Kind != kind {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(groups)
			index[t.Category] = i
			groups = append(groups, CategoryGroup{Category: t.Category, TotalBase: decimal.Zero})
		}
		groups[i].TotalBase = groups[i].TotalBase.Add(l.BaseAmount(t))
		groups[i].Count++
	}
	return groups
}

// Recent returns the n most recent transactions, newest first. Transactions
// sharing a date keep their snapshot order.
func (l *Ledger) Recent(n int) []domain.Transaction {
	if n <= 0 {
		return []domain.Transaction{}
	}
	sorted := make([]domain.Transaction, len(l.txns))
	copy(sorted, l.txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Earliest returns the date of the oldest transaction. ok is false for an
// empty snapshot.
func (l *Ledger) Earliest() (earliest time.Time, ok bool) {
	for i, t := range l.txns {
		if i == 0 || t.Date.Before(earliest) {
			earliest = t.Date
		}
	}
	return earliest, len(l.txns) > 0
}
