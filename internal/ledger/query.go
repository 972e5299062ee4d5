package ledger

import (
	"sort"
	"strings"
	"time"

	"fintrack/internal/domain"
)

// SortKey orders the result of FilterSortSearch.
type SortKey string

const (
	SortDateDesc       SortKey = "date_desc"
	SortDateAsc        SortKey = "date_asc"
	SortAmountDesc     SortKey = "amount_desc"
	SortAmountAsc      SortKey = "amount_asc"
	SortDescriptionAsc SortKey = "description_asc"
	SortCategoryAsc    SortKey = "category_asc"
)

// SortKeys lists every supported key.
var SortKeys = []SortKey{
	SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc, SortDescriptionAsc, SortCategoryAsc,
}

// ParseSortKey maps s to a SortKey. Anything unrecognised becomes SortDateDesc.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range SortKeys {
		if k == key {
			return k
		}
	}
	return SortDateDesc
}

// Query describes a transaction list request. Zero values disable a filter.
type Query struct {
	Search   string
	Kind     domain.Kind
	Category string
	From     *time.Time
	To       *time.Time
	Sort     SortKey
}

// FilterSortSearch applies q to txns. Filters are AND-combined; the search
// text matches description or category, case-insensitively. Sorting is
// stable, so equal elements keep their input order.
func (l *Ledger) FilterSortSearch(txns []domain.Transaction, q Query) []domain.Transaction {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		if q.Kind != "" && t.Kind != q.Kind {
			continue
		}
		if q.Category != "" && !strings.EqualFold(t.Category, q.Category) {
			continue
		}
		if q.From != nil && t.Date.Before(*q.From) {
			continue
		}
		if q.To != nil && t.Date.After(*q.To) {
			continue
		}
		out = append(out, t)
	}

	l.sortBy(out, ParseSortKey(string(q.Sort)))
	return out
}

func (l *Ledger) sortBy(txns []domain.Transaction, key SortKey) {
	var less func(a, b domain.Transaction) bool
	switch key {
	case SortDateAsc:
		less = func(a, b domain.Transaction) bool { return a.Date.Before(b.Date) }
	case SortAmountDesc:
		less = func(a, b domain.Transaction) bool { return l.BaseAmount(a).GreaterThan(l.BaseAmount(b)) }
	case SortAmountAsc:
		less = func(a, b domain.Transaction) bool { return l.BaseAmount(a).LessThan(l.BaseAmount(b)) }
	case SortDescriptionAsc:
		less = func(a, b domain.Transaction) bool {
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		}
	case SortCategoryAsc:
		less = func(a, b domain.Transaction) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	default:
		less = func(a, b domain.Transaction) bool { return a.Date.After(b.Date) }
	}

	sort.SliceStable(txns, func(i, j int) bool { return less(txns[i], txns[j]) })
}
