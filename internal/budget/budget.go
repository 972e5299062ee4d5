// Package budget compares budgets against actual expense spending for the
// period window containing "now".
package budget

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/clock"
	"fintrack/internal/currency"
	"fintrack/internal/domain"
	"fintrack/internal/period"
)

// State is the classification of a budget's progress.
type State string

const (
	StateOnTrack    State = "on_track"
	StateWarning    State = "warning"
	StateOverBudget State = "over_budget"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// Classify maps a progress percentage to a State. The lower bound of each
// band belongs to that band: 80 is a warning and 100 is over budget.
func Classify(progress decimal.Decimal) State {
	switch {
	case progress.GreaterThanOrEqual(hundred):
		return StateOverBudget
	case progress.GreaterThanOrEqual(warningThreshold):
		return StateWarning
	default:
		return StateOnTrack
	}
}

// Label is the human readable status text.
func (s State) Label() string {
	switch s {
	case StateOverBudget:
		return "Over Budget!"
	case StateWarning:
		return "Warning"
	default:
		return "On Track"
	}
}

// Color is the hex color the status is drawn with.
func (s State) Color() string {
	switch s {
	case StateOverBudget:
		return "#E74C3C"
	case StateWarning:
		return "#F39C12"
	default:
		return "#27AE60"
	}
}

// Status is the evaluation of one budget. Money fields are in BudgetCurrency.
type Status struct {
	BudgetID           string          `json:"budget_id"`
	Category           string          `json:"category"`
	Icon               string          `json:"icon"`
	Color              string          `json:"color"`
	BudgetAmount       decimal.Decimal `json:"budget_amount"`
	BudgetCurrency     string          `json:"budget_currency"`
	Period             domain.Period   `json:"period"`
	WindowStart        time.Time       `json:"window_start"`
	WindowEnd          time.Time       `json:"window_end"`
	Spent              decimal.Decimal `json:"spent"`
	Remaining          decimal.Decimal `json:"remaining"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	Status             State           `json:"status"`
	StatusLabel        string          `json:"status_label"`
	StatusColor        string          `json:"status_color"`
}

// Evaluator computes budget statuses. It holds no state between calls.
type Evaluator struct {
	table *currency.Table
	clock clock.Clock
}

// NewEvaluator builds an Evaluator. A nil clk means the system clock.
func NewEvaluator(table *currency.Table, clk clock.Clock) *Evaluator {
	if clk == nil {
		clk = clock.System{}
	}
	return &Evaluator{table: table, clock: clk}
}

// Evaluate evaluates budgets at the current time of the evaluator's clock.
func (e *Evaluator) Evaluate(budgets []domain.Budget, txns []domain.Transaction, categories []domain.Category) []Status {
	return e.EvaluateAt(budgets, txns, categories, e.clock.Now())
}

// EvaluateAt evaluates budgets for the windows containing now. The result has
// one entry per budget in input order.
func (e *Evaluator) EvaluateAt(budgets []domain.Budget, txns []domain.Transaction, categories []domain.Category, now time.Time) []Status {
	idx := domain.NewCategoryIndex(categories)
	out := make([]Status, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, e.evaluate(b, txns, idx, now))
	}
	return out
}

func (e *Evaluator) evaluate(b domain.Budget, txns []domain.Transaction, idx domain.CategoryIndex, now time.Time) Status {
	w := period.Current(b.Period, now)

	spent := decimal.Zero
	for _, t := range txns {
		if t.Kind != domain.KindExpense || t.Category != b.Category || !w.Contains(t.Date) {
			continue
		}
		spent = spent.Add(e.table.Convert(t.Amount, t.Currency, b.Currency))
	}

	progress := decimal.Zero
	if b.Amount.IsPositive() {
		progress = spent.Div(b.Amount).Mul(hundred)
	}
	state := Classify(progress)
	cat := idx.Lookup(b.Category)

	return Status{
		BudgetID:           b.ID,
		Category:           b.Category,
		Icon:               cat.Icon,
		Color:              cat.Color,
		BudgetAmount:       b.Amount,
		BudgetCurrency:     b.Currency,
		Period:             b.Period,
		WindowStart:        w.Start,
		WindowEnd:          w.End,
		Spent:              spent,
		Remaining:          b.Amount.Sub(spent),
		ProgressPercentage: progress,
		Status:             state,
		StatusLabel:        state.Label(),
		StatusColor:        state.Color(),
	}
}

// CountByState tallies statuses per State. All three states are present in
// the result, possibly with zero.
func CountByState(statuses []Status) map[State]int {
	counts := map[State]int{StateOnTrack: 0, StateWarning: 0, StateOverBudget: 0}
	for _, s := range statuses {
		counts[s.Status]++
	}
	return counts
}

// HasBudgetFor reports whether budgets already contains one for category,
// ignoring the budget with excludeID. Callers use it before creating or
// renaming a budget.
func HasBudgetFor(budgets []domain.Budget, category, excludeID string) bool {
	for _, b := range budgets {
		if b.ID != excludeID && strings.EqualFold(b.Category, category) {
			return true
		}
	}
	return false
}
