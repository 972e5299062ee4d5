package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/period"
)

var hundred = decimal.NewFromInt(100)

// Summary holds totals and derived statistics for one range.
type Summary struct {
	Start               time.Time       `json:"start"`
	End                 time.Time       `json:"end"`
	Days                int             `json:"days"`
	TotalIncome         decimal.Decimal `json:"total_income"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	NetSavings          decimal.Decimal `json:"net_savings"`
	SavingsRate         decimal.Decimal `json:"savings_rate"`
	DailyAverageExpense decimal.Decimal `json:"daily_average_expense"`
	AverageIncome       decimal.Decimal `json:"average_income"`
	AverageExpense      decimal.Decimal `json:"average_expense"`
	LargestIncome       decimal.Decimal `json:"largest_income"`
	LargestExpense      decimal.Decimal `json:"largest_expense"`
	MostUsedCategory    string          `json:"most_used_category"`
	TransactionCount    int             `json:"transaction_count"`
	IncomeCount         int             `json:"income_count"`
	ExpenseCount        int             `json:"expense_count"`
}

// Summary computes totals over the transactions inside rng.
func (a *Aggregator) Summary(txns []domain.Transaction, rng period.Window) Summary {
	l := a.newLedger(txns)
	inRange := l.InRange(rng.Start, rng.End)

	s := Summary{
		Start:               rng.Start,
		End:                 rng.End,
		Days:                rng.Days(),
		TotalIncome:         decimal.Zero,
		TotalExpenses:       decimal.Zero,
		SavingsRate:         decimal.Zero,
		DailyAverageExpense: decimal.Zero,
		AverageIncome:       decimal.Zero,
		AverageExpense:      decimal.Zero,
		LargestIncome:       decimal.Zero,
		LargestExpense:      decimal.Zero,
		TransactionCount:    len(inRange),
	}

	counts := make(map[string]int)
	var order []string
	for _, t := range inRange {
		amount := l.BaseAmount(t)
		switch t.Kind {
		case domain.KindIncome:
			s.TotalIncome = s.TotalIncome.Add(amount)
			s.LargestIncome = decimal.Max(s.LargestIncome, amount)
			s.IncomeCount++
		case domain.KindExpense:
			s.TotalExpenses = s.TotalExpenses.Add(amount)
			s.LargestExpense = decimal.Max(s.LargestExpense, amount)
			s.ExpenseCount++
		}
		if _, seen := counts[t.Category]; !seen {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	s.NetSavings = s.TotalIncome.Sub(s.TotalExpenses)
	if s.TotalIncome.IsPositive() {
		s.SavingsRate = s.NetSavings.Div(s.TotalIncome).Mul(hundred)
	}
	s.DailyAverageExpense = s.TotalExpenses.Div(decimal.NewFromInt(int64(s.Days)))
	s.AverageIncome = average(s.TotalIncome, s.IncomeCount)
	s.AverageExpense = average(s.TotalExpenses, s.ExpenseCount)

	best := 0
	for _, category := range order {
		if counts[category] > best {
			best = counts[category]
			s.MostUsedCategory = category
		}
	}
	return s
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
