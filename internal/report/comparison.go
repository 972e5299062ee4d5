package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/period"
)

// Trend is the direction of a period-over-period change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
	// TrendNew means activity this period after none in the previous one.
	TrendNew Trend = "new"
	// TrendNone means no activity in either period.
	TrendNone Trend = "none"
)

const (
	LabelNewActivity = "new activity this period"
	LabelNoActivity  = "no activity yet"
)

// Comparison compares one total across two consecutive periods.
// ChangePercent is nil when the previous total is zero.
type Comparison struct {
	Current       decimal.Decimal  `json:"current"`
	Previous      decimal.Decimal  `json:"previous"`
	ChangePercent *decimal.Decimal `json:"change_percent"`
	Trend         Trend            `json:"trend"`
	Label         string           `json:"label"`
}

// Compare builds a Comparison. A zero previous total yields a qualitative
// label instead of a percentage.
func Compare(current, previous decimal.Decimal) Comparison {
	c := Comparison{Current: current, Previous: previous}

	if !previous.IsPositive() {
		if current.IsPositive() {
			c.Trend, c.Label = TrendNew, LabelNewActivity
		} else {
			c.Trend, c.Label = TrendNone, LabelNoActivity
		}
		return c
	}

	change := current.Sub(previous).Div(previous).Mul(hundred)
	c.ChangePercent = &change
	switch change.Sign() {
	case 1:
		c.Trend = TrendUp
		c.Label = fmt.Sprintf("+%s%% vs last month", change.StringFixed(1))
	case -1:
		c.Trend = TrendDown
		c.Label = fmt.Sprintf("%s%% vs last month", change.StringFixed(1))
	default:
		c.Trend = TrendFlat
		c.Label = "no change vs last month"
	}
	return c
}

// MonthOverMonth compares income and expenses of the calendar month
// containing now with the month before.
type MonthOverMonth struct {
	CurrentMonth  period.Window `json:"current_month"`
	PreviousMonth period.Window `json:"previous_month"`
	Income        Comparison    `json:"income"`
	Expense       Comparison    `json:"expense"`
}

// MonthOverMonth compares the current and previous calendar months relative
// to now, regardless of any report range.
func (a *Aggregator) MonthOverMonth(txns []domain.Transaction, now time.Time) MonthOverMonth {
	l := a.newLedger(txns)
	current := period.Month(now, 0)
	previous := period.Month(now, 1)

	thisMonth := l.InRange(current.Start, current.End)
	lastMonth := l.InRange(previous.Start, previous.End)

	return MonthOverMonth{
		CurrentMonth:  current,
		PreviousMonth: previous,
		Income:        Compare(l.Sum(thisMonth, domain.KindIncome), l.Sum(lastMonth, domain.KindIncome)),
		Expense:       Compare(l.Sum(thisMonth, domain.KindExpense), l.Sum(lastMonth, domain.KindExpense)),
	}
}
