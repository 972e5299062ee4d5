// Package chart renders report series as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"fintrack/internal/currency"
	"fintrack/internal/report"
)

// ErrNoData is returned when every value to draw is zero.
var ErrNoData = errors.New("chart: nothing to draw")

const (
	defaultWidth  = 1024
	defaultHeight = 512
	barWidth      = 24
	barSpacing    = 8

	incomeColor  = "27AE60"
	expenseColor = "E74C3C"
)

// Options selects the currency the values are drawn in. Report values are in
// the base currency and are converted with Table.
type Options struct {
	Table   *currency.Table
	Display string
	Title   string
}

func (o Options) value(amountInBase decimal.Decimal) float64 {
	return o.Table.FromBase(amountInBase, o.Display).InexactFloat64()
}

// MonthlyTrend draws income and expense bars side by side for every month.
func MonthlyTrend(w io.Writer, points []report.MonthPoint, opts Options) error {
	bars := make([]gochart.Value, 0, 2*len(points))
	hasData := false
	for _, p := range points {
		income := opts.value(p.Income)
		expense := opts.value(p.Expense)
		if income > 0 || expense > 0 {
			hasData = true
		}
		bars = append(bars,
			gochart.Value{Label: p.Label + " in", Value: income, Style: fill(incomeColor)},
			gochart.Value{Label: p.Label + " out", Value: expense, Style: fill(expenseColor)},
		)
	}
	if !hasData {
		return ErrNoData
	}

	width := defaultWidth
	if need := len(bars)*(barWidth+barSpacing) + 160; need > width {
		width = need
	}

	graph := gochart.BarChart{
		Title:      titleOr(opts.Title, "Income vs expenses ("+opts.Display+")"),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Width:      width,
		Height:     defaultHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      gochart.Style{TextRotationDegrees: 45},
		YAxis: gochart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	return graph.Render(gochart.PNG, w)
}

// ExpenseBreakdown draws a pie with one slice per category, in each
// category's color.
func ExpenseBreakdown(w io.Writer, stats []report.CategoryStat, opts Options) error {
	values := make([]gochart.Value, 0, len(stats))
	for _, s := range stats {
		v := opts.value(s.Total)
		if v <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s %s%%", s.Category, s.Percentage.StringFixed(1)),
			Value: v,
			Style: fill(s.Color),
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	graph := gochart.PieChart{
		Title:  titleOr(opts.Title, "Expenses by category ("+opts.Display+")"),
		Width:  defaultHeight,
		Height: defaultHeight,
		Values: values,
	}
	return graph.Render(gochart.PNG, w)
}

func fill(hex string) gochart.Style {
	c := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	return gochart.Style{FillColor: c, StrokeColor: c}
}

func titleOr(title, fallback string) string {
	if title != "" {
		return title
	}
	return fallback
}
