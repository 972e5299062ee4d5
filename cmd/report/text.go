package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"fintrack/internal/currency"
	"fintrack/internal/report"
)

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// writeText prints a plain text report with amounts in display.
func writeText(w io.Writer, r *report.Report, table *currency.Table, display string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	format := func(s report.Summary) {
		fmt.Fprintf(tw, "Income\t%s\t(%s transactions)\n", table.Format(s.TotalIncome, display), humanize.Comma(int64(s.IncomeCount)))
		fmt.Fprintf(tw, "Expenses\t%s\t(%s transactions)\n", table.Format(s.TotalExpenses, display), humanize.Comma(int64(s.ExpenseCount)))
		fmt.Fprintf(tw, "Net savings\t%s\t(%s%% saved)\n", table.Format(s.NetSavings, display), s.SavingsRate.StringFixed(1))
		fmt.Fprintf(tw, "Daily average expense\t%s\t\n", table.Format(s.DailyAverageExpense, display))
		if s.MostUsedCategory != "" {
			fmt.Fprintf(tw, "Most used category\t%s\t\n", s.MostUsedCategory)
		}
	}

	fmt.Fprintf(w, "Report %s to %s (%s days, %s)\n\n",
		r.Range.Start.Format("2006-01-02"), r.Range.End.Format("2006-01-02"),
		humanize.Comma(int64(r.Summary.Days)), display)

	format(r.Summary)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.ExpenseBreakdown) > 0 {
		fmt.Fprintln(w, "\nExpenses by category")
		for _, s := range r.ExpenseBreakdown {
			fmt.Fprintf(tw, "  %s\t%s\t%s%%\t%s\n", s.Category, table.Format(s.Total, display),
				s.Percentage.StringFixed(1), english.Plural(s.Count, "transaction", ""))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(r.MonthlyTrend) > 0 {
		fmt.Fprintln(w, "\nMonthly trend")
		for _, p := range r.MonthlyTrend {
			fmt.Fprintf(tw, "  %s\t+%s\t-%s\t= %s\n", p.Label,
				table.Format(p.Income, display), table.Format(p.Expense, display), table.Format(p.Net, display))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	mom := r.MonthOverMonth
	fmt.Fprintf(w, "\nMonth over month\n  Expenses: %s\n  Income: %s\n", mom.Expense.Label, mom.Income.Label)
	return nil
}
