package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"

	"fintrack/internal/budget"
	"fintrack/internal/chart"
	"fintrack/internal/clock"
	"fintrack/internal/config"
	"fintrack/internal/currency"
	"fintrack/internal/database"
	"fintrack/internal/export"
	"fintrack/internal/logger"
	"fintrack/internal/period"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

const (
	formatText        = "text"
	formatXLSX        = "xlsx"
	formatMonthlyPNG  = "monthly-png"
	formatExpensesPNG = "expenses-png"
)

// Args are the command line arguments of the report tool.
type Args struct {
	Range    string `arg:"positional" default:"this_month" help:"this_month, last_3_months, last_6_months, this_year, all_time or custom"`
	From     string `arg:"--from" help:"Start of a custom range (YYYY-MM-DD)"`
	To       string `arg:"--to" help:"End of a custom range (YYYY-MM-DD)"`
	Currency string `arg:"-c,--currency" help:"Display currency. Defaults to the stored setting."`
	Format   string `arg:"-f,--format" default:"text" help:"text, xlsx, monthly-png or expenses-png"`
	Output   string `arg:"-o,--output" help:"Output file. Required for xlsx and png, stdout for text when empty."`
}

// Version is set with -ldflags at build time.
var Version = "development"

func (Args) Version() string {
	return Version
}

func (Args) Description() string {
	return "fintrack-report prints or exports a report over the stored transactions."
}

func main() {
	var args Args
	p, err := arg.NewParser(arg.Config{Program: "fintrack-report"}, &args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating argument parser: %v\n", err)
		os.Exit(2)
	}
	if err := p.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			p.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		if errors.Is(err, arg.ErrVersion) {
			fmt.Println(Version)
			os.Exit(0)
		}
		p.Fail(err.Error())
	}
	if err := args.validate(); err != nil {
		p.Fail(err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, args); err != nil {
		logger.Named("report").Fatalf("Report failed: %v", err)
	}
}

func (a Args) validate() error {
	switch a.Format {
	case formatText:
	case formatXLSX, formatMonthlyPNG, formatExpensesPNG:
		if a.Output == "" {
			return fmt.Errorf("--output is required for format %s", a.Format)
		}
	default:
		return fmt.Errorf("unknown format %q, supported: %s", a.Format,
			strings.Join([]string{formatText, formatXLSX, formatMonthlyPNG, formatExpensesPNG}, ", "))
	}
	if _, err := period.ParsePreset(a.Range); err != nil {
		return fmt.Errorf("unknown range %q", a.Range)
	}
	return nil
}

// request converts the arguments into a report request.
func (a Args) request() (services.ReportRequest, error) {
	preset, err := period.ParsePreset(a.Range)
	if err != nil {
		return services.ReportRequest{}, err
	}
	req := services.ReportRequest{Preset: preset}
	if a.From != "" {
		from, err := parseDate(a.From)
		if err != nil {
			return req, err
		}
		req.From = &from
	}
	if a.To != "" {
		to, err := parseDate(a.To)
		if err != nil {
			return req, err
		}
		req.To = &to
	}
	return req, nil
}

func run(cfg *config.Config, args Args) error {
	log := logger.Named("report")

	table, err := loadTable(cfg.CurrencyTablePath)
	if err != nil {
		return err
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return err
	}
	defer dbManager.Close()
	db := dbManager.DB()

	display := args.Currency
	if display == "" {
		if display, err = services.NewSettingsService(db, table, cfg.DisplayCurrency).GetDisplayCurrency(); err != nil {
			return err
		}
	}
	if !table.Known(display) {
		return fmt.Errorf("unknown currency %q", display)
	}
	display = table.Lookup(display).Code

	req, err := args.request()
	if err != nil {
		return err
	}

	clk := clock.System{}
	evaluator := budget.NewEvaluator(table, clk)
	analytics := services.NewAnalyticsService(
		services.NewSnapshotLoader(db, table.Base().Code),
		report.NewAggregator(table, evaluator),
		evaluator,
		clk,
	)
	r, err := analytics.Report(req)
	if err != nil {
		return err
	}
	log.Debugw("report built", "start", r.Range.Start, "end", r.Range.End, "transactions", r.Summary.TransactionCount)

	if args.Format == formatText {
		out := io.Writer(os.Stdout)
		if args.Output != "" {
			f, err := os.Create(args.Output)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return writeText(out, r, table, display)
	}

	if r.Summary.TransactionCount == 0 {
		return errors.New("no transactions in the selected range")
	}

	f, err := os.Create(args.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := chart.Options{Table: table, Display: display}
	switch args.Format {
	case formatXLSX:
		err = export.NewWriter(table, display).Report(f, r)
	case formatMonthlyPNG:
		err = chart.MonthlyTrend(f, r.MonthlyTrend, opts)
	case formatExpensesPNG:
		err = chart.ExpenseBreakdown(f, r.ExpenseBreakdown, opts)
	}
	if err != nil {
		return err
	}

	log.Infow("report written", "path", args.Output, "format", args.Format)
	return nil
}

func loadTable(path string) (*currency.Table, error) {
	if path == "" {
		return currency.NewTable(currency.DefaultConfig())
	}
	tableCfg, err := currency.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return currency.NewTable(tableCfg)
}
