package services

import (
	"errors"

	"fintrack/internal/budget"
	"fintrack/internal/clock"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/ledger"
	"fintrack/internal/period"
	"fintrack/internal/report"
)

// analyticsService loads a fresh snapshot per call and hands it to the
// aggregation core.
type analyticsService struct {
	loader     SnapshotLoader
	aggregator *report.Aggregator
	evaluator  *budget.Evaluator
	clock      clock.Clock
}

// NewAnalyticsService creates a new AnalyticsServicer. A nil clk means the
// system clock.
func NewAnalyticsService(loader SnapshotLoader, aggregator *report.Aggregator, evaluator *budget.Evaluator, clk clock.Clock) AnalyticsServicer {
	if clk == nil {
		clk = clock.System{}
	}
	return &analyticsService{
		loader:     loader,
		aggregator: aggregator,
		evaluator:  evaluator,
		clock:      clk,
	}
}

// Dashboard builds the dashboard as of now.
func (s *analyticsService) Dashboard() (*report.Dashboard, error) {
	snap, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	d := s.aggregator.BuildDashboard(snap.Transactions, snap.Budgets, snap.Categories, s.clock.Now())
	return &d, nil
}

// Report resolves the requested range and builds the report over it.
func (s *analyticsService) Report(req ReportRequest) (*report.Report, error) {
	snap, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rr := period.RangeRequest{
		Preset: req.Preset,
		Now:    now,
		From:   req.From,
		To:     req.To,
	}
	if earliest, ok := ledger.New(s.aggregator.Table(), snap.Transactions).Earliest(); ok {
		rr.Earliest = &earliest
	}

	rng, err := period.ResolveRange(rr)
	if err != nil {
		return nil, rangeError(err)
	}

	r := s.aggregator.BuildReport(snap.Transactions, snap.Categories, rng, now)
	return &r, nil
}

// BudgetStatuses evaluates every budget as of now.
func (s *analyticsService) BudgetStatuses() ([]budget.Status, error) {
	snap, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	return s.evaluator.EvaluateAt(snap.Budgets, snap.Transactions, snap.Categories, s.clock.Now()), nil
}

func rangeError(err error) error {
	switch {
	case errors.Is(err, period.ErrUnknownPreset):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "range must be one of this_month, last_3_months, last_6_months, this_year, all_time")
	case errors.Is(err, period.ErrMissingBounds):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "custom range requires both from and to")
	case errors.Is(err, period.ErrInvertedRange):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "from must not be after to")
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
