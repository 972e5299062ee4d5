package period

import (
	"errors"
	"strings"
	"time"
)

// Preset names a report range relative to now.
type Preset string

const (
	ThisMonth   Preset = "this_month"
	LastMonths3 Preset = "last_3_months"
	LastMonths6 Preset = "last_6_months"
	ThisYear    Preset = "this_year"
	AllTime     Preset = "all_time"
	CustomRange Preset = "custom"
)

// DefaultRange is used when no preset is given.
const DefaultRange = ThisMonth

var (
	ErrUnknownPreset = errors.New("unknown range preset")
	ErrMissingBounds = errors.New("custom range requires from and to")
	ErrInvertedRange = errors.New("range start is after range end")
)

// ParsePreset maps a query value to a Preset. Empty input yields DefaultRange.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return DefaultRange, nil
	case ThisMonth, LastMonths3, LastMonths6, ThisYear, AllTime, CustomRange:
		return p, nil
	}
	return "", ErrUnknownPreset
}

// RangeRequest carries everything needed to resolve a report range.
// Earliest is the date of the oldest transaction, nil when there are none.
type RangeRequest struct {
	Preset   Preset
	Now      time.Time
	Earliest *time.Time
	From     *time.Time
	To       *time.Time
}

// ResolveRange turns a preset into a concrete window ending today. The
// "last N months" presets start on the first day of the month N-1 months back.
// Supplying From and To always yields a custom range.
func ResolveRange(req RangeRequest) (Window, error) {
	now := req.Now
	if req.From != nil || req.To != nil || req.Preset == CustomRange {
		if req.From == nil || req.To == nil {
			return Window{}, ErrMissingBounds
		}
		if req.From.After(*req.To) {
			return Window{}, ErrInvertedRange
		}
		return Between(*req.From, *req.To), nil
	}

	end := EndOfDay(now)
	switch req.Preset {
	case "", ThisMonth:
		return Window{Start: MonthStart(now), End: end}, nil
	case LastMonths3:
		return Window{Start: Month(now, 2).Start, End: end}, nil
	case LastMonths6:
		return Window{Start: Month(now, 5).Start, End: end}, nil
	case ThisYear:
		return Window{Start: Year(now).Start, End: end}, nil
	case AllTime:
		start := StartOfDay(now)
		if req.Earliest != nil && req.Earliest.Before(start) {
			start = StartOfDay(*req.Earliest)
		}
		return Window{Start: start, End: end}, nil
	}
	return Window{}, ErrUnknownPreset
}
