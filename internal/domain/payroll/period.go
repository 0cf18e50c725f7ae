package payroll

import (
	"fmt"
	"time"

	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

// PeriodType enum
type PeriodType string

const (
	PeriodWeekly   PeriodType = "weekly"
	PeriodBiWeekly PeriodType = "bi_weekly"
	PeriodMonthly  PeriodType = "monthly"
	PeriodCustom   PeriodType = "custom"
)

// Period - A concrete date range, inclusive on both ends.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PeriodConfig is an enum-discriminated variant of the four period kinds.
// Exactly the variant matching Type carries parameters; Normalize fills the
// matching variant with defaults and drops the others, so mismatched key
// access cannot happen downstream.
type PeriodConfig struct {
	Type     PeriodType      `json:"type"`
	Weekly   *WeeklyParams   `json:"weekly,omitempty"`
	BiWeekly *BiWeeklyParams `json:"bi_weekly,omitempty"`
	Monthly  *MonthlyParams  `json:"monthly,omitempty"`
	Custom   *CustomParams   `json:"custom,omitempty"`
}

type WeeklyParams struct {
	WeekStartDay string `json:"week_start_day"` // "monday" .. "sunday"
}

type BiWeeklyParams struct {
	BaseDate string `json:"base_date"` // YYYY-MM-DD anchor
}

type MonthlyParams struct {
	DayOfMonth int `json:"day_of_month"` // clamped to [1,31]
}

type CustomParams struct {
	IntervalDays int `json:"interval_days"` // clamped to [1,365]
}

const (
	defaultWeekStartDay = "monday"
	defaultDayOfMonth   = 1
	defaultIntervalDays = 7
)

// Normalize validates the config, fills type-specific defaults and clamps
// out-of-range values. It fails with ErrUnsupportedPeriodType for unknown
// types; every period operation validates through here so the failure mode
// is identical across them.
func (c PeriodConfig) Normalize() (PeriodConfig, error) {
	out := PeriodConfig{Type: c.Type}

	switch c.Type {
	case PeriodWeekly:
		day := defaultWeekStartDay
		if c.Weekly != nil && c.Weekly.WeekStartDay != "" {
			if _, ok := validator.ParseWeekday(c.Weekly.WeekStartDay); !ok {
				return PeriodConfig{}, fmt.Errorf("%w: week_start_day %q", ErrInvalidPeriodConfig, c.Weekly.WeekStartDay)
			}
			day = c.Weekly.WeekStartDay
		}
		out.Weekly = &WeeklyParams{WeekStartDay: day}

	case PeriodBiWeekly:
		base := ""
		if c.BiWeekly != nil && c.BiWeekly.BaseDate != "" {
			if _, ok := validator.IsValidDate(c.BiWeekly.BaseDate); !ok {
				return PeriodConfig{}, fmt.Errorf("%w: base_date %q", ErrInvalidPeriodConfig, c.BiWeekly.BaseDate)
			}
			base = c.BiWeekly.BaseDate
		}
		// empty base date means start of year, resolved at generation time
		out.BiWeekly = &BiWeeklyParams{BaseDate: base}

	case PeriodMonthly:
		day := defaultDayOfMonth
		if c.Monthly != nil && c.Monthly.DayOfMonth != 0 {
			day = clamp(c.Monthly.DayOfMonth, 1, 31)
		}
		out.Monthly = &MonthlyParams{DayOfMonth: day}

	case PeriodCustom:
		interval := defaultIntervalDays
		if c.Custom != nil && c.Custom.IntervalDays != 0 {
			interval = clamp(c.Custom.IntervalDays, 1, 365)
		}
		out.Custom = &CustomParams{IntervalDays: interval}

	default:
		return PeriodConfig{}, fmt.Errorf("%w: %q", ErrUnsupportedPeriodType, string(c.Type))
	}

	return out, nil
}

// WeekStartWeekday resolves the configured anchor weekday. Only meaningful
// after Normalize on a weekly config.
func (c PeriodConfig) WeekStartWeekday() time.Weekday {
	if c.Weekly == nil {
		return time.Monday
	}
	if d, ok := validator.ParseWeekday(c.Weekly.WeekStartDay); ok {
		return d
	}
	return time.Monday
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
