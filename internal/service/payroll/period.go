package payroll

import (
	"fmt"
	"time"

	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
)

// PeriodGenerator produces concrete date ranges from a period configuration,
// independent of any persisted run. All dates are calendar days at midnight
// UTC; periods are inclusive on both ends.
type PeriodGenerator struct {
	now func() time.Time
}

func NewPeriodGenerator() *PeriodGenerator {
	return &PeriodGenerator{now: time.Now}
}

// NewPeriodGeneratorAt pins "now" for current/next period computation.
func NewPeriodGeneratorAt(now func() time.Time) *PeriodGenerator {
	return &PeriodGenerator{now: now}
}

// GeneratePeriods returns the ordered periods of the configured type that
// fall within [rangeStart, rangeEnd].
func (g *PeriodGenerator) GeneratePeriods(cfg payroll.PeriodConfig, rangeStart, rangeEnd time.Time) ([]payroll.Period, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	rangeStart = truncateDay(rangeStart)
	rangeEnd = truncateDay(rangeEnd)
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("%w: range end before range start", payroll.ErrInvalidPeriodConfig)
	}

	switch cfg.Type {
	case payroll.PeriodWeekly:
		return g.weeklyPeriods(cfg, rangeStart, rangeEnd), nil
	case payroll.PeriodBiWeekly:
		return g.biWeeklyPeriods(cfg, rangeStart, rangeEnd), nil
	case payroll.PeriodMonthly:
		return g.monthlyPeriods(cfg, rangeStart, rangeEnd), nil
	case payroll.PeriodCustom:
		return g.customPeriods(cfg, rangeStart, rangeEnd), nil
	}
	return nil, fmt.Errorf("%w: %q", payroll.ErrUnsupportedPeriodType, string(cfg.Type))
}

// CurrentPeriod returns the period containing today. Custom periods carry no
// anchor, so "current" is undefined for them.
func (g *PeriodGenerator) CurrentPeriod(cfg payroll.PeriodConfig) (payroll.Period, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return payroll.Period{}, err
	}

	today := truncateDay(g.now())

	switch cfg.Type {
	case payroll.PeriodWeekly:
		start := weekBoundaryAtOrBefore(today, cfg.WeekStartWeekday())
		return payroll.Period{Start: start, End: start.AddDate(0, 0, 6)}, nil

	case payroll.PeriodBiWeekly:
		base := g.biWeeklyBase(cfg, today)
		start := base
		if today.Before(base) {
			return payroll.Period{Start: base, End: base.AddDate(0, 0, 13)}, nil
		}
		days := int(today.Sub(base).Hours() / 24)
		start = base.AddDate(0, 0, (days/14)*14)
		return payroll.Period{Start: start, End: start.AddDate(0, 0, 13)}, nil

	case payroll.PeriodMonthly:
		start := monthlyAnchor(today.Year(), today.Month(), cfg.Monthly.DayOfMonth)
		if today.Before(start) {
			endOfPrev := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
			start = monthlyAnchor(endOfPrev.Year(), endOfPrev.Month(), cfg.Monthly.DayOfMonth)
		}
		next := nextMonthAnchor(start, cfg.Monthly.DayOfMonth)
		return payroll.Period{Start: start, End: next.AddDate(0, 0, -1)}, nil

	case payroll.PeriodCustom:
		return payroll.Period{}, fmt.Errorf("%w: %w", payroll.ErrUnsupportedPeriodType, payroll.ErrCustomPeriodRequiresDates)
	}
	return payroll.Period{}, fmt.Errorf("%w: %q", payroll.ErrUnsupportedPeriodType, string(cfg.Type))
}

// NextPeriod returns the period immediately after the current one: the
// current end plus one day as the new start, with a type-specific end offset.
func (g *PeriodGenerator) NextPeriod(cfg payroll.PeriodConfig) (payroll.Period, error) {
	current, err := g.CurrentPeriod(cfg)
	if err != nil {
		return payroll.Period{}, err
	}

	start := current.End.AddDate(0, 0, 1)
	switch cfg.Type {
	case payroll.PeriodWeekly:
		return payroll.Period{Start: start, End: start.AddDate(0, 0, 6)}, nil
	case payroll.PeriodBiWeekly:
		return payroll.Period{Start: start, End: start.AddDate(0, 0, 13)}, nil
	case payroll.PeriodMonthly:
		cfg, err := cfg.Normalize()
		if err != nil {
			return payroll.Period{}, err
		}
		next := nextMonthAnchor(start, cfg.Monthly.DayOfMonth)
		return payroll.Period{Start: start, End: next.AddDate(0, 0, -1)}, nil
	}
	return payroll.Period{}, fmt.Errorf("%w: %q", payroll.ErrUnsupportedPeriodType, string(cfg.Type))
}

// ValidatePeriodConfig normalizes and validates a period configuration,
// filling defaults and clamping out-of-range values.
func (g *PeriodGenerator) ValidatePeriodConfig(cfg payroll.PeriodConfig) (payroll.PeriodConfig, error) {
	return cfg.Normalize()
}

func (g *PeriodGenerator) weeklyPeriods(cfg payroll.PeriodConfig, rangeStart, rangeEnd time.Time) []payroll.Period {
	start := weekBoundaryAtOrBefore(rangeStart, cfg.WeekStartWeekday())
	// boundary outside the range means the first full week starts later
	if start.Before(rangeStart) {
		start = start.AddDate(0, 0, 7)
	}

	var periods []payroll.Period
	for !start.After(rangeEnd) {
		periods = append(periods, payroll.Period{Start: start, End: start.AddDate(0, 0, 6)})
		start = start.AddDate(0, 0, 7)
	}
	return periods
}

func (g *PeriodGenerator) biWeeklyPeriods(cfg payroll.PeriodConfig, rangeStart, rangeEnd time.Time) []payroll.Period {
	start := g.biWeeklyBase(cfg, rangeStart)
	// advance in fixed 14-day blocks until the block overlaps the range
	for start.AddDate(0, 0, 13).Before(rangeStart) {
		start = start.AddDate(0, 0, 14)
	}

	var periods []payroll.Period
	for !start.After(rangeEnd) {
		periods = append(periods, payroll.Period{Start: start, End: start.AddDate(0, 0, 13)})
		start = start.AddDate(0, 0, 14)
	}
	return periods
}

func (g *PeriodGenerator) monthlyPeriods(cfg payroll.PeriodConfig, rangeStart, rangeEnd time.Time) []payroll.Period {
	day := cfg.Monthly.DayOfMonth
	start := monthlyAnchor(rangeStart.Year(), rangeStart.Month(), day)
	if start.Before(rangeStart) {
		start = nextMonthAnchor(rangeStart, day)
	}

	var periods []payroll.Period
	for !start.After(rangeEnd) {
		next := nextMonthAnchor(start, day)
		periods = append(periods, payroll.Period{Start: start, End: next.AddDate(0, 0, -1)})
		start = next
	}
	return periods
}

func (g *PeriodGenerator) customPeriods(cfg payroll.PeriodConfig, rangeStart, rangeEnd time.Time) []payroll.Period {
	interval := cfg.Custom.IntervalDays

	var periods []payroll.Period
	start := rangeStart
	for !start.After(rangeEnd) {
		end := start.AddDate(0, 0, interval-1)
		if end.After(rangeEnd) {
			end = rangeEnd // final window truncated
		}
		periods = append(periods, payroll.Period{Start: start, End: end})
		start = end.AddDate(0, 0, 1)
	}
	return periods
}

// biWeeklyBase resolves the bi-weekly anchor: the configured base date, or
// the start of the reference date's year when none is set.
func (g *PeriodGenerator) biWeeklyBase(cfg payroll.PeriodConfig, ref time.Time) time.Time {
	if cfg.BiWeekly != nil && cfg.BiWeekly.BaseDate != "" {
		if t, err := time.Parse("2006-01-02", cfg.BiWeekly.BaseDate); err == nil {
			return truncateDay(t)
		}
	}
	return time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// weekBoundaryAtOrBefore returns the latest date with the given weekday that
// is not after t.
func weekBoundaryAtOrBefore(t time.Time, day time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(day) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// monthlyAnchor returns the anchor date for the given month, with the
// configured day clamped to the month's length.
func monthlyAnchor(year int, month time.Month, day int) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// nextMonthAnchor steps from one anchor to the next calendar month's anchor.
// Stepping via the first of the month avoids AddDate overflow when the
// current anchor sits past the next month's length (Jan 31 -> Feb 28).
func nextMonthAnchor(start time.Time, day int) time.Time {
	firstOfNext := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return monthlyAnchor(firstOfNext.Year(), firstOfNext.Month(), day)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
