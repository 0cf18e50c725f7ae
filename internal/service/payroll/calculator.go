package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
)

// Calculator turns worked intervals into hours and hours into pay under one
// settings snapshot. Construct a fresh Calculator per calculation batch so
// every entry in a run uses identical threshold/multiplier values.
type Calculator struct {
	settings payroll.CalcSettings
}

func NewCalculator(settings payroll.CalcSettings) *Calculator {
	return &Calculator{settings: settings}
}

// Settings returns the snapshot this calculator runs under.
func (c *Calculator) Settings() payroll.CalcSettings {
	return c.settings
}

// WorkerPayroll is the full calculation result for one worker over a window.
type WorkerPayroll struct {
	WorkerID      string
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	HourlyRate    decimal.Decimal
	OvertimeRate  decimal.Decimal
	RegularPay    decimal.Decimal
	OvertimePay   decimal.Decimal
	TotalPay      decimal.Decimal
	DaysWorked    int
	Breakdown     []payroll.DailyBreakdown
	Unpaired      []payroll.UnpairedEvent
}

// CalculateWorkerPayroll pairs the worker's events and derives hours and pay.
// No events in range is a legitimate zero-value result, not an error. A
// worker without a usable daily rate fails with ErrMissingDailyRate.
func (c *Calculator) CalculateWorkerPayroll(w worker.Worker, events []attendance.Event) (WorkerPayroll, error) {
	if w.DailyRate == nil || w.DailyRate.IsZero() {
		return WorkerPayroll{}, payroll.ErrMissingDailyRate
	}

	hourlyRate := w.DailyRate.Div(c.settings.StandardWorkdayHours)
	overtimeRate := hourlyRate.Mul(c.settings.OvertimeMultiplier)

	paired := PairEvents(events)

	var dayKeys []string
	for key := range paired.Days {
		dayKeys = append(dayKeys, key)
	}
	sort.Strings(dayKeys)

	totalRegular := decimal.Zero
	totalOvertime := decimal.Zero
	daysWorked := 0
	var breakdown []payroll.DailyBreakdown

	for _, key := range dayKeys {
		day, regular, overtime := c.dayBreakdown(key, paired.Days[key])
		if day.TotalHours.IsPositive() {
			daysWorked++
		}
		totalRegular = totalRegular.Add(regular)
		totalOvertime = totalOvertime.Add(overtime)
		breakdown = append(breakdown, day)
	}

	regularPay := totalRegular.Mul(hourlyRate)
	overtimePay := totalOvertime.Mul(overtimeRate)

	p := c.settings.RoundingPrecision
	return WorkerPayroll{
		WorkerID:      w.ID,
		RegularHours:  totalRegular.Round(p),
		OvertimeHours: totalOvertime.Round(p),
		HourlyRate:    hourlyRate.Round(p),
		OvertimeRate:  overtimeRate.Round(p),
		RegularPay:    regularPay.Round(p),
		OvertimePay:   overtimePay.Round(p),
		TotalPay:      regularPay.Add(overtimePay).Round(p),
		DaysWorked:    daysWorked,
		Breakdown:     breakdown,
		Unpaired:      paired.Unpaired,
	}, nil
}

// dayBreakdown splits one day's intervals into regular and overtime hours
// under the configured threshold policy. The returned regular/overtime pair
// is unrounded so aggregation does not accumulate rounding error; the
// breakdown itself carries display-rounded values.
func (c *Calculator) dayBreakdown(dateKey string, intervals []payroll.WorkedInterval) (payroll.DailyBreakdown, decimal.Decimal, decimal.Decimal) {
	threshold := c.settings.DailyOvertimeThreshold
	p := c.settings.RoundingPrecision

	total := decimal.Zero
	overtime := decimal.Zero
	records := make([]payroll.IntervalRecord, 0, len(intervals))

	for _, iv := range intervals {
		total = total.Add(iv.Hours)
		if c.settings.ThresholdPolicy == payroll.PolicyPerInterval {
			if over := iv.Hours.Sub(threshold); over.IsPositive() {
				overtime = overtime.Add(over)
			}
		}
		records = append(records, payroll.IntervalRecord{
			ClockIn:  iv.ClockIn.Format("15:04:05"),
			ClockOut: iv.ClockOut.Format("15:04:05"),
			Hours:    iv.Hours.Round(p),
		})
	}

	if c.settings.ThresholdPolicy == payroll.PolicyPerDay {
		if over := total.Sub(threshold); over.IsPositive() {
			overtime = over
		}
	}

	regular := total.Sub(overtime)
	day := payroll.DailyBreakdown{
		Date:          dateKey,
		TotalHours:    total.Round(p),
		RegularHours:  regular.Round(p),
		OvertimeHours: overtime.Round(p),
		Records:       records,
	}
	return day, regular, overtime
}

// Summarize aggregates statistics over a collection of entries for run and
// report display.
func (c *Calculator) Summarize(entries []payroll.PayrollEntry) payroll.SummaryResponse {
	p := c.settings.RoundingPrecision

	regularHours := decimal.Zero
	overtimeHours := decimal.Zero
	regularPay := decimal.Zero
	overtimePay := decimal.Zero
	totalPay := decimal.Zero
	daysWorked := 0

	for _, e := range entries {
		regularHours = regularHours.Add(e.RegularHours)
		overtimeHours = overtimeHours.Add(e.OvertimeHours)
		regularPay = regularPay.Add(e.RegularPay)
		overtimePay = overtimePay.Add(e.OvertimePay)
		totalPay = totalPay.Add(e.TotalPay)
		daysWorked += e.DaysWorked
	}

	averageDaily := decimal.Zero
	if daysWorked > 0 {
		totalHours := regularHours.Add(overtimeHours)
		averageDaily = totalHours.Div(decimal.NewFromInt(int64(daysWorked)))
	}

	return payroll.SummaryResponse{
		TotalRegularHours:  regularHours.Round(p),
		TotalOvertimeHours: overtimeHours.Round(p),
		TotalRegularPay:    regularPay.Round(p),
		TotalOvertimePay:   overtimePay.Round(p),
		TotalPay:           totalPay.Round(p),
		TotalDaysWorked:    daysWorked,
		WorkerCount:        len(entries),
		AverageDailyHours:  averageDaily.Round(p),
	}
}
