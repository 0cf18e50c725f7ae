package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum. Strict forward state machine:
// draft -> calculated -> approved -> paid. A calculation pass that could not
// compute every worker lands in calculated_with_errors; the run must be
// recalculated clean before it can be approved.
type RunStatus string

const (
	RunStatusDraft                RunStatus = "draft"
	RunStatusCalculated           RunStatus = "calculated"
	RunStatusCalculatedWithErrors RunStatus = "calculated_with_errors"
	RunStatusApproved             RunStatus = "approved"
	RunStatusPaid                 RunStatus = "paid"
)

// PayrollRun - One payroll cycle over a period. Owns a collection of entries;
// the aggregate totals are a cached derivative of those entries and are only
// ever written by a totals recalculation, never hand-edited.
type PayrollRun struct {
	ID           string
	CompanyID    string
	PeriodType   PeriodType
	PeriodConfig PeriodConfig
	StartDate    time.Time
	EndDate      time.Time
	Status       RunStatus

	TotalRegularHours  decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	TotalAmount        decimal.Decimal
	WorkerCount        int

	ProcessedAt *time.Time
	ApprovedAt  *time.Time
	ApprovedBy  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Transition guards, consumed by the service and by controller-layer
// authorization.

func (r *PayrollRun) CanBeCalculated() bool {
	return r.Status == RunStatusDraft
}

func (r *PayrollRun) CanBeApproved() bool {
	return r.Status == RunStatusCalculated
}

func (r *PayrollRun) CanBeMarkedAsPaid() bool {
	return r.Status == RunStatusApproved
}

func (r *PayrollRun) CanBeEdited() bool {
	switch r.Status {
	case RunStatusDraft, RunStatusCalculated, RunStatusCalculatedWithErrors:
		return true
	}
	return false
}

func (r *PayrollRun) CanBeDeleted() bool {
	return r.Status == RunStatusDraft
}

// PayrollEntry - One worker's computed pay within a run. Created once per
// calculation pass and replaced wholesale on recalculation; never exists
// without its parent run.
type PayrollEntry struct {
	ID        string
	RunID     string
	WorkerID  string
	ProjectID *string

	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	HourlyRate    decimal.Decimal
	OvertimeRate  decimal.Decimal
	RegularPay    decimal.Decimal
	OvertimePay   decimal.Decimal
	TotalPay      decimal.Decimal
	DaysWorked    int

	// AttendanceData is the per-day audit breakdown, persisted as JSON so
	// downstream payslip rendering stays stable.
	AttendanceData []DailyBreakdown

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	WorkerName *string
}

// WorkedInterval - A reconstructed in/out pair within one calendar day.
// ClockOut is strictly later than ClockIn.
type WorkedInterval struct {
	Date     time.Time
	ClockIn  time.Time
	ClockOut time.Time
	Hours    decimal.Decimal
}

// DailyBreakdown - Hours detail for one calendar day of one worker.
// RegularHours + OvertimeHours always equals TotalHours.
type DailyBreakdown struct {
	Date          string           `json:"date"` // YYYY-MM-DD
	TotalHours    decimal.Decimal  `json:"total_hours"`
	RegularHours  decimal.Decimal  `json:"regular_hours"`
	OvertimeHours decimal.Decimal  `json:"overtime_hours"`
	Records       []IntervalRecord `json:"records"`
}

// IntervalRecord - One paired punch inside a daily breakdown.
type IntervalRecord struct {
	ClockIn  string          `json:"clock_in"`  // HH:MM:SS
	ClockOut string          `json:"clock_out"` // HH:MM:SS
	Hours    decimal.Decimal `json:"hours"`
}

// UnpairedEvent - Diagnostic record for a punch the pairing walk could not
// match. Reported to the caller, excluded from pay.
type UnpairedEvent struct {
	WorkerID  string    `json:"worker_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// ThresholdPolicy names how the daily overtime threshold is applied.
// PolicyPerInterval mirrors the historical behavior: two sub-threshold
// intervals in one day never trigger overtime even when their sum exceeds
// the threshold. PolicyPerDay applies the threshold to the summed day total.
type ThresholdPolicy string

const (
	PolicyPerInterval ThresholdPolicy = "per_interval"
	PolicyPerDay      ThresholdPolicy = "per_day"
)

// CalcSettings - The configuration snapshot one calculation batch runs
// under. Read once per run so every entry is computed with identical values
// even if stored settings change mid-run.
type CalcSettings struct {
	OvertimeMultiplier     decimal.Decimal
	DailyOvertimeThreshold decimal.Decimal
	StandardWorkdayHours   decimal.Decimal
	RoundingPrecision      int32
	DefaultPeriodType      PeriodType
	ThresholdPolicy        ThresholdPolicy
}
