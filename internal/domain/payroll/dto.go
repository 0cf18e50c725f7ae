package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

// ========== PERIOD DTOs ==========

type GeneratePeriodsRequest struct {
	Config     PeriodConfig `json:"config"`
	RangeStart string       `json:"range_start"` // YYYY-MM-DD
	RangeEnd   string       `json:"range_end"`   // YYYY-MM-DD
}

func (r *GeneratePeriodsRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.RangeStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "range_start", Message: "must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.RangeEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "range_end", Message: "must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "range_end", Message: "must not be before range_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// ========== RUN DTOs ==========

type CreateRunRequest struct {
	Config    PeriodConfig `json:"config"`
	StartDate string       `json:"start_date"` // required for custom, optional otherwise
	EndDate   string       `json:"end_date"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if (r.StartDate == "") != (r.EndDate == "") {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date and end_date must be provided together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunFilter struct {
	Status    *string `json:"status,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RunFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if f.Status != nil {
		validStatuses := []string{
			string(RunStatusDraft), string(RunStatusCalculated),
			string(RunStatusCalculatedWithErrors), string(RunStatusApproved),
			string(RunStatusPaid),
		}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid run status"})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID           string       `json:"id"`
	CompanyID    string       `json:"company_id"`
	PeriodType   string       `json:"period_type"`
	PeriodConfig PeriodConfig `json:"period_config"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	Status       string       `json:"status"`

	TotalRegularHours  decimal.Decimal `json:"total_regular_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	WorkerCount        int             `json:"worker_count"`

	ProcessedAt *string `json:"processed_at,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	ApprovedBy  *string `json:"approved_by,omitempty"`

	Entries           []EntryResponse `json:"entries,omitempty"`
	CalculationErrors []WorkerError   `json:"calculation_errors,omitempty"`
}

type ListRunsResponse struct {
	Data       []RunResponse `json:"data"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

// WorkerError reports one worker the calculation pass could not compute.
// The rest of the batch proceeds without them.
type WorkerError struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name,omitempty"`
	Error      string `json:"error"`
}

type EntryResponse struct {
	ID         string  `json:"id"`
	RunID      string  `json:"run_id"`
	WorkerID   string  `json:"worker_id"`
	WorkerName string  `json:"worker_name,omitempty"`
	ProjectID  *string `json:"project_id,omitempty"`

	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	OvertimeRate  decimal.Decimal `json:"overtime_rate"`
	RegularPay    decimal.Decimal `json:"regular_pay"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	TotalPay      decimal.Decimal `json:"total_pay"`
	DaysWorked    int             `json:"days_worked"`

	AttendanceData []DailyBreakdown `json:"attendance_data,omitempty"`
	UnpairedEvents []UnpairedEvent  `json:"unpaired_events,omitempty"`
}

// ========== SUMMARY DTOs ==========

type SummaryResponse struct {
	TotalRegularHours  decimal.Decimal `json:"total_regular_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
	TotalRegularPay    decimal.Decimal `json:"total_regular_pay"`
	TotalOvertimePay   decimal.Decimal `json:"total_overtime_pay"`
	TotalPay           decimal.Decimal `json:"total_pay"`
	TotalDaysWorked    int             `json:"total_days_worked"`
	WorkerCount        int             `json:"worker_count"`
	AverageDailyHours  decimal.Decimal `json:"average_daily_hours"`
}

// ========== SETTINGS DTOs ==========

type CalcSettingsResponse struct {
	OvertimeMultiplier     decimal.Decimal `json:"overtime_multiplier"`
	DailyOvertimeThreshold decimal.Decimal `json:"daily_overtime_threshold"`
	StandardWorkdayHours   decimal.Decimal `json:"standard_workday_hours"`
	RoundingPrecision      int32           `json:"rounding_precision"`
	DefaultPeriodType      string          `json:"default_period_type"`
	ThresholdPolicy        string          `json:"threshold_policy"`
}

type UpdateCalcSettingsRequest struct {
	OvertimeMultiplier     *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	DailyOvertimeThreshold *decimal.Decimal `json:"daily_overtime_threshold,omitempty"`
	StandardWorkdayHours   *decimal.Decimal `json:"standard_workday_hours,omitempty"`
	RoundingPrecision      *int32           `json:"rounding_precision,omitempty"`
	DefaultPeriodType      *string          `json:"default_period_type,omitempty"`
	ThresholdPolicy        *string          `json:"threshold_policy,omitempty"`
}

func (r *UpdateCalcSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OvertimeMultiplier != nil && !r.OvertimeMultiplier.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be positive"})
	}
	if r.DailyOvertimeThreshold != nil && r.DailyOvertimeThreshold.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_overtime_threshold", Message: "must be non-negative"})
	}
	if r.StandardWorkdayHours != nil && !r.StandardWorkdayHours.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "standard_workday_hours", Message: "must be positive"})
	}
	if r.RoundingPrecision != nil && (*r.RoundingPrecision < 0 || *r.RoundingPrecision > 6) {
		errs = append(errs, validator.ValidationError{Field: "rounding_precision", Message: "must be between 0 and 6"})
	}
	if r.DefaultPeriodType != nil {
		validTypes := []string{
			string(PeriodWeekly), string(PeriodBiWeekly),
			string(PeriodMonthly), string(PeriodCustom),
		}
		if !validator.IsInSlice(*r.DefaultPeriodType, validTypes) {
			errs = append(errs, validator.ValidationError{Field: "default_period_type", Message: "invalid period type"})
		}
	}
	if r.ThresholdPolicy != nil {
		validPolicies := []string{string(PolicyPerInterval), string(PolicyPerDay)}
		if !validator.IsInSlice(*r.ThresholdPolicy, validPolicies) {
			errs = append(errs, validator.ValidationError{Field: "threshold_policy", Message: "must be per_interval or per_day"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
