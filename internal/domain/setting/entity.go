package setting

import "time"

// ValueType tags how a setting value is serialized and parsed.
type ValueType string

const (
	TypeBool   ValueType = "bool"
	TypeInt    ValueType = "int"
	TypeFloat  ValueType = "float"
	TypeString ValueType = "string"
	TypeJSON   ValueType = "json"
)

// Setting - One typed key/value configuration row per company. The value is
// stored as text and re-serialized according to its declared type.
type Setting struct {
	ID        string
	CompanyID string
	Key       string
	Value     string
	Type      ValueType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Keys consumed by the payroll calculator.
const (
	KeyOvertimeMultiplier     = "payroll.overtime_multiplier"
	KeyDailyOvertimeThreshold = "payroll.daily_overtime_threshold"
	KeyStandardWorkdayHours   = "payroll.standard_workday_hours"
	KeyRoundingPrecision      = "payroll.rounding_precision"
	KeyDefaultPeriodType      = "payroll.default_period_type"
	KeyThresholdPolicy        = "payroll.threshold_policy"
)
