package payroll

import "errors"

var (
	ErrUnsupportedPeriodType     = errors.New("unsupported period type")
	ErrInvalidPeriodConfig       = errors.New("invalid period configuration")
	ErrCustomPeriodRequiresDates = errors.New("custom periods require explicit dates")
	ErrMissingDailyRate          = errors.New("worker has no daily rate configured")
	ErrRunNotFound               = errors.New("payroll run not found")
	ErrEntryNotFound             = errors.New("payroll entry not found")
	ErrRunAlreadyExists          = errors.New("payroll run already exists for this period")
	ErrRunNotEditable            = errors.New("payroll run can no longer be edited")
	ErrRunNotDeletable           = errors.New("only draft payroll runs can be deleted")
	ErrInvalidStatusTransition   = errors.New("invalid payroll run status transition")
	ErrRunHasCalculationErrors   = errors.New("payroll run has calculation errors and must be recalculated")
)
