package response

import (
	"errors"
	"net/http"

	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/domain/setting"
	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrUnsupportedPeriodType),
		errors.Is(err, payroll.ErrInvalidPeriodConfig),
		errors.Is(err, payroll.ErrCustomPeriodRequiresDates):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrRunAlreadyExists):
		Conflict(w, "Payroll run already exists for this period")
	case errors.Is(err, payroll.ErrRunNotEditable):
		Conflict(w, "Payroll run can no longer be edited")
	case errors.Is(err, payroll.ErrRunNotDeletable):
		Conflict(w, "Only draft payroll runs can be deleted")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		Conflict(w, "Invalid payroll run status transition")
	case errors.Is(err, payroll.ErrRunHasCalculationErrors):
		Conflict(w, "Payroll run has calculation errors and must be recalculated")
	case errors.Is(err, payroll.ErrMissingDailyRate):
		BadRequest(w, "Worker has no daily rate configured", nil)

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerInactive):
		BadRequest(w, "Worker is inactive", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrInvalidEventKind):
		BadRequest(w, "Invalid attendance event kind", nil)

	// Settings domain errors
	case errors.Is(err, setting.ErrSettingNotFound):
		NotFound(w, "Setting not found")
	case errors.Is(err, setting.ErrInvalidValueType), errors.Is(err, setting.ErrValueParse):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
