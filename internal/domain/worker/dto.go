package worker

import (
	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	Name      string           `json:"name"`
	ProjectID *string          `json:"project_id,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Trade     *string          `json:"trade,omitempty"`
	DailyRate *decimal.Decimal `json:"daily_rate,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.DailyRate != nil && r.DailyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkerRequest struct {
	ID        string           `json:"-"`
	Name      *string          `json:"name,omitempty"`
	ProjectID *string          `json:"project_id,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Trade     *string          `json:"trade,omitempty"`
	DailyRate *decimal.Decimal `json:"daily_rate,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.DailyRate != nil && r.DailyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkerResponse struct {
	ID          string           `json:"id"`
	CompanyID   string           `json:"company_id"`
	ProjectID   *string          `json:"project_id,omitempty"`
	ProjectName *string          `json:"project_name,omitempty"`
	Name        string           `json:"name"`
	Phone       *string          `json:"phone,omitempty"`
	Trade       *string          `json:"trade,omitempty"`
	DailyRate   *decimal.Decimal `json:"daily_rate,omitempty"`
	IsActive    bool             `json:"is_active"`
}
