package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker - Laborer registered by a company and assignable to a project.
// DailyRate is the agreed pay for one standard workday; payroll derives the
// hourly rate from it.
type Worker struct {
	ID        string
	CompanyID string
	ProjectID *string
	Name      string
	Phone     *string
	Trade     *string
	DailyRate *decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	ProjectName *string
}
