package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RunTotals carries the run-level aggregates recomputed from entries.
type RunTotals struct {
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	TotalAmount   decimal.Decimal
	WorkerCount   int
}

// PayrollRepository defines data access methods for payroll runs and entries.
// All methods include companyID to prevent cross-company data access.
type PayrollRepository interface {
	// Runs
	CreateRun(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetRunByID(ctx context.Context, id string, companyID string) (PayrollRun, error)
	GetRunByPeriod(ctx context.Context, companyID string, start, end time.Time) (PayrollRun, error)
	ListRuns(ctx context.Context, companyID string, filter RunFilter) ([]PayrollRun, int64, error)
	UpdateRunStatus(ctx context.Context, companyID string, id string, status RunStatus, approvedBy *string) (PayrollRun, error)
	UpdateRunTotals(ctx context.Context, companyID string, id string, totals RunTotals) error
	DeleteRun(ctx context.Context, id string, companyID string) error

	// ReplaceRunEntries atomically swaps the run's entries and persists the
	// recomputed totals, status and processed_at. All-or-nothing: a reader
	// never observes an inconsistent entries/totals pair.
	ReplaceRunEntries(ctx context.Context, run PayrollRun, entries []PayrollEntry) (PayrollRun, error)

	// Entries
	ListEntriesByRun(ctx context.Context, runID string, companyID string) ([]PayrollEntry, error)
	GetEntryByID(ctx context.Context, id string, companyID string) (PayrollEntry, error)
}
