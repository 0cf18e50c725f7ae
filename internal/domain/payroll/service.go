package payroll

import (
	"context"
	"time"
)

// PayrollService is the application surface for payroll runs.
// companyID is threaded explicitly on every call; the core never reads
// tenant identity from ambient state.
type PayrollService interface {
	// Periods
	GeneratePeriods(cfg PeriodConfig, rangeStart, rangeEnd time.Time) ([]Period, error)
	CurrentPeriod(cfg PeriodConfig) (Period, error)
	NextPeriod(cfg PeriodConfig) (Period, error)
	ValidatePeriodConfig(cfg PeriodConfig) (PeriodConfig, error)

	// Runs
	CreateRun(ctx context.Context, companyID string, req CreateRunRequest) (RunResponse, error)
	GetRun(ctx context.Context, companyID string, id string) (RunResponse, error)
	ListRuns(ctx context.Context, companyID string, filter RunFilter) (ListRunsResponse, error)
	CalculateRun(ctx context.Context, companyID string, id string) (RunResponse, error)
	ApproveRun(ctx context.Context, companyID string, id string, approverID string) (RunResponse, error)
	MarkRunPaid(ctx context.Context, companyID string, id string) (RunResponse, error)
	DeleteRun(ctx context.Context, companyID string, id string) error
	RecalculateTotals(ctx context.Context, companyID string, runID string) (RunResponse, error)

	// Per-worker calculation and reporting
	CalculateWorkerPayroll(ctx context.Context, companyID string, workerID string, start, end time.Time) (EntryResponse, error)
	GetRunSummary(ctx context.Context, companyID string, runID string) (SummaryResponse, error)
	GetEntry(ctx context.Context, companyID string, id string) (EntryResponse, error)
}
