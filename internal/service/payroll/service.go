package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
	"github.com/sitecrew/workforce-backend-go/internal/service/settings"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.EventRepository
	resolver       *settings.Resolver
	periods        *PeriodGenerator
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.EventRepository,
	resolver *settings.Resolver,
	periods *PeriodGenerator,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		resolver:       resolver,
		periods:        periods,
	}
}

// ========== PERIODS ==========

func (s *PayrollServiceImpl) GeneratePeriods(cfg payroll.PeriodConfig, rangeStart, rangeEnd time.Time) ([]payroll.Period, error) {
	return s.periods.GeneratePeriods(cfg, rangeStart, rangeEnd)
}

func (s *PayrollServiceImpl) CurrentPeriod(cfg payroll.PeriodConfig) (payroll.Period, error) {
	return s.periods.CurrentPeriod(cfg)
}

func (s *PayrollServiceImpl) NextPeriod(cfg payroll.PeriodConfig) (payroll.Period, error) {
	return s.periods.NextPeriod(cfg)
}

func (s *PayrollServiceImpl) ValidatePeriodConfig(cfg payroll.PeriodConfig) (payroll.PeriodConfig, error) {
	return s.periods.ValidatePeriodConfig(cfg)
}

// ========== RUNS ==========

func (s *PayrollServiceImpl) CreateRun(ctx context.Context, companyID string, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	cfg, err := req.Config.Normalize()
	if err != nil {
		return payroll.RunResponse{}, err
	}

	var period payroll.Period
	if req.StartDate != "" {
		start, _ := time.Parse("2006-01-02", req.StartDate)
		end, _ := time.Parse("2006-01-02", req.EndDate)
		if end.Before(start) {
			return payroll.RunResponse{}, fmt.Errorf("%w: end_date before start_date", payroll.ErrInvalidPeriodConfig)
		}
		period = payroll.Period{Start: start, End: end}
	} else {
		// custom periods carry no anchor and cannot derive a current window
		period, err = s.periods.CurrentPeriod(cfg)
		if err != nil {
			return payroll.RunResponse{}, err
		}
	}

	_, err = s.payrollRepo.GetRunByPeriod(ctx, companyID, period.Start, period.End)
	if err == nil {
		return payroll.RunResponse{}, payroll.ErrRunAlreadyExists
	}
	if !errors.Is(err, payroll.ErrRunNotFound) {
		return payroll.RunResponse{}, fmt.Errorf("failed to check existing run: %w", err)
	}

	run := payroll.PayrollRun{
		CompanyID:          companyID,
		PeriodType:         cfg.Type,
		PeriodConfig:       cfg,
		StartDate:          period.Start,
		EndDate:            period.End,
		Status:             payroll.RunStatusDraft,
		TotalRegularHours:  decimal.Zero,
		TotalOvertimeHours: decimal.Zero,
		TotalAmount:        decimal.Zero,
	}

	created, err := s.payrollRepo.CreateRun(ctx, run)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return mapRunResponse(created, nil, nil), nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, companyID string, id string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	entries, err := s.payrollRepo.ListEntriesByRun(ctx, run.ID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return mapRunResponse(run, entries, nil), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, companyID string, filter payroll.RunFilter) (payroll.ListRunsResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListRunsResponse{}, err
	}

	runs, totalCount, err := s.payrollRepo.ListRuns(ctx, companyID, filter)
	if err != nil {
		return payroll.ListRunsResponse{}, err
	}

	data := make([]payroll.RunResponse, 0, len(runs))
	for _, r := range runs {
		data = append(data, mapRunResponse(r, nil, nil))
	}

	return payroll.ListRunsResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// CalculateRun computes every active worker's pay for the run period and
// replaces the run's entries atomically. Per-worker failures do not abort the
// batch: they are collected and the run lands in calculated_with_errors.
func (s *PayrollServiceImpl) CalculateRun(ctx context.Context, companyID string, id string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	// draft runs calculate; calculated runs may be recalculated while still
	// editable
	if !run.CanBeCalculated() && !run.CanBeEdited() {
		return payroll.RunResponse{}, payroll.ErrRunNotEditable
	}

	// one snapshot for the whole batch; a failed settings read aborts the
	// batch rather than calculating against defaults
	calcSettings, err := s.resolver.Snapshot(ctx, companyID)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to resolve payroll settings: %w", err)
	}
	calc := NewCalculator(calcSettings)

	workers, err := s.workerRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to get workers: %w", err)
	}

	windowEnd := run.EndDate.AddDate(0, 0, 1)
	events, err := s.attendanceRepo.ListByCompany(ctx, companyID, run.StartDate, windowEnd)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to get attendance events: %w", err)
	}
	eventsByWorker := make(map[string][]attendance.Event)
	for _, e := range events {
		eventsByWorker[e.WorkerID] = append(eventsByWorker[e.WorkerID], e)
	}

	var entries []payroll.PayrollEntry
	var workerErrors []payroll.WorkerError
	unpairedByWorker := make(map[string][]payroll.UnpairedEvent)

	for _, w := range workers {
		wp, err := calc.CalculateWorkerPayroll(w, eventsByWorker[w.ID])
		if err != nil {
			workerErrors = append(workerErrors, payroll.WorkerError{
				WorkerID:   w.ID,
				WorkerName: w.Name,
				Error:      err.Error(),
			})
			continue
		}

		name := w.Name
		entries = append(entries, payroll.PayrollEntry{
			RunID:          run.ID,
			WorkerID:       w.ID,
			ProjectID:      w.ProjectID,
			RegularHours:   wp.RegularHours,
			OvertimeHours:  wp.OvertimeHours,
			HourlyRate:     wp.HourlyRate,
			OvertimeRate:   wp.OvertimeRate,
			RegularPay:     wp.RegularPay,
			OvertimePay:    wp.OvertimePay,
			TotalPay:       wp.TotalPay,
			DaysWorked:     wp.DaysWorked,
			AttendanceData: wp.Breakdown,
			WorkerName:     &name,
		})
		if len(wp.Unpaired) > 0 {
			unpairedByWorker[w.ID] = wp.Unpaired
		}
	}

	totals := sumEntryTotals(entries)
	now := time.Now()

	run.TotalRegularHours = totals.RegularHours
	run.TotalOvertimeHours = totals.OvertimeHours
	run.TotalAmount = totals.TotalAmount
	run.WorkerCount = totals.WorkerCount
	run.ProcessedAt = &now
	run.Status = payroll.RunStatusCalculated
	if len(workerErrors) > 0 {
		run.Status = payroll.RunStatusCalculatedWithErrors
	}

	updated, err := s.payrollRepo.ReplaceRunEntries(ctx, run, entries)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to replace run entries: %w", err)
	}

	persisted, err := s.payrollRepo.ListEntriesByRun(ctx, updated.ID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	resp := mapRunResponse(updated, persisted, workerErrors)
	for i := range resp.Entries {
		resp.Entries[i].UnpairedEvents = unpairedByWorker[resp.Entries[i].WorkerID]
	}
	return resp, nil
}

func (s *PayrollServiceImpl) ApproveRun(ctx context.Context, companyID string, id string, approverID string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if !run.CanBeApproved() {
		if run.Status == payroll.RunStatusCalculatedWithErrors {
			return payroll.RunResponse{}, payroll.ErrRunHasCalculationErrors
		}
		return payroll.RunResponse{}, payroll.ErrInvalidStatusTransition
	}

	updated, err := s.payrollRepo.UpdateRunStatus(ctx, companyID, id, payroll.RunStatusApproved, &approverID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return mapRunResponse(updated, nil, nil), nil
}

func (s *PayrollServiceImpl) MarkRunPaid(ctx context.Context, companyID string, id string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if !run.CanBeMarkedAsPaid() {
		return payroll.RunResponse{}, payroll.ErrInvalidStatusTransition
	}

	updated, err := s.payrollRepo.UpdateRunStatus(ctx, companyID, id, payroll.RunStatusPaid, nil)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return mapRunResponse(updated, nil, nil), nil
}

func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, companyID string, id string) error {
	run, err := s.payrollRepo.GetRunByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if !run.CanBeDeleted() {
		return payroll.ErrRunNotDeletable
	}
	return s.payrollRepo.DeleteRun(ctx, id, companyID)
}

// RecalculateTotals re-sums the run aggregates directly from the current
// entries and persists them. Run-level totals are only ever written from
// this sum, never adjusted incrementally.
func (s *PayrollServiceImpl) RecalculateTotals(ctx context.Context, companyID string, runID string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	entries, err := s.payrollRepo.ListEntriesByRun(ctx, runID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	totals := sumEntryTotals(entries)
	if err := s.payrollRepo.UpdateRunTotals(ctx, companyID, runID, totals); err != nil {
		return payroll.RunResponse{}, err
	}

	run.TotalRegularHours = totals.RegularHours
	run.TotalOvertimeHours = totals.OvertimeHours
	run.TotalAmount = totals.TotalAmount
	run.WorkerCount = totals.WorkerCount
	return mapRunResponse(run, entries, nil), nil
}

// ========== PER-WORKER ==========

func (s *PayrollServiceImpl) CalculateWorkerPayroll(ctx context.Context, companyID string, workerID string, start, end time.Time) (payroll.EntryResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, workerID, companyID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	events, err := s.attendanceRepo.ListByWorker(ctx, companyID, workerID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to get attendance events: %w", err)
	}

	calcSettings, err := s.resolver.Snapshot(ctx, companyID)
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to resolve payroll settings: %w", err)
	}
	calc := NewCalculator(calcSettings)
	wp, err := calc.CalculateWorkerPayroll(w, events)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	return payroll.EntryResponse{
		WorkerID:       w.ID,
		WorkerName:     w.Name,
		ProjectID:      w.ProjectID,
		RegularHours:   wp.RegularHours,
		OvertimeHours:  wp.OvertimeHours,
		HourlyRate:     wp.HourlyRate,
		OvertimeRate:   wp.OvertimeRate,
		RegularPay:     wp.RegularPay,
		OvertimePay:    wp.OvertimePay,
		TotalPay:       wp.TotalPay,
		DaysWorked:     wp.DaysWorked,
		AttendanceData: wp.Breakdown,
		UnpairedEvents: wp.Unpaired,
	}, nil
}

func (s *PayrollServiceImpl) GetRunSummary(ctx context.Context, companyID string, runID string) (payroll.SummaryResponse, error) {
	if _, err := s.payrollRepo.GetRunByID(ctx, runID, companyID); err != nil {
		return payroll.SummaryResponse{}, err
	}

	entries, err := s.payrollRepo.ListEntriesByRun(ctx, runID, companyID)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	calcSettings, err := s.resolver.Snapshot(ctx, companyID)
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to resolve payroll settings: %w", err)
	}
	calc := NewCalculator(calcSettings)
	return calc.Summarize(entries), nil
}

func (s *PayrollServiceImpl) GetEntry(ctx context.Context, companyID string, id string) (payroll.EntryResponse, error) {
	entry, err := s.payrollRepo.GetEntryByID(ctx, id, companyID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return mapEntryResponse(entry), nil
}

// ========== HELPERS ==========

func sumEntryTotals(entries []payroll.PayrollEntry) payroll.RunTotals {
	totals := payroll.RunTotals{
		RegularHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
		TotalAmount:   decimal.Zero,
		WorkerCount:   len(entries),
	}
	for _, e := range entries {
		totals.RegularHours = totals.RegularHours.Add(e.RegularHours)
		totals.OvertimeHours = totals.OvertimeHours.Add(e.OvertimeHours)
		totals.TotalAmount = totals.TotalAmount.Add(e.TotalPay)
	}
	return totals
}

func mapRunResponse(r payroll.PayrollRun, entries []payroll.PayrollEntry, workerErrors []payroll.WorkerError) payroll.RunResponse {
	var processedAt, approvedAt *string
	if r.ProcessedAt != nil {
		str := r.ProcessedAt.Format(time.RFC3339)
		processedAt = &str
	}
	if r.ApprovedAt != nil {
		str := r.ApprovedAt.Format(time.RFC3339)
		approvedAt = &str
	}

	resp := payroll.RunResponse{
		ID:                 r.ID,
		CompanyID:          r.CompanyID,
		PeriodType:         string(r.PeriodType),
		PeriodConfig:       r.PeriodConfig,
		StartDate:          r.StartDate.Format("2006-01-02"),
		EndDate:            r.EndDate.Format("2006-01-02"),
		Status:             string(r.Status),
		TotalRegularHours:  r.TotalRegularHours,
		TotalOvertimeHours: r.TotalOvertimeHours,
		TotalAmount:        r.TotalAmount,
		WorkerCount:        r.WorkerCount,
		ProcessedAt:        processedAt,
		ApprovedAt:         approvedAt,
		ApprovedBy:         r.ApprovedBy,
		CalculationErrors:  workerErrors,
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, mapEntryResponse(e))
	}
	return resp
}

func mapEntryResponse(e payroll.PayrollEntry) payroll.EntryResponse {
	workerName := ""
	if e.WorkerName != nil {
		workerName = *e.WorkerName
	}

	return payroll.EntryResponse{
		ID:             e.ID,
		RunID:          e.RunID,
		WorkerID:       e.WorkerID,
		WorkerName:     workerName,
		ProjectID:      e.ProjectID,
		RegularHours:   e.RegularHours,
		OvertimeHours:  e.OvertimeHours,
		HourlyRate:     e.HourlyRate,
		OvertimeRate:   e.OvertimeRate,
		RegularPay:     e.RegularPay,
		OvertimePay:    e.OvertimePay,
		TotalPay:       e.TotalPay,
		DaysWorked:     e.DaysWorked,
		AttendanceData: e.AttendanceData,
	}
}
