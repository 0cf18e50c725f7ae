package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
)

// ========== IN-MEMORY FAKES ==========

type fakePayrollRepo struct {
	run     payroll.PayrollRun
	entries []payroll.PayrollEntry
}

func (f *fakePayrollRepo) CreateRun(_ context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	return run, nil
}

func (f *fakePayrollRepo) GetRunByID(_ context.Context, id string, companyID string) (payroll.PayrollRun, error) {
	if f.run.ID != id || f.run.CompanyID != companyID {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return f.run, nil
}

func (f *fakePayrollRepo) GetRunByPeriod(_ context.Context, _ string, _, _ time.Time) (payroll.PayrollRun, error) {
	return payroll.PayrollRun{}, payroll.ErrRunNotFound
}

func (f *fakePayrollRepo) ListRuns(_ context.Context, _ string, _ payroll.RunFilter) ([]payroll.PayrollRun, int64, error) {
	return nil, 0, nil
}

func (f *fakePayrollRepo) UpdateRunStatus(_ context.Context, _ string, _ string, _ payroll.RunStatus, _ *string) (payroll.PayrollRun, error) {
	return f.run, nil
}

func (f *fakePayrollRepo) UpdateRunTotals(_ context.Context, _ string, _ string, _ payroll.RunTotals) error {
	return nil
}

func (f *fakePayrollRepo) DeleteRun(_ context.Context, _ string, _ string) error {
	return nil
}

func (f *fakePayrollRepo) ReplaceRunEntries(_ context.Context, run payroll.PayrollRun, _ []payroll.PayrollEntry) (payroll.PayrollRun, error) {
	return run, nil
}

func (f *fakePayrollRepo) ListEntriesByRun(_ context.Context, runID string, companyID string) ([]payroll.PayrollEntry, error) {
	if f.run.ID != runID || f.run.CompanyID != companyID {
		return nil, payroll.ErrRunNotFound
	}
	return f.entries, nil
}

func (f *fakePayrollRepo) GetEntryByID(_ context.Context, id string, _ string) (payroll.PayrollEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
}

type fakeWorkerRepo struct {
	workers []worker.Worker
	calls   int
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string, companyID string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id && w.CompanyID == companyID {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetActiveByCompanyID(_ context.Context, _ string) ([]worker.Worker, error) {
	return f.workers, nil
}

func (f *fakeWorkerRepo) GetByIDs(_ context.Context, ids []string, companyID string) ([]worker.Worker, error) {
	f.calls++
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []worker.Worker
	for _, w := range f.workers {
		if wanted[w.ID] && w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, _ string, _ worker.UpdateWorkerRequest) error {
	return nil
}

// ========== FIXTURE ==========

func strPtr(s string) *string { return &s }

func calculatedRun() payroll.PayrollRun {
	return payroll.PayrollRun{
		ID:                 "run-1",
		CompanyID:          "c1",
		StartDate:          time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
		Status:             payroll.RunStatusCalculated,
		TotalRegularHours:  decimal.NewFromInt(16),
		TotalOvertimeHours: decimal.NewFromInt(1),
		TotalAmount:        decimal.NewFromInt(350),
		WorkerCount:        2,
	}
}

func entryFor(id, workerID, name string) payroll.PayrollEntry {
	return payroll.PayrollEntry{
		ID:            id,
		RunID:         "run-1",
		WorkerID:      workerID,
		WorkerName:    &name,
		RegularHours:  decimal.NewFromInt(8),
		OvertimeHours: decimal.Zero,
		HourlyRate:    decimal.NewFromInt(20),
		OvertimeRate:  decimal.NewFromInt(30),
		RegularPay:    decimal.NewFromInt(160),
		OvertimePay:   decimal.Zero,
		TotalPay:      decimal.NewFromInt(160),
		DaysWorked:    1,
	}
}

// ========== TESTS ==========

func TestRunExcel_TradeColumnFromBatchFetch(t *testing.T) {
	payrollRepo := &fakePayrollRepo{
		run: calculatedRun(),
		entries: []payroll.PayrollEntry{
			entryFor("e1", "w1", "Budi"),
			entryFor("e2", "w2", "Sari"),
		},
	}
	workerRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w1", CompanyID: "c1", Name: "Budi", Trade: strPtr("carpenter"), IsActive: true},
		{ID: "w2", CompanyID: "c1", Name: "Sari", IsActive: true},
	}}
	svc := NewReportService(payrollRepo, workerRepo)

	data, filename, err := svc.RunExcel(context.Background(), "c1", "run-1")
	require.NoError(t, err)
	assert.Equal(t, "payroll_2025-03-03_2025-03-09.xlsx", filename)

	// trades come from one batch lookup, not one query per entry
	assert.Equal(t, 1, workerRepo.calls)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Payroll", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Trade", header)

	trade, err := f.GetCellValue("Payroll", "B2")
	require.NoError(t, err)
	assert.Equal(t, "carpenter", trade)

	// workers without a trade leave the cell blank
	trade, err = f.GetCellValue("Payroll", "B3")
	require.NoError(t, err)
	assert.Equal(t, "", trade)

	total, err := f.GetCellValue("Payroll", "J4")
	require.NoError(t, err)
	assert.Equal(t, "350", total)
}

func TestRunExcel_UnknownRun(t *testing.T) {
	svc := NewReportService(&fakePayrollRepo{run: calculatedRun()}, &fakeWorkerRepo{})

	_, _, err := svc.RunExcel(context.Background(), "c1", "missing")
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestPayslipPDF(t *testing.T) {
	payrollRepo := &fakePayrollRepo{
		run:     calculatedRun(),
		entries: []payroll.PayrollEntry{entryFor("e1", "w1", "Budi")},
	}
	svc := NewReportService(payrollRepo, &fakeWorkerRepo{})

	data, filename, err := svc.PayslipPDF(context.Background(), "c1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "payslip_w1_2025-03-03.pdf", filename)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
