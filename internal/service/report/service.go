package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/domain/report"
	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
)

type ReportServiceImpl struct {
	payrollRepo payroll.PayrollRepository
	workerRepo  worker.WorkerRepository
}

func NewReportService(payrollRepo payroll.PayrollRepository, workerRepo worker.WorkerRepository) report.ReportService {
	return &ReportServiceImpl{payrollRepo: payrollRepo, workerRepo: workerRepo}
}

func (s *ReportServiceImpl) PayslipPDF(ctx context.Context, companyID string, entryID string) ([]byte, string, error) {
	entry, err := s.payrollRepo.GetEntryByID(ctx, entryID, companyID)
	if err != nil {
		return nil, "", err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, entry.RunID, companyID)
	if err != nil {
		return nil, "", err
	}

	workerName := entry.WorkerID
	if entry.WorkerName != nil {
		workerName = *entry.WorkerName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Worker: %s", workerName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", run.StartDate.Format("2006-01-02"), run.EndDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Days worked: %d", entry.DaysWorked))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Regular hours: %s @ %s", entry.RegularHours.String(), entry.HourlyRate.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime hours: %s @ %s", entry.OvertimeHours.String(), entry.OvertimeRate.String()))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Regular pay: %s", entry.RegularPay.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime pay: %s", entry.OvertimePay.String()))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total pay: %s", entry.TotalPay.String()))

	if len(entry.AttendanceData) > 0 {
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Daily breakdown")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, day := range entry.AttendanceData {
			pdf.Cell(0, 6, fmt.Sprintf("%s  total %s  regular %s  overtime %s",
				day.Date, day.TotalHours.String(), day.RegularHours.String(), day.OvertimeHours.String()))
			pdf.Ln(5)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}

	filename := fmt.Sprintf("payslip_%s_%s.pdf", entry.WorkerID, run.StartDate.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ReportServiceImpl) RunExcel(ctx context.Context, companyID string, runID string) ([]byte, string, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return nil, "", err
	}

	entries, err := s.payrollRepo.ListEntriesByRun(ctx, runID, companyID)
	if err != nil {
		return nil, "", err
	}

	// one batch fetch for trade labels instead of a query per entry
	workerIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		workerIDs = append(workerIDs, e.WorkerID)
	}
	tradeByWorker := make(map[string]string)
	if len(workerIDs) > 0 {
		workers, err := s.workerRepo.GetByIDs(ctx, workerIDs, companyID)
		if err != nil {
			return nil, "", err
		}
		for _, w := range workers {
			if w.Trade != nil {
				tradeByWorker[w.ID] = *w.Trade
			}
		}
	}

	f := excelize.NewFile()
	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Worker", "Trade", "Days Worked", "Regular Hours", "Overtime Hours",
		"Hourly Rate", "Overtime Rate", "Regular Pay", "Overtime Pay", "Total Pay",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	rowNum := 2
	for _, e := range entries {
		workerName := e.WorkerID
		if e.WorkerName != nil {
			workerName = *e.WorkerName
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), workerName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), tradeByWorker[e.WorkerID])
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), e.DaysWorked)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), e.RegularHours.String())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), e.OvertimeHours.String())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), e.HourlyRate.String())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), e.OvertimeRate.String())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), e.RegularPay.String())
		f.SetCellValue(sheet, fmt.Sprintf("I%d", rowNum), e.OvertimePay.String())
		f.SetCellValue(sheet, fmt.Sprintf("J%d", rowNum), e.TotalPay.String())
		rowNum++
	}

	// totals row
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), run.TotalRegularHours.String())
	f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), run.TotalOvertimeHours.String())
	f.SetCellValue(sheet, fmt.Sprintf("J%d", rowNum), run.TotalAmount.String())

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}

	filename := fmt.Sprintf("payroll_%s_%s.xlsx", run.StartDate.Format("2006-01-02"), run.EndDate.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
