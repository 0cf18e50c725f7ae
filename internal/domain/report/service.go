package report

import "context"

// ReportService renders payroll documents for download.
type ReportService interface {
	// PayslipPDF renders one entry's payslip. Returns the document bytes and
	// a suggested filename.
	PayslipPDF(ctx context.Context, companyID string, entryID string) ([]byte, string, error)

	// RunExcel renders a full run as a spreadsheet, one row per entry.
	RunExcel(ctx context.Context, companyID string, runID string) ([]byte, string, error)
}
