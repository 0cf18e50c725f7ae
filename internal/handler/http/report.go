package http

import (
	"net/http"

	"github.com/sitecrew/workforce-backend-go/internal/domain/report"
	"github.com/sitecrew/workforce-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportRun(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) ExportRun(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Run ID must be a valid UUID", nil)
		return
	}

	data, filename, err := h.reportService.RunExcel(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *reportHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Entry ID must be a valid UUID", nil)
		return
	}

	data, filename, err := h.reportService.PayslipPDF(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, filename, "application/pdf", data)
}
