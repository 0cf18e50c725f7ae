package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetEvent(w http.ResponseWriter, r *http.Request)
	ListWorkerEvents(w http.ResponseWriter, r *http.Request)
	CorrectEvent(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.attendanceService.ClockIn)
}

func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.attendanceService.ClockOut)
}

func (h *attendanceHandlerImpl) punch(
	w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, companyID string, req attendance.PunchRequest) (attendance.EventResponse, error),
) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := fn(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

func (h *attendanceHandlerImpl) GetEvent(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Event ID must be a valid UUID", nil)
		return
	}

	result, err := h.attendanceService.GetEvent(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListWorkerEvents(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	workerID, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Worker ID must be a valid UUID", nil)
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
	if err != nil {
		response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
	if err != nil {
		response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.attendanceService.ListWorkerEvents(r.Context(), companyID, workerID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) CorrectEvent(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	correctorID, err := userIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Event ID must be a valid UUID", nil)
		return
	}

	var req attendance.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id
	req.RecordedBy = &correctorID

	result, err := h.attendanceService.CorrectEvent(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event corrected", result)
}
