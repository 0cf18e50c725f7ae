package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	eventRepo  attendance.EventRepository
	workerRepo worker.WorkerRepository
}

func NewAttendanceService(eventRepo attendance.EventRepository, workerRepo worker.WorkerRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		eventRepo:  eventRepo,
		workerRepo: workerRepo,
	}
}

func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, companyID string, req attendance.PunchRequest) (attendance.EventResponse, error) {
	return s.punch(ctx, companyID, attendance.EventClockIn, req)
}

func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, companyID string, req attendance.PunchRequest) (attendance.EventResponse, error) {
	return s.punch(ctx, companyID, attendance.EventClockOut, req)
}

func (s *AttendanceServiceImpl) punch(ctx context.Context, companyID string, kind attendance.EventKind, req attendance.PunchRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID, companyID)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if !w.IsActive {
		return attendance.EventResponse{}, worker.ErrWorkerInactive
	}

	ts := time.Now()
	if req.Timestamp != "" {
		parsed, ok := validator.IsValidDateTime(req.Timestamp)
		if !ok {
			return attendance.EventResponse{}, validator.ValidationErrors{
				{Field: "timestamp", Message: "timestamp must be a valid RFC3339 datetime"},
			}
		}
		ts = parsed
	}

	projectID := req.ProjectID
	if projectID == nil {
		projectID = w.ProjectID
	}

	event := attendance.Event{
		CompanyID:     companyID,
		WorkerID:      req.WorkerID,
		ProjectID:     projectID,
		Kind:          kind,
		Timestamp:     ts,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ProofPhotoURL: req.ProofPhotoURL,
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}

	return mapEventResponse(created), nil
}

func (s *AttendanceServiceImpl) GetEvent(ctx context.Context, companyID string, id string) (attendance.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	return mapEventResponse(event), nil
}

func (s *AttendanceServiceImpl) ListWorkerEvents(ctx context.Context, companyID string, workerID string, start, end time.Time) ([]attendance.EventResponse, error) {
	if _, err := s.workerRepo.GetByID(ctx, workerID, companyID); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByWorker(ctx, companyID, workerID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, mapEventResponse(e))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) CorrectEvent(ctx context.Context, companyID string, req attendance.UpdateEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	if _, err := s.eventRepo.GetByID(ctx, req.ID, companyID); err != nil {
		return attendance.EventResponse{}, err
	}

	if err := s.eventRepo.Update(ctx, companyID, req); err != nil {
		return attendance.EventResponse{}, err
	}

	updated, err := s.eventRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	return mapEventResponse(updated), nil
}

func mapEventResponse(e attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:            e.ID,
		WorkerID:      e.WorkerID,
		ProjectID:     e.ProjectID,
		Kind:          string(e.Kind),
		Timestamp:     e.Timestamp.Format(time.RFC3339),
		Latitude:      e.Latitude,
		Longitude:     e.Longitude,
		ProofPhotoURL: e.ProofPhotoURL,
	}
}
