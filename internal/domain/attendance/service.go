package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance punches
type AttendanceService interface {
	ClockIn(ctx context.Context, companyID string, req PunchRequest) (EventResponse, error)
	ClockOut(ctx context.Context, companyID string, req PunchRequest) (EventResponse, error)
	GetEvent(ctx context.Context, companyID string, id string) (EventResponse, error)
	ListWorkerEvents(ctx context.Context, companyID string, workerID string, start, end time.Time) ([]EventResponse, error)
	CorrectEvent(ctx context.Context, companyID string, req UpdateEventRequest) (EventResponse, error)
}
