package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access methods for attendance events.
// All methods take companyID to prevent cross-company data access.
type EventRepository interface {
	Create(ctx context.Context, e Event) (Event, error)
	GetByID(ctx context.Context, id string, companyID string) (Event, error)
	// ListByWorker returns the worker's events with Timestamp in
	// [start, end) ordered by Timestamp ascending, insertion order on ties.
	ListByWorker(ctx context.Context, companyID, workerID string, start, end time.Time) ([]Event, error)
	// ListByCompany returns all events for the company in the window,
	// ordered by worker then Timestamp. Used for batch run calculation.
	ListByCompany(ctx context.Context, companyID string, start, end time.Time) ([]Event, error)
	Update(ctx context.Context, companyID string, req UpdateEventRequest) error
}
