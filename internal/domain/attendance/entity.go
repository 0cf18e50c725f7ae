package attendance

import "time"

// EventKind enum
type EventKind string

const (
	EventClockIn  EventKind = "clock_in"
	EventClockOut EventKind = "clock_out"
)

// Event - A single geotagged attendance punch. Events are immutable once
// created; supervisor corrections produce an audited update of the stored
// row, never a new kind. Ordering by Timestamp within a worker is
// load-bearing for pairing.
type Event struct {
	ID            string
	CompanyID     string
	WorkerID      string
	ProjectID     *string
	Kind          EventKind
	Timestamp     time.Time
	Latitude      *float64
	Longitude     *float64
	ProofPhotoURL *string
	RecordedBy    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
