package attendance

import (
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

type PunchRequest struct {
	WorkerID      string   `json:"worker_id"`
	ProjectID     *string  `json:"project_id,omitempty"`
	Timestamp     string   `json:"timestamp"` // RFC3339; defaults to now when empty
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ProofPhotoURL *string  `json:"proof_photo_url,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "worker_id is required"})
	}

	if r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
		}
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEventRequest for supervisors to correct a punch. The stored row is
// updated in place and stamped with the corrector's id.
type UpdateEventRequest struct {
	ID         string   `json:"-"`
	Timestamp  *string  `json:"timestamp,omitempty"` // RFC3339
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	RecordedBy *string  `json:"-"`
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timestamp != nil {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
		}
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID            string   `json:"id"`
	WorkerID      string   `json:"worker_id"`
	ProjectID     *string  `json:"project_id,omitempty"`
	Kind          string   `json:"kind"`
	Timestamp     string   `json:"timestamp"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ProofPhotoURL *string  `json:"proof_photo_url,omitempty"`
}
