package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.EventRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			company_id, worker_id, project_id, kind, timestamp,
			latitude, longitude, proof_photo_url, recorded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, company_id, worker_id, project_id, kind, timestamp,
			latitude, longitude, proof_photo_url, recorded_by, created_at, updated_at
	`

	var created attendance.Event
	err := q.QueryRow(ctx, query,
		e.CompanyID, e.WorkerID, e.ProjectID, e.Kind, e.Timestamp,
		e.Latitude, e.Longitude, e.ProofPhotoURL, e.RecordedBy,
	).Scan(
		&created.ID, &created.CompanyID, &created.WorkerID, &created.ProjectID,
		&created.Kind, &created.Timestamp, &created.Latitude, &created.Longitude,
		&created.ProofPhotoURL, &created.RecordedBy, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return created, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, worker_id, project_id, kind, timestamp,
			   latitude, longitude, proof_photo_url, recorded_by, created_at, updated_at
		FROM attendance_events
		WHERE id = $1 AND company_id = $2
	`

	var e attendance.Event
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID, &e.CompanyID, &e.WorkerID, &e.ProjectID,
		&e.Kind, &e.Timestamp, &e.Latitude, &e.Longitude,
		&e.ProofPhotoURL, &e.RecordedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance event: %w", err)
	}

	return e, nil
}

func (r *attendanceRepository) ListByWorker(ctx context.Context, companyID, workerID string, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	// created_at tie-break keeps insertion order for equal timestamps,
	// which the pairing walk depends on
	query := `
		SELECT id, company_id, worker_id, project_id, kind, timestamp,
			   latitude, longitude, proof_photo_url, recorded_by, created_at, updated_at
		FROM attendance_events
		WHERE company_id = $1 AND worker_id = $2 AND timestamp >= $3 AND timestamp < $4
		ORDER BY timestamp ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, companyID, workerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *attendanceRepository) ListByCompany(ctx context.Context, companyID string, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, worker_id, project_id, kind, timestamp,
			   latitude, longitude, proof_photo_url, recorded_by, created_at, updated_at
		FROM attendance_events
		WHERE company_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY worker_id ASC, timestamp ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *attendanceRepository) Update(ctx context.Context, companyID string, req attendance.UpdateEventRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.Timestamp != nil {
		ts, err := time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
		setParts = append(setParts, fmt.Sprintf("timestamp = $%d", argIdx))
		args = append(args, ts)
		argIdx++
	}
	if req.Latitude != nil {
		setParts = append(setParts, fmt.Sprintf("latitude = $%d", argIdx))
		args = append(args, *req.Latitude)
		argIdx++
	}
	if req.Longitude != nil {
		setParts = append(setParts, fmt.Sprintf("longitude = $%d", argIdx))
		args = append(args, *req.Longitude)
		argIdx++
	}
	if req.RecordedBy != nil {
		setParts = append(setParts, fmt.Sprintf("recorded_by = $%d", argIdx))
		args = append(args, *req.RecordedBy)
		argIdx++
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE attendance_events SET %s, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`, strings.Join(setParts, ", "))

	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update attendance event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return attendance.ErrEventNotFound
	}

	return nil
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		var e attendance.Event
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.WorkerID, &e.ProjectID,
			&e.Kind, &e.Timestamp, &e.Latitude, &e.Longitude,
			&e.ProofPhotoURL, &e.RecordedBy, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}
