package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (company_id, project_id, name, phone, trade, daily_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, project_id, name, phone, trade, daily_rate, is_active, created_at, updated_at
	`

	var created worker.Worker
	err := q.QueryRow(ctx, query,
		w.CompanyID, w.ProjectID, w.Name, w.Phone, w.Trade, w.DailyRate, w.IsActive,
	).Scan(
		&created.ID, &created.CompanyID, &created.ProjectID, &created.Name,
		&created.Phone, &created.Trade, &created.DailyRate, &created.IsActive,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return created, nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string, companyID string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.company_id, w.project_id, w.name, w.phone, w.trade,
			   w.daily_rate, w.is_active, w.created_at, w.updated_at,
			   p.name as project_name
		FROM workers w
		LEFT JOIN projects p ON w.project_id = p.id
		WHERE w.id = $1 AND w.company_id = $2
	`

	var found worker.Worker
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&found.ID, &found.CompanyID, &found.ProjectID, &found.Name,
		&found.Phone, &found.Trade, &found.DailyRate, &found.IsActive,
		&found.CreatedAt, &found.UpdatedAt,
		&found.ProjectName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}

	return found, nil
}

func (r *workerRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.company_id, w.project_id, w.name, w.phone, w.trade,
			   w.daily_rate, w.is_active, w.created_at, w.updated_at,
			   p.name as project_name
		FROM workers w
		LEFT JOIN projects p ON w.project_id = p.id
		WHERE w.company_id = $1 AND w.is_active = true
		ORDER BY w.name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(
			&w.ID, &w.CompanyID, &w.ProjectID, &w.Name,
			&w.Phone, &w.Trade, &w.DailyRate, &w.IsActive,
			&w.CreatedAt, &w.UpdatedAt,
			&w.ProjectName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, nil
}

func (r *workerRepository) GetByIDs(ctx context.Context, ids []string, companyID string) ([]worker.Worker, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.company_id, w.project_id, w.name, w.phone, w.trade,
			   w.daily_rate, w.is_active, w.created_at, w.updated_at,
			   p.name as project_name
		FROM workers w
		LEFT JOIN projects p ON w.project_id = p.id
		WHERE w.id = ANY($1) AND w.company_id = $2
		ORDER BY w.name ASC
	`

	rows, err := q.Query(ctx, query, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workers by ids: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(
			&w.ID, &w.CompanyID, &w.ProjectID, &w.Name,
			&w.Phone, &w.Trade, &w.DailyRate, &w.IsActive,
			&w.CreatedAt, &w.UpdatedAt,
			&w.ProjectName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, nil
}

func (r *workerRepository) Update(ctx context.Context, companyID string, req worker.UpdateWorkerRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.ProjectID != nil {
		setParts = append(setParts, fmt.Sprintf("project_id = $%d", argIdx))
		args = append(args, *req.ProjectID)
		argIdx++
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", argIdx))
		args = append(args, *req.Phone)
		argIdx++
	}
	if req.Trade != nil {
		setParts = append(setParts, fmt.Sprintf("trade = $%d", argIdx))
		args = append(args, *req.Trade)
		argIdx++
	}
	if req.DailyRate != nil {
		setParts = append(setParts, fmt.Sprintf("daily_rate = $%d", argIdx))
		args = append(args, *req.DailyRate)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE workers SET %s, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`, strings.Join(setParts, ", "))

	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if result.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}
