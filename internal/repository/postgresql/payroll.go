package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	configBytes, err := json.Marshal(run.PeriodConfig)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to marshal period config: %w", err)
	}

	query := `
		INSERT INTO payroll_runs (
			company_id, period_type, period_config, start_date, end_date, status,
			total_regular_hours, total_overtime_hours, total_amount, worker_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, company_id, period_type, period_config, start_date, end_date, status,
			total_regular_hours, total_overtime_hours, total_amount, worker_count,
			processed_at, approved_at, approved_by, created_at, updated_at
	`

	row := q.QueryRow(ctx, query,
		run.CompanyID, run.PeriodType, configBytes, run.StartDate, run.EndDate, run.Status,
		run.TotalRegularHours, run.TotalOvertimeHours, run.TotalAmount, run.WorkerCount,
	)

	created, err := scanRun(row)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_run_period") {
			return payroll.PayrollRun{}, payroll.ErrRunAlreadyExists
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetRunByID(ctx context.Context, id string, companyID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_type, period_config, start_date, end_date, status,
			   total_regular_hours, total_overtime_hours, total_amount, worker_count,
			   processed_at, approved_at, approved_by, created_at, updated_at
		FROM payroll_runs
		WHERE id = $1 AND company_id = $2
	`

	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) GetRunByPeriod(ctx context.Context, companyID string, start, end time.Time) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_type, period_config, start_date, end_date, status,
			   total_regular_hours, total_overtime_hours, total_amount, worker_count,
			   processed_at, approved_at, approved_by, created_at, updated_at
		FROM payroll_runs
		WHERE company_id = $1 AND start_date = $2 AND end_date = $3
	`

	run, err := scanRun(q.QueryRow(ctx, query, companyID, start, end))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run by period: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListRuns(ctx context.Context, companyID string, filter payroll.RunFilter) ([]payroll.PayrollRun, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_runs
		WHERE company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseQuery += fmt.Sprintf(" AND end_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseQuery += fmt.Sprintf(" AND start_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT id, company_id, period_type, period_config, start_date, end_date, status,
			   total_regular_hours, total_overtime_hours, total_amount, worker_count,
			   processed_at, approved_at, approved_by, created_at, updated_at
		%s
		ORDER BY start_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseQuery, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, totalCount, nil
}

func (r *payrollRepository) UpdateRunStatus(ctx context.Context, companyID string, id string, status payroll.RunStatus, approvedBy *string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	var args []interface{}
	if approvedBy != nil {
		query = `
			UPDATE payroll_runs
			SET status = $1, approved_at = NOW(), approved_by = $2, updated_at = NOW()
			WHERE id = $3 AND company_id = $4
			RETURNING id, company_id, period_type, period_config, start_date, end_date, status,
				total_regular_hours, total_overtime_hours, total_amount, worker_count,
				processed_at, approved_at, approved_by, created_at, updated_at
		`
		args = []interface{}{status, *approvedBy, id, companyID}
	} else {
		query = `
			UPDATE payroll_runs
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND company_id = $3
			RETURNING id, company_id, period_type, period_config, start_date, end_date, status,
				total_regular_hours, total_overtime_hours, total_amount, worker_count,
				processed_at, approved_at, approved_by, created_at, updated_at
		`
		args = []interface{}{status, id, companyID}
	}

	run, err := scanRun(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to update payroll run status: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) UpdateRunTotals(ctx context.Context, companyID string, id string, totals payroll.RunTotals) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET total_regular_hours = $1, total_overtime_hours = $2, total_amount = $3,
			worker_count = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	result, err := q.Exec(ctx, query,
		totals.RegularHours, totals.OvertimeHours, totals.TotalAmount,
		totals.WorkerCount, id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run totals: %w", err)
	}
	if result.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

func (r *payrollRepository) DeleteRun(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// entries cascade via FK
	result, err := q.Exec(ctx, `DELETE FROM payroll_runs WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

func (r *payrollRepository) ReplaceRunEntries(ctx context.Context, run payroll.PayrollRun, entries []payroll.PayrollEntry) (payroll.PayrollRun, error) {
	var updated payroll.PayrollRun

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM payroll_entries WHERE run_id = $1`, run.ID); err != nil {
			return fmt.Errorf("failed to clear payroll entries: %w", err)
		}

		insertQuery := `
			INSERT INTO payroll_entries (
				run_id, worker_id, project_id,
				regular_hours, overtime_hours, hourly_rate, overtime_rate,
				regular_pay, overtime_pay, total_pay, days_worked, attendance_data
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		for _, e := range entries {
			dataBytes, err := json.Marshal(e.AttendanceData)
			if err != nil {
				return fmt.Errorf("failed to marshal attendance data: %w", err)
			}
			if _, err := tx.Exec(ctx, insertQuery,
				run.ID, e.WorkerID, e.ProjectID,
				e.RegularHours, e.OvertimeHours, e.HourlyRate, e.OvertimeRate,
				e.RegularPay, e.OvertimePay, e.TotalPay, e.DaysWorked, dataBytes,
			); err != nil {
				return fmt.Errorf("failed to insert payroll entry: %w", err)
			}
		}

		updateQuery := `
			UPDATE payroll_runs
			SET status = $1, total_regular_hours = $2, total_overtime_hours = $3,
				total_amount = $4, worker_count = $5, processed_at = $6, updated_at = NOW()
			WHERE id = $7 AND company_id = $8
			RETURNING id, company_id, period_type, period_config, start_date, end_date, status,
				total_regular_hours, total_overtime_hours, total_amount, worker_count,
				processed_at, approved_at, approved_by, created_at, updated_at
		`
		row := tx.QueryRow(ctx, updateQuery,
			run.Status, run.TotalRegularHours, run.TotalOvertimeHours,
			run.TotalAmount, run.WorkerCount, run.ProcessedAt,
			run.ID, run.CompanyID,
		)

		var err error
		updated, err = scanRun(row)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrRunNotFound
			}
			return fmt.Errorf("failed to update payroll run: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	return updated, nil
}

// ========== ENTRIES ==========

func (r *payrollRepository) ListEntriesByRun(ctx context.Context, runID string, companyID string) ([]payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pe.id, pe.run_id, pe.worker_id, pe.project_id,
			   pe.regular_hours, pe.overtime_hours, pe.hourly_rate, pe.overtime_rate,
			   pe.regular_pay, pe.overtime_pay, pe.total_pay, pe.days_worked,
			   pe.attendance_data, pe.created_at, pe.updated_at,
			   w.name as worker_name
		FROM payroll_entries pe
		JOIN payroll_runs pr ON pe.run_id = pr.id
		JOIN workers w ON pe.worker_id = w.id
		WHERE pe.run_id = $1 AND pr.company_id = $2
		ORDER BY w.name ASC
	`

	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.PayrollEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *payrollRepository) GetEntryByID(ctx context.Context, id string, companyID string) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pe.id, pe.run_id, pe.worker_id, pe.project_id,
			   pe.regular_hours, pe.overtime_hours, pe.hourly_rate, pe.overtime_rate,
			   pe.regular_pay, pe.overtime_pay, pe.total_pay, pe.days_worked,
			   pe.attendance_data, pe.created_at, pe.updated_at,
			   w.name as worker_name
		FROM payroll_entries pe
		JOIN payroll_runs pr ON pe.run_id = pr.id
		JOIN workers w ON pe.worker_id = w.id
		WHERE pe.id = $1 AND pr.company_id = $2
	`

	entry, err := scanEntry(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
		}
		return payroll.PayrollEntry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	return entry, nil
}

// ========== SCAN HELPERS ==========

func scanRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	var configBytes []byte

	err := row.Scan(
		&run.ID, &run.CompanyID, &run.PeriodType, &configBytes, &run.StartDate, &run.EndDate, &run.Status,
		&run.TotalRegularHours, &run.TotalOvertimeHours, &run.TotalAmount, &run.WorkerCount,
		&run.ProcessedAt, &run.ApprovedAt, &run.ApprovedBy, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	if len(configBytes) > 0 {
		_ = json.Unmarshal(configBytes, &run.PeriodConfig)
	}

	return run, nil
}

func scanEntry(row pgx.Row) (payroll.PayrollEntry, error) {
	var entry payroll.PayrollEntry
	var dataBytes []byte

	err := row.Scan(
		&entry.ID, &entry.RunID, &entry.WorkerID, &entry.ProjectID,
		&entry.RegularHours, &entry.OvertimeHours, &entry.HourlyRate, &entry.OvertimeRate,
		&entry.RegularPay, &entry.OvertimePay, &entry.TotalPay, &entry.DaysWorked,
		&dataBytes, &entry.CreatedAt, &entry.UpdatedAt,
		&entry.WorkerName,
	)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}

	if len(dataBytes) > 0 {
		_ = json.Unmarshal(dataBytes, &entry.AttendanceData)
	}

	return entry, nil
}
