package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/setting"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
)

type settingRepository struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, companyID string, key string) (setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, key, value, type, created_at, updated_at
		FROM company_settings
		WHERE company_id = $1 AND key = $2
	`

	var s setting.Setting
	err := q.QueryRow(ctx, query, companyID, key).Scan(
		&s.ID, &s.CompanyID, &s.Key, &s.Value, &s.Type, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return setting.Setting{}, setting.ErrSettingNotFound
		}
		return setting.Setting{}, fmt.Errorf("failed to get setting: %w", err)
	}

	return s, nil
}

func (r *settingRepository) List(ctx context.Context, companyID string) ([]setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, key, value, type, created_at, updated_at
		FROM company_settings
		WHERE company_id = $1
		ORDER BY key ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []setting.Setting
	for rows.Next() {
		var s setting.Setting
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Key, &s.Value, &s.Type, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}

	return settings, nil
}

func (r *settingRepository) Upsert(ctx context.Context, s setting.Setting) (setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_settings (company_id, key, value, type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			type = EXCLUDED.type,
			updated_at = NOW()
		RETURNING id, company_id, key, value, type, created_at, updated_at
	`

	var stored setting.Setting
	err := q.QueryRow(ctx, query, s.CompanyID, s.Key, s.Value, s.Type).Scan(
		&stored.ID, &stored.CompanyID, &stored.Key, &stored.Value, &stored.Type,
		&stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return setting.Setting{}, fmt.Errorf("failed to upsert setting: %w", err)
	}

	return stored, nil
}

func (r *settingRepository) Delete(ctx context.Context, companyID string, key string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM company_settings WHERE company_id = $1 AND key = $2`, companyID, key)
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return setting.ErrSettingNotFound
	}

	return nil
}
