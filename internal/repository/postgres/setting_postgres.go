package postgres

import (
	"context"
	"database/sql"
	"errors"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// SettingPostgres is the PostgreSQL implementation of the settings store.
// Settings are keyed, so lookups and deletes go by key rather than id.
type SettingPostgres struct {
	db *sql.DB
}

var _ repository.SettingRepository = (*SettingPostgres)(nil)

// NewSettingPostgres creates a new setting repository.
func NewSettingPostgres(db *sql.DB) *SettingPostgres {
	return &SettingPostgres{db: db}
}

const settingCols = "id, key, value, created_at, updated_at"

func (r *SettingPostgres) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	q := "SELECT " + settingCols + " FROM settings WHERE key = $1"
	s, err := scanSetting(r.db.QueryRowContext(ctx, q, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("setting not found")
		}
		return nil, err
	}
	return s, nil
}

func (r *SettingPostgres) List(ctx context.Context) ([]model.Setting, error) {
	q := "SELECT " + settingCols + " FROM settings ORDER BY key ASC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make([]model.Setting, 0)
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SettingPostgres) Upsert(ctx context.Context, key, value string) (*model.Setting, error) {
	q := `INSERT INTO settings (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
RETURNING ` + settingCols
	return scanSetting(r.db.QueryRowContext(ctx, q, key, value))
}

func (r *SettingPostgres) DeleteByKey(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM settings WHERE key = $1", key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("setting not found")
	}
	return nil
}

func scanSetting(row rowScanner) (*model.Setting, error) {
	var s model.Setting
	if err := row.Scan(&s.ID, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
