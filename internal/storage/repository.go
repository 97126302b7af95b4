package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"territory/internal/core"
	"territory/internal/settings"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists target settings in a local sqlite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ settings.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Get implements settings.Store.
func (r *SQLiteRepository) Get(ctx context.Context, ownerID string) (core.TargetSettings, error) {
	var s core.TargetSettings
	row := r.db.QueryRowContext(ctx, `
		SELECT owner_id, ne_target, consumption_baseline, consumption_growth_target
		FROM target_settings
		WHERE owner_id = ?`, ownerID)
	err := row.Scan(&s.OwnerID, &s.NETarget, &s.ConsumptionBaseline, &s.ConsumptionGrowthTarget)
	if errors.Is(err, sql.ErrNoRows) {
		return core.TargetSettings{}, settings.ErrNotFound
	}
	if err != nil {
		return core.TargetSettings{}, fmt.Errorf("get target settings: %w", err)
	}
	return s, nil
}

// Put implements settings.Store with an upsert keyed on owner_id.
func (r *SQLiteRepository) Put(ctx context.Context, s core.TargetSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO target_settings (owner_id, ne_target, consumption_baseline, consumption_growth_target, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(owner_id) DO UPDATE SET
			ne_target = excluded.ne_target,
			consumption_baseline = excluded.consumption_baseline,
			consumption_growth_target = excluded.consumption_growth_target,
			updated_at = CURRENT_TIMESTAMP`,
		s.OwnerID, s.NETarget, s.ConsumptionBaseline, s.ConsumptionGrowthTarget)
	if err != nil {
		return fmt.Errorf("upsert target settings: %w", err)
	}

	slog.InfoContext(ctx, "Target settings saved to SQLite", "owner", s.OwnerID)
	return nil
}

// Delete implements settings.Store.
func (r *SQLiteRepository) Delete(ctx context.Context, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM target_settings WHERE owner_id = ?`, ownerID)
	if err != nil {
		return fmt.Errorf("delete target settings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete target settings: %w", err)
	}
	if n == 0 {
		return settings.ErrNotFound
	}

	slog.InfoContext(ctx, "Target settings deleted from SQLite", "owner", ownerID)
	return nil
}
