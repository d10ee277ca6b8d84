package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT id, planner_duration, week_start_day, auto_create, fortnightly
		FROM settings WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var s domain.Settings
	var autoCreate, fortnightly int
	err := row.Scan(&s.ID, &s.PlannerDuration, &s.WeekStartDay, &autoCreate, &fortnightly)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning settings: %w", err)
	}
	s.AutoCreatePlans = intToBool(autoCreate)
	s.Fortnightly = intToBool(fortnightly)
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	query := `INSERT OR REPLACE INTO settings (id, planner_duration, week_start_day, auto_create, fortnightly)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.PlannerDuration,
		s.WeekStartDay,
		boolToInt(s.AutoCreatePlans),
		boolToInt(s.Fortnightly),
	)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}
