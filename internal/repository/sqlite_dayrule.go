package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/domain"
)

const dayRuleColumns = `id, day_of_week, week_index, tag_id, created_at, updated_at`

// SQLiteDayRuleRepo implements DayRuleRepo using a SQLite database.
// The unique slot index on (week_index, day_of_week) enforces the
// at-most-one-rule-per-day invariant at the storage layer.
type SQLiteDayRuleRepo struct {
	db db.DBTX
}

// NewSQLiteDayRuleRepo creates a new SQLiteDayRuleRepo.
func NewSQLiteDayRuleRepo(conn db.DBTX) *SQLiteDayRuleRepo {
	return &SQLiteDayRuleRepo{db: conn}
}

func (r *SQLiteDayRuleRepo) Upsert(ctx context.Context, rule *domain.DayRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	// Replace whatever rule occupies this slot.
	if err := r.DeleteBySlot(ctx, rule.WeekIndex, rule.DayOfWeek); err != nil {
		return err
	}

	query := `INSERT INTO day_rules (day_of_week, week_index, tag_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rule.DayOfWeek,
		nullableIntToValue(rule.WeekIndex),
		rule.TagID,
		rule.CreatedAt.Format(time.RFC3339),
		rule.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting day rule: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading day rule id: %w", err)
	}
	rule.ID = id
	return nil
}

func (r *SQLiteDayRuleRepo) List(ctx context.Context) ([]domain.DayRule, error) {
	query := `SELECT ` + dayRuleColumns + ` FROM day_rules ORDER BY COALESCE(week_index, 0), day_of_week`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing day rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.DayRule
	for rows.Next() {
		rule, err := scanDayRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

func (r *SQLiteDayRuleRepo) GetBySlot(ctx context.Context, weekIndex *int, dayOfWeek int) (*domain.DayRule, error) {
	query := `SELECT ` + dayRuleColumns + ` FROM day_rules
		WHERE COALESCE(week_index, 0) = COALESCE(?, 0) AND day_of_week = ?`
	row := r.db.QueryRowContext(ctx, query, nullableIntToValue(weekIndex), dayOfWeek)

	var rule domain.DayRule
	var wi sql.NullInt64
	var created, updated string
	err := row.Scan(&rule.ID, &rule.DayOfWeek, &wi, &rule.TagID, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("day rule: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning day rule: %w", err)
	}
	if wi.Valid {
		v := int(wi.Int64)
		rule.WeekIndex = &v
	}
	rule.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rule.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &rule, nil
}

func (r *SQLiteDayRuleRepo) DeleteBySlot(ctx context.Context, weekIndex *int, dayOfWeek int) error {
	query := `DELETE FROM day_rules WHERE COALESCE(week_index, 0) = COALESCE(?, 0) AND day_of_week = ?`
	if _, err := r.db.ExecContext(ctx, query, nullableIntToValue(weekIndex), dayOfWeek); err != nil {
		return fmt.Errorf("deleting day rule: %w", err)
	}
	return nil
}

func (r *SQLiteDayRuleRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM day_rules`); err != nil {
		return fmt.Errorf("clearing day rules: %w", err)
	}
	return nil
}

func scanDayRule(rows *sql.Rows) (*domain.DayRule, error) {
	var rule domain.DayRule
	var wi sql.NullInt64
	var created, updated string
	if err := rows.Scan(&rule.ID, &rule.DayOfWeek, &wi, &rule.TagID, &created, &updated); err != nil {
		return nil, fmt.Errorf("scanning day rule: %w", err)
	}
	if wi.Valid {
		v := int(wi.Int64)
		rule.WeekIndex = &v
	}
	rule.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rule.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &rule, nil
}
