package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/domain"
)

const mealPlanColumns = `id, name, start_date, end_date, is_active, created_at, updated_at`

// SQLiteMealPlanRepo implements MealPlanRepo using a SQLite database.
type SQLiteMealPlanRepo struct {
	db db.DBTX
}

// NewSQLiteMealPlanRepo creates a new SQLiteMealPlanRepo.
func NewSQLiteMealPlanRepo(conn db.DBTX) *SQLiteMealPlanRepo {
	return &SQLiteMealPlanRepo{db: conn}
}

func (r *SQLiteMealPlanRepo) Create(ctx context.Context, p *domain.MealPlan) error {
	query := `INSERT INTO meal_plans (id, name, start_date, end_date, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		boolToInt(p.IsActive),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting meal plan: %w", err)
	}
	return nil
}

func (r *SQLiteMealPlanRepo) GetByID(ctx context.Context, id string) (*domain.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans WHERE id = ?`
	return scanMealPlanRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMealPlanRepo) GetActive(ctx context.Context) (*domain.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans WHERE is_active = 1`
	return scanMealPlanRow(r.db.QueryRowContext(ctx, query))
}

func (r *SQLiteMealPlanRepo) List(ctx context.Context) ([]*domain.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans ORDER BY start_date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing meal plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.MealPlan
	for rows.Next() {
		p, err := scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// SetActive hands the active flag to the given plan. The clear comes
// first so the partial unique index never sees two active rows.
func (r *SQLiteMealPlanRepo) SetActive(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := r.db.ExecContext(ctx,
		`UPDATE meal_plans SET is_active = 0, updated_at = ? WHERE is_active = 1`, now); err != nil {
		return fmt.Errorf("deactivating previous plan: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE meal_plans SET is_active = 1, updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return fmt.Errorf("activating plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("meal plan %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteMealPlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting meal plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("meal plan %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanMealPlanRow(row *sql.Row) (*domain.MealPlan, error) {
	var p domain.MealPlan
	var active int
	var start, end, created, updated string
	err := row.Scan(&p.ID, &p.Name, &start, &end, &active, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("meal plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning meal plan: %w", err)
	}
	p.IsActive = intToBool(active)
	p.StartDate, _ = time.Parse(dateLayout, start)
	p.EndDate, _ = time.Parse(dateLayout, end)
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &p, nil
}

func scanMealPlan(rows *sql.Rows) (*domain.MealPlan, error) {
	var p domain.MealPlan
	var active int
	var start, end, created, updated string
	if err := rows.Scan(&p.ID, &p.Name, &start, &end, &active, &created, &updated); err != nil {
		return nil, fmt.Errorf("scanning meal plan: %w", err)
	}
	p.IsActive = intToBool(active)
	p.StartDate, _ = time.Parse(dateLayout, start)
	p.EndDate, _ = time.Parse(dateLayout, end)
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &p, nil
}
