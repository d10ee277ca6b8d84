package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/domain"
)

const mealPlanItemColumns = `id, meal_plan_id, date, recipe_id, created_at, updated_at`

// SQLiteMealPlanItemRepo implements MealPlanItemRepo using a SQLite database.
type SQLiteMealPlanItemRepo struct {
	db db.DBTX
}

// NewSQLiteMealPlanItemRepo creates a new SQLiteMealPlanItemRepo.
func NewSQLiteMealPlanItemRepo(conn db.DBTX) *SQLiteMealPlanItemRepo {
	return &SQLiteMealPlanItemRepo{db: conn}
}

func (r *SQLiteMealPlanItemRepo) CreateBatch(ctx context.Context, items []*domain.MealPlanItem) error {
	for _, it := range items {
		query := `INSERT INTO meal_plan_items (id, meal_plan_id, date, recipe_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`
		_, err := r.db.ExecContext(ctx, query,
			it.ID,
			it.MealPlanID,
			it.Date.Format(dateLayout),
			nullableInt64ToValue(it.RecipeID),
			it.CreatedAt.Format(time.RFC3339),
			it.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting meal plan item for %s: %w", it.Date.Format(dateLayout), err)
		}
	}
	return nil
}

func (r *SQLiteMealPlanItemRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.MealPlanItem, error) {
	query := `SELECT ` + mealPlanItemColumns + ` FROM meal_plan_items WHERE meal_plan_id = ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing meal plan items: %w", err)
	}
	defer rows.Close()

	var items []*domain.MealPlanItem
	for rows.Next() {
		it, err := scanMealPlanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *SQLiteMealPlanItemRepo) GetByPlanDate(ctx context.Context, planID string, date time.Time) (*domain.MealPlanItem, error) {
	query := `SELECT ` + mealPlanItemColumns + ` FROM meal_plan_items WHERE meal_plan_id = ? AND date = ?`
	row := r.db.QueryRowContext(ctx, query, planID, date.Format(dateLayout))

	var it domain.MealPlanItem
	var recipeID sql.NullInt64
	var dateStr, created, updated string
	err := row.Scan(&it.ID, &it.MealPlanID, &dateStr, &recipeID, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("meal plan item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning meal plan item: %w", err)
	}
	if recipeID.Valid {
		v := recipeID.Int64
		it.RecipeID = &v
	}
	it.Date, _ = time.Parse(dateLayout, dateStr)
	it.CreatedAt, _ = time.Parse(time.RFC3339, created)
	it.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &it, nil
}

// UpdateRecipe is the single-day swap write.
func (r *SQLiteMealPlanItemRepo) UpdateRecipe(ctx context.Context, itemID string, recipeID *int64) error {
	query := `UPDATE meal_plan_items SET recipe_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableInt64ToValue(recipeID),
		time.Now().UTC().Format(time.RFC3339),
		itemID,
	)
	if err != nil {
		return fmt.Errorf("updating meal plan item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("meal plan item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

func scanMealPlanItem(rows *sql.Rows) (*domain.MealPlanItem, error) {
	var it domain.MealPlanItem
	var recipeID sql.NullInt64
	var dateStr, created, updated string
	if err := rows.Scan(&it.ID, &it.MealPlanID, &dateStr, &recipeID, &created, &updated); err != nil {
		return nil, fmt.Errorf("scanning meal plan item: %w", err)
	}
	if recipeID.Valid {
		v := recipeID.Int64
		it.RecipeID = &v
	}
	it.Date, _ = time.Parse(dateLayout, dateStr)
	it.CreatedAt, _ = time.Parse(time.RFC3339, created)
	it.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &it, nil
}
