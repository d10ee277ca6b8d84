package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/domain"
)

// recipeColumns is the canonical SELECT column list for recipes.
const recipeColumns = `id, name, url, image_url, description, created_at, updated_at`

// SQLiteRecipeRepo implements RecipeRepo using a SQLite database.
// Tag memberships live in the recipe_tags join table and are loaded with
// every read, so the engine always sees each recipe's full tag set.
type SQLiteRecipeRepo struct {
	db db.DBTX
}

// NewSQLiteRecipeRepo creates a new SQLiteRecipeRepo.
func NewSQLiteRecipeRepo(conn db.DBTX) *SQLiteRecipeRepo {
	return &SQLiteRecipeRepo{db: conn}
}

func (r *SQLiteRecipeRepo) Create(ctx context.Context, rec *domain.Recipe) error {
	query := `INSERT INTO recipes (name, url, image_url, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rec.Name,
		rec.URL,
		rec.ImageURL,
		rec.Description,
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading recipe id: %w", err)
	}
	rec.ID = id

	if len(rec.TagIDs) > 0 {
		if err := r.SetTags(ctx, rec.ID, rec.TagIDs); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecipeRepo) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = ?`
	rec, err := r.scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	tags, err := r.loadTagIDs(ctx, []int64{rec.ID})
	if err != nil {
		return nil, err
	}
	rec.TagIDs = tags[rec.ID]
	return rec, nil
}

func (r *SQLiteRecipeRepo) List(ctx context.Context) ([]domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	var ids []int64
	for rows.Next() {
		rec, err := scanRecipeRow(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
		ids = append(ids, rec.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}

	tagsByRecipe, err := r.loadTagIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].TagIDs = tagsByRecipe[recipes[i].ID]
	}
	return recipes, nil
}

func (r *SQLiteRecipeRepo) Update(ctx context.Context, rec *domain.Recipe) error {
	query := `UPDATE recipes SET name = ?, url = ?, image_url = ?, description = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.Name,
		rec.URL,
		rec.ImageURL,
		rec.Description,
		rec.UpdatedAt.Format(time.RFC3339),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recipe %d: %w", rec.ID, ErrNotFound)
	}
	return r.SetTags(ctx, rec.ID, rec.TagIDs)
}

// SetTags replaces the recipe's tag memberships wholesale.
func (r *SQLiteRecipeRepo) SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("clearing recipe tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`, recipeID, tagID); err != nil {
			return fmt.Errorf("linking recipe %d to tag %d: %w", recipeID, tagID, err)
		}
	}
	return nil
}

func (r *SQLiteRecipeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}
	return nil
}

// loadTagIDs fetches tag memberships for the given recipes in one query.
func (r *SQLiteRecipeRepo) loadTagIDs(ctx context.Context, recipeIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	query := `SELECT recipe_id, tag_id FROM recipe_tags ORDER BY recipe_id, tag_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading recipe tags: %w", err)
	}
	defer rows.Close()

	wanted := make(map[int64]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		wanted[id] = true
	}
	for rows.Next() {
		var recipeID, tagID int64
		if err := rows.Scan(&recipeID, &tagID); err != nil {
			return nil, fmt.Errorf("scanning recipe tag: %w", err)
		}
		if wanted[recipeID] {
			out[recipeID] = append(out[recipeID], tagID)
		}
	}
	return out, rows.Err()
}

func (r *SQLiteRecipeRepo) scanRecipe(row *sql.Row) (*domain.Recipe, error) {
	var rec domain.Recipe
	var created, updated string
	err := row.Scan(&rec.ID, &rec.Name, &rec.URL, &rec.ImageURL, &rec.Description, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("recipe: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &rec, nil
}

func scanRecipeRow(rows *sql.Rows) (*domain.Recipe, error) {
	var rec domain.Recipe
	var created, updated string
	if err := rows.Scan(&rec.ID, &rec.Name, &rec.URL, &rec.ImageURL, &rec.Description, &created, &updated); err != nil {
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &rec, nil
}
