package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/domain"
)

// SQLiteTagRepo implements TagRepo using a SQLite database.
type SQLiteTagRepo struct {
	db db.DBTX
}

// NewSQLiteTagRepo creates a new SQLiteTagRepo.
func NewSQLiteTagRepo(conn db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: conn}
}

func (r *SQLiteTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	query := `INSERT INTO tags (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading tag id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLiteTagRepo) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM tags WHERE id = ?`
	return r.scanTag(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTagRepo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM tags WHERE name = ?`
	return r.scanTag(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM tags ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		var created, updated string
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, created)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *SQLiteTagRepo) Update(ctx context.Context, t *domain.Tag) error {
	query := `UPDATE tags SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tag %d: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTagRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTagRepo) scanTag(row *sql.Row) (*domain.Tag, error) {
	var t domain.Tag
	var created, updated string
	err := row.Scan(&t.ID, &t.Name, &t.Description, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tag: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, created)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &t, nil
}
