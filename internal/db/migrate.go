package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tags (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS recipes (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		url         TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_tags (
		recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		tag_id    INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (recipe_id, tag_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag_id)`,

	`CREATE TABLE IF NOT EXISTS day_rules (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		day_of_week INTEGER NOT NULL CHECK(day_of_week BETWEEN 1 AND 7),
		week_index  INTEGER CHECK(week_index IN (1, 2)),
		tag_id      INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	// One rule per (week_index, day_of_week) slot; week_index NULL is the
	// weekly variant, folded into slot 0 by COALESCE.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_day_rules_slot
		ON day_rules(COALESCE(week_index, 0), day_of_week)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id               TEXT PRIMARY KEY DEFAULT 'default',
		planner_duration INTEGER NOT NULL DEFAULT 7 CHECK(planner_duration IN (7, 14)),
		week_start_day   INTEGER NOT NULL DEFAULT 1 CHECK(week_start_day BETWEEN 1 AND 7),
		auto_create      INTEGER NOT NULL DEFAULT 0,
		fortnightly      INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS meal_plans (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		is_active  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// At most one plan may hold the active flag.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_meal_plans_active
		ON meal_plans(is_active) WHERE is_active = 1`,

	`CREATE TABLE IF NOT EXISTS meal_plan_items (
		id           TEXT PRIMARY KEY,
		meal_plan_id TEXT NOT NULL REFERENCES meal_plans(id) ON DELETE CASCADE,
		date         TEXT NOT NULL,
		recipe_id    INTEGER REFERENCES recipes(id) ON DELETE SET NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		UNIQUE (meal_plan_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meal_plan_items_plan ON meal_plan_items(meal_plan_id)`,
}
