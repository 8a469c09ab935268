package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the board tables and indexes if they do not exist.
//
// The partial unique index on scrum_master backs the single-ScrumMaster
// rule against two concurrent grants; the services check it first.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, prefix string) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Memberships + ` (
			user_id TEXT NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			role TEXT NOT NULL CHECK (role IN ('observer', 'developer', 'scrum_master', 'owner')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, project_id)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Sprints + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Items + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			sprint_id UUID NOT NULL REFERENCES ` + tables.Sprints + `(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			title VARCHAR(500) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			story_points INTEGER,
			assigned_user_id TEXT REFERENCES ` + tables.Users + `(id) ON DELETE SET NULL,
			parent_id UUID REFERENCES ` + tables.Items + `(id) ON DELETE SET NULL,
			is_archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.ItemRelations + ` (
			first_item_id UUID NOT NULL REFERENCES ` + tables.Items + `(id) ON DELETE CASCADE,
			second_item_id UUID NOT NULL REFERENCES ` + tables.Items + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (first_item_id, second_item_id)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Comments + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			item_id UUID NOT NULL REFERENCES ` + tables.Items + `(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + prefix + `memberships_one_scrum_master
			ON ` + tables.Memberships + `(project_id) WHERE role = 'scrum_master'`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `memberships_project ON ` + tables.Memberships + `(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `sprints_project_end ON ` + tables.Sprints + `(project_id, end_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `items_sprint ON ` + tables.Items + `(sprint_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `items_parent ON ` + tables.Items + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `item_relations_second ON ` + tables.ItemRelations + `(second_item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `comments_item ON ` + tables.Comments + `(item_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropAllTables drops the board tables, dependents first
func DropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	all := tables.All()
	for i := len(all) - 1; i >= 0; i-- {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+all[i]+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", all[i], err)
		}
	}
	return nil
}
