package api

import (
	"context"
	"fmt"

	"github.com/nao1215/youto/internal/rowgateway"
)

// schema bootstraps a development SQLite database. PostgreSQL deployments
// are provisioned out of band.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    first_name TEXT,
    last_name TEXT,
    tel_number TEXT,
    birth_date DATE,
    inscription_date DATE,
    password TEXT,
    id_role INTEGER NOT NULL DEFAULT 1,
    city TEXT
)`,
	`CREATE TABLE IF NOT EXISTS article (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT,
    content TEXT
)`,
	`CREATE TABLE IF NOT EXISTS img (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT,
    image BLOB,
    article_id INTEGER REFERENCES article(id)
)`,
	`CREATE TABLE IF NOT EXISTS ap_categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT,
    description TEXT
)`,
	`CREATE TABLE IF NOT EXISTS administrative_procedure (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nom TEXT,
    description TEXT
)`,
	`CREATE TABLE IF NOT EXISTS appointement_tracking (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    id_appointement INTEGER,
    id_user INTEGER REFERENCES users(id),
    start_datetime TEXT,
    end_datetime TEXT
)`,
	`CREATE TABLE IF NOT EXISTS todo_list (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    task_description TEXT,
    status TEXT,
    deadline TEXT,
    id_user INTEGER REFERENCES users(id)
)`,
	`CREATE TABLE IF NOT EXISTS is_subcribed (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    id_user INTEGER REFERENCES users(id),
    start_date TEXT,
    end_date TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_appointement_tracking_user ON appointement_tracking(id_user)`,
	`CREATE INDEX IF NOT EXISTS idx_todo_list_user ON todo_list(id_user)`,
	`CREATE INDEX IF NOT EXISTS idx_is_subcribed_user ON is_subcribed(id_user)`,
}

// InitSchema applies the development schema through rows.
func InitSchema(ctx context.Context, rows rowgateway.Gateway) error {
	for _, stmt := range schema {
		if _, err := rows.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
