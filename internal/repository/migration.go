package repository

import (
	"context"
	"fmt"
	"strings"
)

type column struct {
	name string
	def  string
}

type table struct {
	name    string
	columns []column
	indexes []string
}

// schema is additive: new columns are appended and picked up by Migrate on
// existing databases. Columns are never dropped or rewritten.
var schema = []table{
	{
		name: "users",
		columns: []column{
			{"id", "TEXT PRIMARY KEY"},
			{"username", "TEXT NOT NULL"},
			{"password", "TEXT"},
			{"email", "TEXT NOT NULL"},
			{"google_id", "TEXT"},
			{"google_name", "TEXT"},
			{"google_picture", "TEXT"},
			{"last_login", "TIMESTAMP"},
			{"created_at", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"},
		},
		indexes: []string{
			"CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username)",
			"CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)",
			"CREATE UNIQUE INDEX IF NOT EXISTS users_google_id_key ON users (google_id)",
		},
	},
	{
		name: "incomes",
		columns: []column{
			{"id", "TEXT PRIMARY KEY"},
			{"user_id", "TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
			{"source", "TEXT NOT NULL"},
			{"category", "TEXT NOT NULL"},
			{"amount", "TEXT NOT NULL"},
			{"type", "TEXT NOT NULL"},
			{"frequency", "TEXT NOT NULL"},
			{"notes", "TEXT"},
			{"created_at", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"},
		},
		indexes: []string{"CREATE INDEX IF NOT EXISTS incomes_user_id_idx ON incomes (user_id)"},
	},
	{
		name: "expenses",
		columns: []column{
			{"id", "TEXT PRIMARY KEY"},
			{"user_id", "TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
			{"category", "TEXT NOT NULL"},
			{"amount", "TEXT NOT NULL"},
			{"description", "TEXT NOT NULL"},
			{"date", "TIMESTAMP NOT NULL"},
			{"notes", "TEXT"},
			{"created_at", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"},
		},
		indexes: []string{"CREATE INDEX IF NOT EXISTS expenses_user_id_idx ON expenses (user_id)"},
	},
	{
		name: "assets",
		columns: []column{
			{"id", "TEXT PRIMARY KEY"},
			{"user_id", "TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
			{"name", "TEXT NOT NULL"},
			{"category", "TEXT NOT NULL"},
			{"value", "TEXT NOT NULL"},
			{"income_generated", "TEXT NOT NULL DEFAULT '0'"},
			{"notes", "TEXT"},
			{"created_at", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"},
		},
		indexes: []string{"CREATE INDEX IF NOT EXISTS assets_user_id_idx ON assets (user_id)"},
	},
	{
		name: "liabilities",
		columns: []column{
			{"id", "TEXT PRIMARY KEY"},
			{"user_id", "TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
			{"description", "TEXT NOT NULL"},
			{"type", "TEXT NOT NULL"},
			{"amount", "TEXT NOT NULL"},
			{"interest_rate", "TEXT NOT NULL DEFAULT '0'"},
			{"notes", "TEXT"},
			{"created_at", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"},
		},
		indexes: []string{"CREATE INDEX IF NOT EXISTS liabilities_user_id_idx ON liabilities (user_id)"},
	},
	{
		name: "goals",
		columns: []column{
			{"id", "TEXT PRIMARY KEY"},
			{"user_id", "TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
			{"description", "TEXT NOT NULL"},
			{"target_amount", "TEXT NOT NULL"},
			{"current_amount", "TEXT NOT NULL DEFAULT '0'"},
			{"target_date", "DATE NOT NULL"},
			{"created_at", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"},
		},
		indexes: []string{"CREATE INDEX IF NOT EXISTS goals_user_id_idx ON goals (user_id)"},
	},
}

// Migrate creates missing tables, adds missing columns and ensures indexes.
func (r *Repository) Migrate(ctx context.Context) error {
	for _, t := range schema {
		defs := make([]string, 0, len(t.columns))
		for _, c := range t.columns {
			defs = append(defs, c.name+" "+c.def)
		}
		create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.name, strings.Join(defs, ",\n\t"))
		if _, err := r.db.ExecContext(ctx, create); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}

		existing, err := r.columnNames(ctx, t.name)
		if err != nil {
			return err
		}
		for _, c := range t.columns {
			if existing[c.name] {
				continue
			}
			alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", t.name, c.name, c.def)
			if _, err := r.db.ExecContext(ctx, alter); err != nil {
				return fmt.Errorf("failed to add column %s.%s: %w", t.name, c.name, err)
			}
		}

		for _, idx := range t.indexes {
			if _, err := r.db.ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", t.name, err)
			}
		}
	}
	return nil
}

func (r *Repository) columnNames(ctx context.Context, tableName string) (map[string]bool, error) {
	query := "SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?"
	if r.dialect == SQLite {
		query = "SELECT name FROM pragma_table_info(?)"
	}
	rows, err := r.query(ctx, query, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", tableName, err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		names[name] = true
	}
	return names, rows.Err()
}
