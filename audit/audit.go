// Package audit keeps a local record of login attempts. Passwords are
// never written here; the schema has no column for them.
package audit

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

// Attempt is one submitted login, successful or not.
type Attempt struct {
	ConnID   string
	Server   string
	Database string
	Username string
	Outcome  Outcome
	Detail   string
}

// RecentTarget is a previously used server/database pair, offered as a
// prefill suggestion on the login form.
type RecentTarget struct {
	Server   string
	Database string
}

func InitDB(dataSourceName string) error {
	var err error
	DB, err = sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return err
	}

	createTables := `
	CREATE TABLE IF NOT EXISTS login_attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conn_id TEXT NOT NULL,
		server TEXT NOT NULL,
		database_name TEXT NOT NULL,
		username TEXT NOT NULL,
		outcome TEXT NOT NULL,
		detail TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err = DB.Exec(createTables)
	return err
}

// Record appends one attempt to the log.
func Record(ctx context.Context, a Attempt) error {
	_, err := DB.ExecContext(ctx,
		"INSERT INTO login_attempts (conn_id, server, database_name, username, outcome, detail) VALUES (?, ?, ?, ?, ?, ?)",
		a.ConnID, a.Server, a.Database, a.Username, string(a.Outcome), a.Detail)
	return err
}

// Recent returns up to limit distinct server/database pairs, most recently
// attempted first.
func Recent(ctx context.Context, limit int) ([]RecentTarget, error) {
	rows, err := DB.QueryContext(ctx,
		`SELECT server, database_name
		 FROM login_attempts
		 GROUP BY server, database_name
		 ORDER BY MAX(created_at) DESC, MAX(id) DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []RecentTarget
	for rows.Next() {
		var t RecentTarget
		if err := rows.Scan(&t.Server, &t.Database); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}
