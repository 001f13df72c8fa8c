// Package prefs persists small pieces of client-side state (auth token,
// serialized user, theme) as key-value pairs in a local sqlite database.
//
// When the database cannot be opened (read-only directory, restricted
// environment) the package silently degrades to an in-memory store: the
// session then simply does not survive a restart. This failure mode is never
// surfaced to the user.
package prefs

import (
	"context"
	"database/sql"

	"github.com/revumeapp/revume-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// Well-known keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyTheme = "theme"
)

// Store is a tiny key-value store. Get returns an empty string for a missing
// key; callers treat absence as "use the default".
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Open returns a sqlite-backed store at path, or an in-memory fallback if
// the database cannot be opened or initialized.
func Open(ctx context.Context, path string, log logging.Logger) Store {
	db, err := sql.Open("sqlite", path)
	if err == nil {
		err = initSchema(ctx, db)
	}
	if err != nil {
		log.Warn(ctx, "preferences storage unavailable, falling back to memory", "path", path, "err", err)
		return NewMemoryStore()
	}
	return NewSQLiteStore(db)
}

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS preferences (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	return err
}
