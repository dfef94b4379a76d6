package store

import (
	"context"
	"database/sql"
	_ "embed"
)

//go:embed schema.sql
var schema string

// SQLiteStore persists the actor key-value contract to a single SQLite
// table, the same driver and open-on-startup pattern the api server used
// for its user accounts, repointed at a generic (actor_kind, actor_id, key)
// row instead of a users table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the kv table on the given
// connection. The caller owns the *sql.DB's lifetime.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, actorKind, actorID, key string) ([]byte, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE actor_kind = ? AND actor_id = ? AND key = ?`,
		actorKind, actorID, key)
	var value []byte
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, actorKind, actorID, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (actor_kind, actor_id, key, value, updated_at)
		VALUES (?, ?, ?, ?, unixepoch())
		ON CONFLICT(actor_kind, actor_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, actorKind, actorID, key, value)
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, actorKind, actorID, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_store WHERE actor_kind = ? AND actor_id = ? AND key = ?`,
		actorKind, actorID, key)
	return err
}
