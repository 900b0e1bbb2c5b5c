// Package sqlitekv backs the KeyValueStore contract with a local sqlite
// file: the closest server-less analogue of the browser-local medium the
// original application flushed to.
package sqlitekv

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

type Store struct {
	db *sql.DB
}

var _ core.KeyValueStore = (*Store)(nil)

func Open(conf core.StorageConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", conf.SQLitePath)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite db")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating kv_blobs table")
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_blobs WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", core.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "getting %q", key)
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv_blobs (key, value) VALUES (?, ?)`, key, value)
	return errors.Wrapf(err, "setting %q", key)
}

func (s *Store) Close() error {
	return s.db.Close()
}
