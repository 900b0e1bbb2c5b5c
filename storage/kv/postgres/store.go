// Package pgkv backs the KeyValueStore contract with a single postgres
// key/value table. Collections persist as JSON blobs, not relational rows;
// the table is created on open.
package pgkv

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

type Store struct {
	db *sqlx.DB
}

var _ core.KeyValueStore = (*Store)(nil)

func Open(conf core.StorageConfig) (*Store, error) {
	db, err := sqlx.Connect("postgres", conf.PostgresDSN)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating kv_blobs table")
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := s.db.GetContext(ctx, &val, `SELECT value FROM kv_blobs WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return "", core.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "getting %q", key)
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO kv_blobs (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	return errors.Wrapf(err, "setting %q", key)
}

func (s *Store) Close() error {
	return s.db.Close()
}
