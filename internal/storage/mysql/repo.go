// Package mysql stores the key/value blobs in a shared MySQL table so several
// API processes see the same hotels and reservations.
package mysql

import (
	"context"
	"database/sql"
	"errors"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx, getSQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *Repo) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, upsertSQL, key, value)
	return err
}

func (r *Repo) Del(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, deleteSQL, key)
	return err
}
