package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vamsirusheel01/sentinel-ai/server/internal/repository/db"
)

// Store is the persistence surface the services depend on: the generated
// query set plus transaction execution.
type Store interface {
	db.Querier
	ExecTx(ctx context.Context, fn func(db.Querier) error) error
}

// SQLStore backs Store with a pgx connection pool.
type SQLStore struct {
	*db.Queries
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{
		Queries: db.New(pool),
		pool:    pool,
	}
}

// ExecTx runs fn inside a transaction, rolling back on error.
func (s *SQLStore) ExecTx(ctx context.Context, fn func(db.Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
