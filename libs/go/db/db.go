package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// New returns a Queries bound to the given connection or pool
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries implements Querier on top of pgx
type Queries struct {
	db DBTX
}

// WithTx returns a copy of Queries that runs every statement inside tx
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

var _ Querier = (*Queries)(nil)
