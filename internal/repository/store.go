package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// DBTX is the query surface shared by pgx.Tx, *pgx.Conn and *pgxpool.Pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories groups the repositories bound to one transaction.
type Repositories struct {
	Scientists ScientistRepository
	Planets    PlanetRepository
	Missions   MissionRepository
}

// New binds every repository to db.
func New(db DBTX) *Repositories {
	return &Repositories{
		Scientists: &scientistRepository{db: db},
		Planets:    &planetRepository{db: db},
		Missions:   &missionRepository{db: db},
	}
}

// TxFunc is a unit of work run against transaction-bound repositories.
type TxFunc func(repos *Repositories) error

// Store hands out transaction-scoped repositories.
//
// The transaction commits when fn returns nil and rolls back on any error
// or panic.
type Store interface {
	// Read runs fn in a read-only transaction.
	Read(ctx context.Context, fn TxFunc) error
	// Write runs fn in a read-write transaction.
	Write(ctx context.Context, fn TxFunc) error
}

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// PgStore is the PostgreSQL Store.
type PgStore struct {
	db TxBeginner
}

// NewStore returns a Store that opens transactions on db.
func NewStore(db TxBeginner) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) Read(ctx context.Context, fn TxFunc) error {
	return s.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (s *PgStore) Write(ctx context.Context, fn TxFunc) error {
	return s.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite}, fn)
}

func (s *PgStore) run(ctx context.Context, opts pgx.TxOptions, fn TxFunc) error {
	return pgx.BeginTxFunc(ctx, s.db, opts, func(tx pgx.Tx) error {
		return fn(New(tx))
	})
}
