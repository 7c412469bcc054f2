// Package pgxstore implements storage.RequestStore on PostgreSQL through pgx.
package pgxstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	"github.com/rendezvous-lab/rendezvous/internal/core/partition"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
)

const (
	connectAttempts   = 5
	connectRetryDelay = 2 * time.Second
	uniqueViolation   = "23505"
)

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// NewPool creates and validates a pgxpool connection pool.
// It retries a few times to accommodate a database that is still starting up.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolCfg.MaxConns {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		slog.Warn("[PgxStore] Connect attempt failed",
			"attempt", attempt,
			"max_attempts", connectAttempts,
			"error", err)
		if attempt == connectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryDelay):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	slog.Info("[PgxStore] Connection pool ready", "max_conns", poolCfg.MaxConns, "min_conns", poolCfg.MinConns)
	return pool, nil
}

// SQLDB exposes pool as a *sql.DB for tools built on database/sql, such as migrations.
// Closing the returned handle does not close pool.
func SQLDB(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txBeginner is satisfied by *pgxpool.Pool.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RequestStore implements storage.RequestStore.
type RequestStore struct {
	requests
	db   txBeginner
	pool *pgxpool.Pool
}

// NewRequestStore wraps pool. The requests schema must already exist.
func NewRequestStore(pool *pgxpool.Pool) *RequestStore {
	return &RequestStore{requests: requests{q: pool}, db: pool, pool: pool}
}

// WithinEvent runs fn in one transaction holding the event's advisory lock.
// The lock is released on commit or rollback, so it never outlives fn.
func (s *RequestStore) WithinEvent(ctx context.Context, eventID string, fn func(tx storage.RequestTx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Runs on error, panic and after commit, where it is a no-op.
	defer func() {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Error("[PgxStore] Rollback failed", "event_id", eventID, "error", rbErr)
		}
	}()

	if _, err := tx.Exec(ctx, queryLockEvent, partition.LockKey(eventID)); err != nil {
		return fmt.Errorf("lock event %s: %w", eventID, err)
	}

	if err := fn(requests{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *RequestStore) ConfirmedCounts(ctx context.Context, eventIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	rows, err := s.q.Query(ctx, queryConfirmedCounts, eventIDs, string(v1.RequestConfirmed))
	if err != nil {
		return nil, fmt.Errorf("count confirmed requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID string
			n       int
		)
		if err := rows.Scan(&eventID, &n); err != nil {
			return nil, fmt.Errorf("scan confirmed count: %w", err)
		}
		counts[eventID] = n
	}
	return counts, rows.Err()
}

// Ping reports database reachability for the health endpoint.
func (s *RequestStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// requests implements storage.RequestTx over either the pool or an open transaction.
type requests struct {
	q querier
}

func (r requests) Create(ctx context.Context, req *v1.Request) error {
	_, err := r.q.Exec(ctx, queryCreateRequest,
		req.ID, req.EventID, req.RequesterID, string(req.Status), req.Created)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r requests) UpdateStatus(ctx context.Context, id string, from, to v1.RequestStatus) error {
	tag, err := r.q.Exec(ctx, queryUpdateRequestStatus, id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("update request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrStale
	}
	return nil
}

func (r requests) FindByID(ctx context.Context, id string) (*v1.Request, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, queryFindRequestByID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get request %s: %w", id, err)
	}
	return req, nil
}

func (r requests) FindAllByEvent(ctx context.Context, eventID string) ([]*v1.Request, error) {
	return r.list(ctx, queryFindRequestsByEvent, eventID)
}

func (r requests) FindAllByRequester(ctx context.Context, requesterID string) ([]*v1.Request, error) {
	return r.list(ctx, queryFindRequestsByRequester, requesterID)
}

func (r requests) ExistsActive(ctx context.Context, eventID, requesterID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, queryExistsActiveRequest,
		eventID, requesterID, []string{string(v1.RequestPending), string(v1.RequestConfirmed)},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active request: %w", err)
	}
	return exists, nil
}

func (r requests) CountByEventAndStatus(ctx context.Context, eventID string, status v1.RequestStatus) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, queryCountRequests, eventID, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return n, nil
}

func (r requests) list(ctx context.Context, query string, arg string) ([]*v1.Request, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []*v1.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanRequest(row pgx.Row) (*v1.Request, error) {
	var (
		req    v1.Request
		status string
	)
	if err := row.Scan(&req.ID, &req.EventID, &req.RequesterID, &status, &req.Created); err != nil {
		return nil, err
	}
	req.Status = v1.RequestStatus(status)
	req.Created = req.Created.UTC()
	return &req, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
