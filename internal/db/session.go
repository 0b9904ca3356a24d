package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Session is a transaction checked out for one unit of work. It satisfies
// sqlx.ExtContext so repositories can be bound to it. Nothing is committed
// unless Commit is called.
type Session struct {
	ext    sqlx.ExtContext
	tx     *sqlx.Tx
	logger *slog.Logger
	done   bool
}

var _ sqlx.ExtContext = (*Session)(nil)

// WithSession runs fn inside a scoped session. If fn returns an error or
// panics the transaction is rolled back before the session is released
// (panics are re-raised). On normal completion the session is released
// without committing.
func (db *DB) WithSession(ctx context.Context, fn func(ctx context.Context, s *Session) error) (err error) {
	if db.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.queryTimeout)
		defer cancel()
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin session: %w", err)
	}

	s := &Session{ext: tx, tx: tx, logger: db.logger}
	if db.echo {
		s.ext = &echoQuerier{ExtContext: tx, logger: db.logger}
	}

	defer func() {
		if p := recover(); p != nil {
			s.rollback(ctx, "panic")
			panic(p)
		}
		if err != nil {
			s.rollback(ctx, err.Error())
			return
		}
		s.release(ctx)
	}()

	return fn(ctx, s)
}

// Commit commits the session's transaction. A committed session is released
// without further action.
func (s *Session) Commit() error {
	if s.done {
		return sql.ErrTxDone
	}
	s.done = true
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

func (s *Session) rollback(ctx context.Context, reason string) {
	if s.done {
		return
	}
	s.done = true
	s.logger.DebugContext(ctx, "rolling back session", "reason", reason)
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.ErrorContext(ctx, "failed to roll back session", "error", err)
	}
}

func (s *Session) release(ctx context.Context) {
	if s.done {
		return
	}
	s.done = true
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.WarnContext(ctx, "failed to release session", "error", err)
	}
}

func (s *Session) DriverName() string {
	return s.ext.DriverName()
}

func (s *Session) Rebind(query string) string {
	return s.ext.Rebind(query)
}

func (s *Session) BindNamed(query string, arg any) (string, []any, error) {
	return s.ext.BindNamed(query, arg)
}

func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.ext.QueryContext(ctx, query, args...)
}

func (s *Session) QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	return s.ext.QueryxContext(ctx, query, args...)
}

func (s *Session) QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row {
	return s.ext.QueryRowxContext(ctx, query, args...)
}

func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.ext.ExecContext(ctx, query, args...)
}
