package db

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// echoQuerier logs every statement at debug before delegating.
type echoQuerier struct {
	sqlx.ExtContext
	logger *slog.Logger
}

func (q *echoQuerier) log(ctx context.Context, query string, args []any) {
	q.logger.DebugContext(ctx, "sql", "query", query, "args_count", len(args))
}

func (q *echoQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	q.log(ctx, query, args)
	return q.ExtContext.QueryContext(ctx, query, args...)
}

func (q *echoQuerier) QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	q.log(ctx, query, args)
	return q.ExtContext.QueryxContext(ctx, query, args...)
}

func (q *echoQuerier) QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row {
	q.log(ctx, query, args)
	return q.ExtContext.QueryRowxContext(ctx, query, args...)
}

func (q *echoQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	q.log(ctx, query, args)
	return q.ExtContext.ExecContext(ctx, query, args...)
}
