// Package middleware provides HTTP middleware components for the account API.
package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/benx421/account-api/internal/models"
	"github.com/benx421/account-api/internal/repository"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"
)

type responseCapture struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default if WriteHeader not called
	}
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.statusCode = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b) // Capture for caching
	return rc.ResponseWriter.Write(b)
}

// Idempotency creates middleware that replays the stored response of a POST
// to one of paths when the client repeats its Idempotency-Key.
func Idempotency(repo repository.IdempotencyRepository, logger *slog.Logger, paths ...string) func(http.Handler) http.Handler {
	idempotentPaths := make([]string, 0, len(paths))
	for _, p := range paths {
		idempotentPaths = append(idempotentPaths, normalizeRequestPath(p))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresIdempotency(r, idempotentPaths) {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get(idempotencyKeyHeader)
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			requestPath := normalizeRequestPath(r.URL.Path)
			ctx := r.Context()

			cached, err := repo.Get(ctx, idempotencyKey, requestPath)
			if err != nil {
				logger.ErrorContext(ctx, "failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				logger.DebugContext(ctx, "returning cached idempotent response",
					"key", idempotencyKey,
					"path", requestPath,
					"status", cached.ResponseStatus,
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(replayedHeader, "true")
				w.WriteHeader(cached.ResponseStatus)
				//nolint:errcheck // Best effort response writing
				w.Write([]byte(cached.ResponseBody))
				return
			}

			capture := newResponseCapture(w)
			next.ServeHTTP(capture, r)

			if shouldCacheResponse(capture.statusCode) {
				idemKey := &models.IdempotencyKey{
					Key:            idempotencyKey,
					RequestPath:    requestPath,
					ResponseStatus: capture.statusCode,
					ResponseBody:   capture.body.String(),
					CreatedAt:      time.Now(),
				}

				if err := repo.Store(ctx, idemKey); err != nil {
					logger.ErrorContext(ctx, "failed to store idempotency key",
						"error", err,
						"key", idempotencyKey,
					)
				}
			}
		})
	}
}

// PurgeIdempotencyKeys deletes stored responses older than ttl every interval
// until ctx is cancelled.
func PurgeIdempotencyKeys(
	ctx context.Context,
	repo repository.IdempotencyRepository,
	ttl, interval time.Duration,
	logger *slog.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteOlderThan(ctx, time.Now().Add(-ttl))
			if err != nil {
				logger.ErrorContext(ctx, "failed to purge idempotency keys", "error", err)
				continue
			}
			if deleted > 0 {
				logger.InfoContext(ctx, "purged expired idempotency keys", "deleted", deleted)
			}
		}
	}
}

func requiresIdempotency(r *http.Request, paths []string) bool {
	if r.Method != http.MethodPost {
		return false
	}
	return slices.Contains(paths, normalizeRequestPath(r.URL.Path))
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}

func shouldCacheResponse(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
