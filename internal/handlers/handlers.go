// Package handlers implements HTTP handlers for the account API.
package handlers

import (
	"log/slog"

	"github.com/benx421/account-api/internal/api"
	"github.com/benx421/account-api/internal/service"
)

// Handler implements the api.StrictServerInterface for all endpoints
type Handler struct {
	accountService service.AccountManager
	healthChecker  service.HealthChecker
	logger         *slog.Logger
}

var _ api.StrictServerInterface = (*Handler)(nil)

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	accountService service.AccountManager,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accountService: accountService,
		healthChecker:  healthChecker,
		logger:         logger,
	}
}
