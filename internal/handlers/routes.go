package handlers

import (
	"log/slog"
	"net/http"

	"github.com/benx421/account-api/internal/api"
	"github.com/benx421/account-api/internal/config"
	"github.com/benx421/account-api/internal/db"
	"github.com/benx421/account-api/internal/metrics"
	"github.com/benx421/account-api/internal/middleware"
	"github.com/benx421/account-api/internal/repository"
	"github.com/benx421/account-api/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	database *db.DB,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	accountService := service.NewAccountService(database, logger)
	handler := NewHandler(accountService, database, logger)
	idempotencyRepo := repository.NewIdempotencyRepository(database.Querier())

	return withMiddleware(newMux(handler, cfg.Server.APIPrefix), idempotencyRepo, cfg.Server.APIPrefix, logger)
}

func newMux(handler *Handler, prefix string) *http.ServeMux {
	strictHandler := api.NewStrictHandlerWithOptions(handler, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  handler.handleRequestError,
		ResponseErrorHandlerFunc: handler.handleResponseError,
	})

	mux := http.NewServeMux()
	api.HandlerWithOptions(strictHandler, api.StdHTTPServerOptions{
		BaseRouter:       api.PrefixedMux(mux, prefix),
		Middlewares:      []api.MiddlewareFunc{limitBody},
		ErrorHandlerFunc: handler.handleParamError,
	})

	mux.Handle("GET /metrics", metrics.Handler())
	api.RegisterDocsRoutes(mux, prefix)

	return mux
}

func withMiddleware(
	next http.Handler,
	idempotencyRepo repository.IdempotencyRepository,
	prefix string,
	logger *slog.Logger,
) http.Handler {
	finalHandler := metrics.InstrumentHandler(next)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger, prefix+"/account")(finalHandler)
	finalHandler = middleware.Recovery(logger)(finalHandler)
	finalHandler = middleware.RequestLogger(logger)(finalHandler)

	return finalHandler
}
