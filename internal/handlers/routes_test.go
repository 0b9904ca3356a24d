package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benx421/account-api/internal/middleware"
	"github.com/benx421/account-api/internal/models"
	repomocks "github.com/benx421/account-api/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRouter_Prefix(t *testing.T) {
	accounts, health := newServiceMocks(t)
	mux := newMux(NewHandler(accounts, health, testLogger()), "/api/v2")

	accounts.On("Get", mock.Anything, int64(1)).Return(sampleAccount(1), nil)
	health.On("PingContext", mock.Anything).Return(nil)

	assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/api/v2/account/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodGet, "/v1/account/1", "").Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodGet, "/api/v2/health", "").Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rec := serve(mux, http.MethodPatch, "/v1/account/1", `{}`)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_SystemRoutes(t *testing.T) {
	mux, _, _ := newTestMux(t)

	metricsRec := serve(mux, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), "go_goroutines")

	assert.Equal(t, http.StatusMovedPermanently, serve(mux, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/docs/openapi", "").Code)
}

func TestWithMiddleware_ReplaysCreate(t *testing.T) {
	accounts, health := newServiceMocks(t)
	idempotency := repomocks.NewMockIdempotencyRepository(t)
	handler := withMiddleware(newMux(NewHandler(accounts, health, testLogger()), "/v1"), idempotency, "/v1", testLogger())

	stored := &models.IdempotencyKey{
		Key:            "create-1",
		RequestPath:    "/v1/account",
		ResponseStatus: http.StatusCreated,
		ResponseBody:   `{"id":1}`,
	}
	idempotency.On("Get", mock.Anything, "create-1", "/v1/account").Return(stored, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/account",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"Test1234!"}`))
	req.Header.Set("Idempotency-Key", "create-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Idempotent-Replayed"))
	assert.Equal(t, `{"id":1}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWithMiddleware_RecoversPanics(t *testing.T) {
	accounts, health := newServiceMocks(t)
	idempotency := repomocks.NewMockIdempotencyRepository(t)
	handler := withMiddleware(newMux(NewHandler(accounts, health, testLogger()), "/v1"), idempotency, "/v1", testLogger())

	accounts.On("Get", mock.Anything, int64(1)).Run(func(mock.Arguments) { panic("unexpected") })

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/account/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}
