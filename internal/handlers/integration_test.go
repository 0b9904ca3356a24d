//go:build integration

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benx421/account-api/internal/api"
	"github.com/benx421/account-api/internal/config"
	"github.com/benx421/account-api/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	server *httptest.Server
	prefix string
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err, "failed to load config")

	logger := testLogger()
	database, err := db.Connect(context.Background(), &cfg.Database, logger)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, database.Migrate(context.Background()), "failed to migrate test database")

	for _, table := range []string{"accounts", "idempotency_keys"} {
		_, err := database.ExecContext(context.Background(), "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE")
		require.NoError(t, err, "failed to truncate %s", table)
	}

	server := httptest.NewServer(NewRouter(database, cfg, logger))
	t.Cleanup(func() {
		server.Close()
		_ = database.Close()
	})

	return &testServer{server: server, prefix: cfg.Server.APIPrefix}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, s.server.URL+s.prefix+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func (s *testServer) createAccount(t *testing.T, username, email string) api.Account {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/account",
		fmt.Sprintf(`{"username":%q,"email":%q,"password":"Test1234!"}`, username, email))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var account api.Account
	require.NoError(t, json.Unmarshal(body, &account))
	return account
}

func TestIntegration_CreateAccount(t *testing.T) {
	s := setupServer(t)

	account := s.createAccount(t, "tgaa", "tgaa@gnx.de")

	assert.NotZero(t, account.Id)
	assert.Equal(t, "tgaa", account.Username)
	assert.Equal(t, "tgaa@gnx.de", account.Email)
	assert.False(t, account.IsAdmin)
	assert.True(t, account.IsLoggedIn)
	assert.False(t, account.IsVerified)
	assert.False(t, account.CreatedAt.IsZero())
}

func TestIntegration_DuplicateAccounts(t *testing.T) {
	s := setupServer(t)
	s.createAccount(t, "tgaa", "tgaa@gnx.de")

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "same username",
			body:      `{"username":"tgaa","email":"other@gnx.de","password":"Test1234!"}`,
			wantField: "username",
		},
		{
			name:      "same email",
			body:      `{"username":"other","email":"tgaa@gnx.de","password":"Test1234!"}`,
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, http.MethodPost, "/account", tt.body)
			require.Equal(t, http.StatusConflict, resp.StatusCode)

			var errResp api.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.Equal(t, api.ErrorCodeConflict, errResp.Error)
			require.NotNil(t, errResp.Field)
			assert.Equal(t, tt.wantField, *errResp.Field)
		})
	}
}

func TestIntegration_CreateValidation(t *testing.T) {
	s := setupServer(t)

	resp, _ := s.do(t, http.MethodPost, "/account", `{"username":"tgaa","email":"nope","password":"Test1234!"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/account", `{"username":"tgaa","email":"tgaa@gnx.de","password":"weak"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestIntegration_GetAccount(t *testing.T) {
	s := setupServer(t)
	created := s.createAccount(t, "tgaa", "tgaa@gnx.de")

	resp, body := s.do(t, http.MethodGet, fmt.Sprintf("/account/%d", created.Id), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.Account
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, created.Id, got.Id)
	assert.Equal(t, created.Email, got.Email)

	resp, body = s.do(t, http.MethodGet, "/account/999999", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "not found")
}

func TestIntegration_ListAccounts(t *testing.T) {
	s := setupServer(t)

	resp, _ := s.do(t, http.MethodGet, "/account", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "empty table should be 404")

	first := s.createAccount(t, "first", "first@gnx.de")
	second := s.createAccount(t, "second", "second@gnx.de")

	resp, body := s.do(t, http.MethodGet, "/account", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var accounts []api.Account
	require.NoError(t, json.Unmarshal(body, &accounts))
	require.Len(t, accounts, 2)
	assert.Equal(t, first.Id, accounts[0].Id)
	assert.Equal(t, second.Id, accounts[1].Id)
}

func TestIntegration_UpdateAccount(t *testing.T) {
	s := setupServer(t)
	created := s.createAccount(t, "tgaa", "tgaa@gnx.de")

	time.Sleep(10 * time.Millisecond)

	resp, body := s.do(t, http.MethodPut, fmt.Sprintf("/account/%d", created.Id), `{"email":"new@gnx.de"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var updated api.Account
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "new@gnx.de", updated.Email)
	assert.Equal(t, "tgaa", updated.Username, "unset fields keep their value")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at should advance")
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	resp, _ = s.do(t, http.MethodPut, "/account/999999", `{"username":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_UpdateCollision(t *testing.T) {
	s := setupServer(t)
	s.createAccount(t, "first", "first@gnx.de")
	second := s.createAccount(t, "second", "second@gnx.de")

	resp, _ := s.do(t, http.MethodPut, fmt.Sprintf("/account/%d", second.Id), `{"username":"first"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestIntegration_DeleteAccountTwice(t *testing.T) {
	s := setupServer(t)
	created := s.createAccount(t, "tgaa", "tgaa@gnx.de")
	path := fmt.Sprintf("/account/%d", created.Id)

	resp, body := s.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"isDeleted":true}`, string(body))

	resp, _ = s.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_IdempotentCreate(t *testing.T) {
	s := setupServer(t)
	body := `{"username":"tgaa","email":"tgaa@gnx.de","password":"Test1234!"}`

	first, firstBody := s.do(t, http.MethodPost, "/account", body, "Idempotency-Key", "create-tgaa")
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second, secondBody := s.do(t, http.MethodPost, "/account", body, "Idempotency-Key", "create-tgaa")
	require.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, "true", second.Header.Get("X-Idempotent-Replayed"))
	assert.JSONEq(t, string(firstBody), string(secondBody))
}
