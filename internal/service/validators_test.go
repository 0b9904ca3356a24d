package service

import (
	"strings"
	"testing"

	"github.com/benx421/account-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "strong password", password: "Test1234!"},
		{name: "unicode symbol", password: "Secr3tpass€"},
		{name: "too short", password: "T1!a", wantErr: "at least 8 characters"},
		{name: "missing upper", password: "test1234!", wantErr: "upper case"},
		{name: "missing lower", password: "TEST1234!", wantErr: "lower case"},
		{name: "missing digit", password: "Testtest!", wantErr: "digit"},
		{name: "missing symbol", password: "Test12345", wantErr: "symbol"},
		{name: "empty", password: "", wantErr: "at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		wantErr bool
	}{
		{name: "positive", id: 1},
		{name: "zero", id: 0, wantErr: true},
		{name: "negative", id: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, ErrCodeValidation, svcErr.Code)
			assert.Equal(t, "id", svcErr.Field)
		})
	}
}

func TestValidator_NewAccount(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		input     models.NewAccount
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid",
			input: models.NewAccount{Username: "alice", Email: "alice@example.com", Password: "Test1234!"},
		},
		{
			name:      "missing username",
			input:     models.NewAccount{Email: "alice@example.com", Password: "Test1234!"},
			wantField: "username",
			wantMsg:   "username is required",
		},
		{
			name:      "short username",
			input:     models.NewAccount{Username: "al", Email: "alice@example.com", Password: "Test1234!"},
			wantField: "username",
			wantMsg:   "username must be at least 3 characters",
		},
		{
			name:      "bad email",
			input:     models.NewAccount{Username: "alice", Email: "not-an-email", Password: "Test1234!"},
			wantField: "email",
			wantMsg:   "email must be a valid email address",
		},
		{
			name:      "overlong password",
			input:     models.NewAccount{Username: "alice", Email: "alice@example.com", Password: "Aa1!" + strings.Repeat("x", 2000)},
			wantField: "password",
			wantMsg:   "password must be at most 1024 characters",
		},
		{
			name:  "password at the column limit",
			input: models.NewAccount{Username: "alice", Email: "alice@example.com", Password: "Aa1!" + strings.Repeat("x", 1020)},
		},
		{
			name:      "weak password",
			input:     models.NewAccount{Username: "alice", Email: "alice@example.com", Password: "password"},
			wantField: "password",
			wantMsg:   "password must contain an upper case letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, ErrCodeValidation, svcErr.Code)
			assert.Equal(t, tt.wantField, svcErr.Field)
			assert.Equal(t, tt.wantMsg, svcErr.Message)
		})
	}
}

func TestValidator_AccountUpdate(t *testing.T) {
	v := NewValidator()
	str := func(s string) *string { return &s }

	assert.NoError(t, v.Struct(models.AccountUpdate{}))
	assert.NoError(t, v.Struct(models.AccountUpdate{Email: str("new@example.com")}))

	var svcErr *ServiceError
	require.ErrorAs(t, v.Struct(models.AccountUpdate{Email: str("nope")}), &svcErr)
	assert.Equal(t, "email", svcErr.Field)

	require.ErrorAs(t, v.Struct(models.AccountUpdate{Password: str("Short1!")}), &svcErr)
	assert.Equal(t, "password", svcErr.Field)
	assert.Equal(t, "password must be at least 8 characters", svcErr.Message)

	require.ErrorAs(t, v.Struct(models.AccountUpdate{Password: str("Aa1!" + strings.Repeat("x", 1021))}), &svcErr)
	assert.Equal(t, "password", svcErr.Field)
	assert.Equal(t, "password must be at most 1024 characters", svcErr.Message)

	require.ErrorAs(t, v.Struct(models.AccountUpdate{Username: str("")}), &svcErr)
	assert.Equal(t, "username", svcErr.Field)
}
