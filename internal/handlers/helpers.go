package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/benx421/account-api/internal/api"
	"github.com/benx421/account-api/internal/models"
	"github.com/benx421/account-api/internal/service"
)

const maxBodyBytes = 1 << 20

const internalErrorMessage = "Internal server error"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing useful to do if write fails
	json.NewEncoder(w).Encode(body)
}

func errorBody(code api.ErrorCode, message, field string) api.ErrorJSONResponse {
	resp := api.ErrorJSONResponse{Error: code, Message: message}
	if field != "" {
		resp.Field = &field
	}
	return resp
}

// serviceError maps a service error to its HTTP status and error body.
// Internal errors are logged and replaced with a generic message.
func (h *Handler) serviceError(ctx context.Context, operation string, err error) (int, api.ErrorJSONResponse) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		svcErr = &service.ServiceError{Code: service.ErrCodeInternalError, Err: err}
	}

	status := mapServiceErrorToStatus(svcErr.Code)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", "operation", operation, "error", err)
		return status, errorBody(api.ErrorCodeInternalError, internalErrorMessage, "")
	}

	return status, errorBody(mapServiceErrorToCode(svcErr.Code), svcErr.Message, svcErr.Field)
}

func mapServiceErrorToCode(code string) api.ErrorCode {
	switch code {
	case service.ErrCodeValidation:
		return api.ErrorCodeValidationError
	case service.ErrCodeConflict:
		return api.ErrorCodeConflict
	case service.ErrCodeNotFound:
		return api.ErrorCodeNotFound
	default:
		return api.ErrorCodeInternalError
	}
}

func mapServiceErrorToStatus(code string) int {
	switch code {
	case service.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case service.ErrCodeConflict:
		return http.StatusConflict
	case service.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

// handleRequestError answers bodies the strict handler could not decode.
func (h *Handler) handleRequestError(w http.ResponseWriter, _ *http.Request, err error) {
	message := "request body must be valid JSON"
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		message = "request body is required"
	case errors.As(err, &maxErr):
		message = "request body too large"
	}
	writeJSON(w, http.StatusBadRequest, errorBody(api.ErrorCodeInvalidRequest, message, ""))
}

// handleResponseError covers failures after the operation returned.
func (h *Handler) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "failed to write response",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, errorBody(api.ErrorCodeInternalError, internalErrorMessage, ""))
}

// handleParamError answers path and header parameters that fail to bind.
// A non-integer id is a validation failure on the id field.
func (h *Handler) handleParamError(w http.ResponseWriter, _ *http.Request, err error) {
	var paramErr *api.InvalidParamFormatError
	if errors.As(err, &paramErr) && paramErr.ParamName == "id" {
		writeJSON(w, http.StatusUnprocessableEntity,
			errorBody(api.ErrorCodeValidationError, "id must be a positive integer", "id"))
		return
	}
	writeJSON(w, http.StatusBadRequest, errorBody(api.ErrorCodeInvalidRequest, err.Error(), ""))
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func toAPIAccount(account *models.Account) api.Account {
	return api.Account{
		Id:         account.ID,
		Username:   account.Username,
		Email:      account.Email,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
		IsAdmin:    account.IsAdmin,
		IsLoggedIn: account.IsLoggedIn,
		IsVerified: account.IsVerified,
	}
}
