package handlers

import (
	"context"
	"net/http"

	"github.com/benx421/account-api/internal/api"
	"github.com/benx421/account-api/internal/models"
	"github.com/benx421/account-api/internal/service"
)

// CreateAccount handles POST {prefix}/account
func (h *Handler) CreateAccount(
	ctx context.Context,
	request api.CreateAccountRequestObject,
) (api.CreateAccountResponseObject, error) {
	account, err := h.accountService.Create(ctx, models.NewAccount{
		Username: request.Body.Username,
		Email:    request.Body.Email,
		Password: request.Body.Password,
	})
	if err != nil {
		status, body := h.serviceError(ctx, "create", err)
		switch status {
		case http.StatusUnprocessableEntity:
			return api.CreateAccount422JSONResponse{ErrorJSONResponse: body}, nil
		case http.StatusConflict:
			return api.CreateAccount409JSONResponse{ErrorJSONResponse: body}, nil
		default:
			return api.CreateAccount500JSONResponse{ErrorJSONResponse: body}, nil
		}
	}

	return api.CreateAccount201JSONResponse(toAPIAccount(account)), nil
}

// ListAccounts handles GET {prefix}/account
func (h *Handler) ListAccounts(
	ctx context.Context,
	_ api.ListAccountsRequestObject,
) (api.ListAccountsResponseObject, error) {
	accounts, err := h.accountService.List(ctx)
	if err != nil {
		_, body := h.serviceError(ctx, "list", err)
		return api.ListAccounts500JSONResponse{ErrorJSONResponse: body}, nil
	}

	if len(accounts) == 0 {
		return api.ListAccounts404JSONResponse{
			ErrorJSONResponse: errorBody(api.ErrorCodeNotFound, "No accounts found", ""),
		}, nil
	}

	resp := make(api.ListAccounts200JSONResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, toAPIAccount(&accounts[i]))
	}

	return resp, nil
}

// GetAccount handles GET {prefix}/account/{id}
func (h *Handler) GetAccount(
	ctx context.Context,
	request api.GetAccountRequestObject,
) (api.GetAccountResponseObject, error) {
	account, err := h.getAccount(ctx, request.Id)
	if err != nil {
		status, body := h.serviceError(ctx, "get", err)
		switch status {
		case http.StatusUnprocessableEntity:
			return api.GetAccount422JSONResponse{ErrorJSONResponse: body}, nil
		case http.StatusNotFound:
			return api.GetAccount404JSONResponse{ErrorJSONResponse: body}, nil
		default:
			return api.GetAccount500JSONResponse{ErrorJSONResponse: body}, nil
		}
	}

	return api.GetAccount200JSONResponse(toAPIAccount(account)), nil
}

func (h *Handler) getAccount(ctx context.Context, id int64) (*models.Account, error) {
	if err := service.ValidateID(id); err != nil {
		return nil, err
	}
	return h.accountService.Get(ctx, id)
}

// UpdateAccount handles PUT {prefix}/account/{id}
func (h *Handler) UpdateAccount(
	ctx context.Context,
	request api.UpdateAccountRequestObject,
) (api.UpdateAccountResponseObject, error) {
	account, err := h.updateAccount(ctx, request.Id, models.AccountUpdate{
		Username: request.Body.Username,
		Email:    request.Body.Email,
		Password: request.Body.Password,
	})
	if err != nil {
		status, body := h.serviceError(ctx, "update", err)
		switch status {
		case http.StatusUnprocessableEntity:
			return api.UpdateAccount422JSONResponse{ErrorJSONResponse: body}, nil
		case http.StatusNotFound:
			return api.UpdateAccount404JSONResponse{ErrorJSONResponse: body}, nil
		case http.StatusConflict:
			return api.UpdateAccount409JSONResponse{ErrorJSONResponse: body}, nil
		default:
			return api.UpdateAccount500JSONResponse{ErrorJSONResponse: body}, nil
		}
	}

	return api.UpdateAccount200JSONResponse(toAPIAccount(account)), nil
}

func (h *Handler) updateAccount(ctx context.Context, id int64, update models.AccountUpdate) (*models.Account, error) {
	if err := service.ValidateID(id); err != nil {
		return nil, err
	}
	return h.accountService.Update(ctx, id, update)
}

// DeleteAccount handles DELETE {prefix}/account/{id}
func (h *Handler) DeleteAccount(
	ctx context.Context,
	request api.DeleteAccountRequestObject,
) (api.DeleteAccountResponseObject, error) {
	deleted, err := h.deleteAccount(ctx, request.Id)
	if err != nil {
		status, body := h.serviceError(ctx, "delete", err)
		switch status {
		case http.StatusUnprocessableEntity:
			return api.DeleteAccount422JSONResponse{ErrorJSONResponse: body}, nil
		case http.StatusNotFound:
			return api.DeleteAccount404JSONResponse{ErrorJSONResponse: body}, nil
		default:
			return api.DeleteAccount500JSONResponse{ErrorJSONResponse: body}, nil
		}
	}

	return api.DeleteAccount200JSONResponse{IsDeleted: deleted}, nil
}

func (h *Handler) deleteAccount(ctx context.Context, id int64) (bool, error) {
	if err := service.ValidateID(id); err != nil {
		return false, err
	}
	return h.accountService.Delete(ctx, id)
}
