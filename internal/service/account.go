package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/benx421/account-api/internal/db"
	"github.com/benx421/account-api/internal/metrics"
	"github.com/benx421/account-api/internal/models"
	"github.com/benx421/account-api/internal/repository"
)

// AccountService handles account persistence and the uniqueness rules around it
type AccountService struct {
	db        *db.DB
	validator *Validator
	logger    *slog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(database *db.DB, logger *slog.Logger) *AccountService {
	return &AccountService{
		db:        database,
		validator: NewValidator(),
		logger:    logger,
	}
}

// Create validates input, checks email then username for collisions and
// inserts the account.
func (s *AccountService) Create(ctx context.Context, input models.NewAccount) (account *models.Account, err error) {
	defer s.observe(ctx, "create", time.Now(), &err)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	err = s.db.WithSession(ctx, func(ctx context.Context, session *db.Session) error {
		created, err := s.performCreate(ctx, repository.NewAccountRepository(session), input)
		if err != nil {
			return err
		}
		if err := session.Commit(); err != nil {
			return newInternalError("failed to commit account", err)
		}
		account = created
		return nil
	})
	if err != nil {
		return nil, translateError(0, "failed to create account", err)
	}

	return account, nil
}

// performCreate contains the core account creation logic
func (s *AccountService) performCreate(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	input models.NewAccount,
) (*models.Account, error) {
	emailTaken, err := accountRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, newInternalError("failed to check email", err)
	}
	if emailTaken {
		return nil, newConflictError(models.FieldEmail, input.Email)
	}

	usernameTaken, err := accountRepo.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, newInternalError("failed to check username", err)
	}
	if usernameTaken {
		return nil, newConflictError(models.FieldUsername, input.Username)
	}

	account := &models.Account{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}
	if err := accountRepo.Create(ctx, account); err != nil {
		return nil, translateError(0, "failed to create account", err)
	}

	return account, nil
}

// List returns every account ordered by id. An empty result is not an error.
func (s *AccountService) List(ctx context.Context) (accounts []models.Account, err error) {
	defer s.observe(ctx, "list", time.Now(), &err)

	err = s.db.WithSession(ctx, func(ctx context.Context, session *db.Session) error {
		found, err := repository.NewAccountRepository(session).FindAll(ctx)
		if err != nil {
			return err
		}
		accounts = found
		return nil
	})
	if err != nil {
		return nil, translateError(0, "failed to list accounts", err)
	}

	return accounts, nil
}

// Get returns one account or a not_found ServiceError.
func (s *AccountService) Get(ctx context.Context, id int64) (account *models.Account, err error) {
	defer s.observe(ctx, "get", time.Now(), &err)

	if err := ValidateID(id); err != nil {
		return nil, err
	}

	err = s.db.WithSession(ctx, func(ctx context.Context, session *db.Session) error {
		found, err := repository.NewAccountRepository(session).FindByID(ctx, id)
		if err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		return nil, translateError(id, "failed to load account", err)
	}

	return account, nil
}

// Update applies the fields present in update, commits and returns the
// account as re-read after the commit.
func (s *AccountService) Update(ctx context.Context, id int64, update models.AccountUpdate) (account *models.Account, err error) {
	defer s.observe(ctx, "update", time.Now(), &err)

	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(update); err != nil {
		return nil, err
	}

	err = s.db.WithSession(ctx, func(ctx context.Context, session *db.Session) error {
		if err := s.performUpdate(ctx, repository.NewAccountRepository(session), id, update); err != nil {
			return err
		}
		if err := session.Commit(); err != nil {
			return newInternalError("failed to commit account", err)
		}
		return nil
	})
	if err != nil {
		return nil, translateError(id, "failed to update account", err)
	}

	account, err = repository.NewAccountRepository(s.db.Querier()).FindByID(ctx, id)
	if err != nil {
		return nil, translateError(id, "failed to reload account", err)
	}

	return account, nil
}

// performUpdate contains the core partial update logic
func (s *AccountService) performUpdate(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	id int64,
	update models.AccountUpdate,
) error {
	if _, err := accountRepo.FindByID(ctx, id); err != nil {
		return translateError(id, "failed to load account", err)
	}

	if update.IsEmpty() {
		s.logger.DebugContext(ctx, "update carries no fields, refreshing updated_at only", "account_id", id)
	}

	if err := accountRepo.UpdateByID(ctx, id, update); err != nil {
		return translateError(id, "failed to update account", err)
	}

	return nil
}

// Delete removes the account permanently and reports success.
func (s *AccountService) Delete(ctx context.Context, id int64) (deleted bool, err error) {
	defer s.observe(ctx, "delete", time.Now(), &err)

	if err := ValidateID(id); err != nil {
		return false, err
	}

	err = s.db.WithSession(ctx, func(ctx context.Context, session *db.Session) error {
		if err := s.performDelete(ctx, repository.NewAccountRepository(session), id); err != nil {
			return err
		}
		if err := session.Commit(); err != nil {
			return newInternalError("failed to commit account deletion", err)
		}
		return nil
	})
	if err != nil {
		return false, translateError(id, "failed to delete account", err)
	}

	return true, nil
}

// performDelete contains the core delete logic
func (s *AccountService) performDelete(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	id int64,
) error {
	if _, err := accountRepo.FindByID(ctx, id); err != nil {
		return translateError(id, "failed to load account", err)
	}

	if err := accountRepo.DeleteByID(ctx, id); err != nil {
		return translateError(id, "failed to delete account", err)
	}

	return nil
}

func (s *AccountService) observe(ctx context.Context, operation string, start time.Time, errp *error) {
	outcome := "ok"
	var svcErr *ServiceError
	if errp != nil && *errp != nil {
		outcome = ErrCodeInternalError
		if errors.As(*errp, &svcErr) {
			outcome = svcErr.Code
		}
	}

	metrics.RecordAccountOperation(operation, outcome, time.Since(start))

	switch outcome {
	case "ok":
		s.logger.DebugContext(ctx, "account operation completed", "operation", operation)
	case ErrCodeInternalError:
		s.logger.ErrorContext(ctx, "account operation failed", "operation", operation, "error", *errp)
	default:
		s.logger.InfoContext(ctx, "account operation rejected", "operation", operation, "code", outcome)
	}
}
