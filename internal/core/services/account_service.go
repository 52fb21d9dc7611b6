package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/accounting"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portsrepo "github.com/wsetiyawan/balancebook/internal/core/ports/repositories"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
	"github.com/wsetiyawan/balancebook/internal/dto"
	"github.com/wsetiyawan/balancebook/internal/middleware"
)

// ErrAccountInUse is returned when deleting an account that journal lines
// still reference.
var ErrAccountInUse = fmt.Errorf("%w: account is referenced by journal lines", apperrors.ErrReferenced)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account after validation.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category := domain.AccountCategory(req.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, req.Category)
	}

	// The normal side is a function of the category; a caller-supplied side
	// may only confirm it.
	side := accounting.NormalSideFor(category)
	if req.Side != "" && domain.NormalSide(req.Side) != side {
		return nil, fmt.Errorf("%w: %s accounts are %s-normal", apperrors.ErrValidation, category, side)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:      strings.TrimSpace(req.Name),
		Category:  category,
		Side:      side,
		IsActive:  isActive,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if account.Code == "" {
		return nil, fmt.Errorf("%w: account code must not be blank", apperrors.ErrValidation)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate account code on create", slog.String("code", account.Code))
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves a single account by its unique code. Lookups are
// case-insensitive because codes are stored uppercased.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: account code must not be blank", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts filtered by category and active flag.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, params.Category, params.Active, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies a partial update to an existing account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code == "" {
			return nil, fmt.Errorf("%w: account code must not be blank", apperrors.ErrValidation)
		}
		if code != account.Code {
			// The code is immutable once any journal line references it.
			used, err := s.accountRepo.HasJournalLines(ctx, accountID)
			if err != nil {
				return nil, fmt.Errorf("failed to check account usage: %w", err)
			}
			if used {
				return nil, fmt.Errorf("%w: account code cannot change while journal lines reference it", apperrors.ErrConflict)
			}
			account.Code = code
			updated = true
		}
	}
	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.Category != nil {
		category := domain.AccountCategory(*req.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, *req.Category)
		}
		account.Category = category
		account.Side = accounting.NormalSideFor(category)
		updated = true
	}
	if req.Side != nil {
		if domain.NormalSide(*req.Side) != accounting.NormalSideFor(account.Category) {
			return nil, fmt.Errorf("%w: %s accounts are %s-normal", apperrors.ErrValidation, account.Category, accounting.NormalSideFor(account.Category))
		}
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return account, nil
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account, refusing while journal lines reference it.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	used, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if used {
		logger.Warn("Refusing to delete referenced account", slog.String("account_id", accountID))
		return ErrAccountInUse
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}
