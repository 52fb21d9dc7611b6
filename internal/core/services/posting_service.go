package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/accounting"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portsrepo "github.com/wsetiyawan/balancebook/internal/core/ports/repositories"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
	"github.com/wsetiyawan/balancebook/internal/middleware"
)

// postingService owns the one-way draft-to-posted transition. Validation is
// re-done here against freshly loaded state; nothing from an earlier check is
// trusted.
type postingService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.PostingSvc {
	return &postingService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.PostingSvc = (*postingService)(nil)

// PostEntry validates the draft and atomically materializes its ledger rows.
// Preconditions are checked in order: the entry exists, it is not already
// posted, and its lines balance. The ledger append and the posted flag flip
// happen in one storage transaction; a failure anywhere leaves no rows.
func (s *postingService) PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsPosted() {
		logger.Warn("Refusing to re-post journal entry", slog.String("entry_id", entryID))
		return nil, ErrAlreadyPosted
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	if len(lines) < 2 || !accounting.IsBalanced(lines) {
		debit, credit := accounting.Totals(lines)
		logger.Warn("Refusing to post unbalanced journal entry",
			slog.String("entry_id", entryID),
			slog.String("debit_total", debit.StringFixed(2)),
			slog.String("credit_total", credit.StringFixed(2)),
		)
		return nil, fmt.Errorf("%w: debit total is %s and credit total is %s", ErrEntryUnbalanced, debit.StringFixed(2), credit.StringFixed(2))
	}

	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}
	for _, id := range accountIDs {
		if _, found := accounts[id]; !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}

	postedAt := time.Now().UTC()
	if err := s.journalRepo.PostEntry(ctx, *entry, lines, accounts, postedAt); err != nil {
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}

	entry.Posted = true
	entry.PostedAt = &postedAt
	entry.UpdatedAt = postedAt
	entry.Lines = lines

	logger.Info("Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("number", entry.Number),
		slog.Int("ledger_rows", len(lines)),
	)
	return entry, nil
}
