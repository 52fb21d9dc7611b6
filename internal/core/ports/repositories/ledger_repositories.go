package repositories

import (
	"context"

	"github.com/wsetiyawan/balancebook/internal/core/domain"
)

// LedgerReader defines read operations over the append-only ledger. There is
// deliberately no writer interface: ledger rows are created only through
// JournalPoster.PostEntry and are never updated or deleted.
type LedgerReader interface {
	// ListLedgerByAccount retrieves an account's ledger rows in insertion
	// order with token pagination.
	ListLedgerByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// MovementsByCategory returns the ledger activity of every account in
	// the category as dated debit/credit movements.
	MovementsByCategory(ctx context.Context, category domain.AccountCategory) ([]domain.Movement, error)
}
