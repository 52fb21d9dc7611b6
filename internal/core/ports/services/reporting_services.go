package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/core/domain"
	"github.com/wsetiyawan/balancebook/internal/dto"
)

// ReportingSvc serves the read-side balance queries. All computations are
// exact decimal and run lock-free against committed rows only.
type ReportingSvc interface {
	// AccountBalance computes an account's posted debit/credit totals and
	// signed balance, optionally restricted to an inclusive date range.
	AccountBalance(ctx context.Context, accountID string, from, to *time.Time) (*dto.AccountBalanceResponse, error)

	// CategoryBalance computes the signed balance of a whole account
	// category from its ledger activity.
	CategoryBalance(ctx context.Context, category domain.AccountCategory) (decimal.Decimal, error)

	// Summary computes every category balance plus net income.
	Summary(ctx context.Context) (*dto.SummaryResponse, error)

	// ListLedgerByAccount pages through an account's ledger rows in
	// insertion order, running balances included.
	ListLedgerByAccount(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListLedgerEntriesResponse, error)
}
