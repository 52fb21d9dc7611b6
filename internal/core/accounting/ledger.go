package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
)

// LedgerRows derives the append-only ledger rows created by posting an entry:
// one row per line, in line-number order. Each row's running balance is the
// account's previous balance plus the line's signed delta in the account
// category's normal-side convention, so consecutive rows for one account
// chain without gaps. prev maps account IDs to their latest running balance
// (absent means zero) and is left unmodified.
func LedgerRows(entry domain.JournalEntry, lines []domain.JournalLine, accounts map[string]domain.Account, prev map[string]decimal.Decimal, postedAt time.Time) ([]domain.LedgerEntry, error) {
	sorted := make([]domain.JournalLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LineNumber < sorted[j].LineNumber
	})

	balances := make(map[string]decimal.Decimal, len(prev))
	for accID, balance := range prev {
		balances[accID] = balance
	}

	rows := make([]domain.LedgerEntry, 0, len(sorted))
	for _, line := range sorted {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, line.AccountID)
		}

		debit := decimal.Zero
		credit := decimal.Zero
		if line.Position == domain.DebitLine {
			debit = line.Amount
		} else {
			credit = line.Amount
		}

		delta := SignedDelta(NormalSideFor(account.Category), debit, credit)
		balance := balances[line.AccountID].Add(delta)
		balances[line.AccountID] = balance

		rows = append(rows, domain.LedgerEntry{
			AccountID:      line.AccountID,
			EntryID:        entry.EntryID,
			Date:           entry.Date,
			Debit:          debit,
			Credit:         credit,
			RunningBalance: balance,
			CreatedAt:      postedAt,
		})
	}
	return rows, nil
}
