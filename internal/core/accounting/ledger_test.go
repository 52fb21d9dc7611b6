package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/accounting"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
)

var (
	cashID    = "acc-cash"
	revenueID = "acc-revenue"
	expenseID = "acc-expense"

	postingAccounts = map[string]domain.Account{
		cashID:    {AccountID: cashID, Code: "111", Category: domain.Asset, Side: domain.DebitSide},
		revenueID: {AccountID: revenueID, Code: "411", Category: domain.Revenue, Side: domain.CreditSide},
		expenseID: {AccountID: expenseID, Code: "512", Category: domain.Expense, Side: domain.DebitSide},
	}
)

func postingEntry() domain.JournalEntry {
	return domain.JournalEntry{
		EntryID: "entry-1",
		Number:  "JRN20251015000001",
		Date:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	}
}

func postingLine(number int, accountID string, position domain.LinePosition, amount string) domain.JournalLine {
	return domain.JournalLine{
		LineNumber: number,
		AccountID:  accountID,
		Position:   position,
		Amount:     dec(amount),
	}
}

func TestLedgerRowsChainFromZero(t *testing.T) {
	postedAt := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	lines := []domain.JournalLine{
		postingLine(1, cashID, domain.DebitLine, "100.00"),
		postingLine(2, revenueID, domain.CreditLine, "100.00"),
	}

	rows, err := accounting.LedgerRows(postingEntry(), lines, postingAccounts, nil, postedAt)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, cashID, rows[0].AccountID)
	assert.True(t, rows[0].Debit.Equal(dec("100.00")))
	assert.True(t, rows[0].Credit.IsZero())
	assert.True(t, rows[0].RunningBalance.Equal(dec("100.00")), "first row chains from zero, got %s", rows[0].RunningBalance)

	assert.Equal(t, revenueID, rows[1].AccountID)
	assert.True(t, rows[1].Credit.Equal(dec("100.00")))
	assert.True(t, rows[1].RunningBalance.Equal(dec("100.00")))

	for _, row := range rows {
		assert.Equal(t, "entry-1", row.EntryID)
		assert.Equal(t, postingEntry().Date, row.Date)
		assert.Equal(t, postedAt, row.CreatedAt)
	}
}

func TestLedgerRowsSequentialPostingsChain(t *testing.T) {
	postedAt := time.Now().UTC()

	first := []domain.JournalLine{
		postingLine(1, cashID, domain.DebitLine, "100.00"),
		postingLine(2, revenueID, domain.CreditLine, "100.00"),
	}
	rows, err := accounting.LedgerRows(postingEntry(), first, postingAccounts, nil, postedAt)
	require.NoError(t, err)

	prev := map[string]decimal.Decimal{}
	for _, row := range rows {
		prev[row.AccountID] = row.RunningBalance
	}

	second := []domain.JournalLine{
		postingLine(1, expenseID, domain.DebitLine, "40.00"),
		postingLine(2, cashID, domain.CreditLine, "40.00"),
	}
	entry := postingEntry()
	entry.EntryID = "entry-2"
	rows, err = accounting.LedgerRows(entry, second, postingAccounts, prev, postedAt)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Each row continues its account's chain: previous balance plus the
	// line's signed delta in the category's normal-side convention.
	for _, row := range rows {
		account := postingAccounts[row.AccountID]
		delta := accounting.SignedDelta(accounting.NormalSideFor(account.Category), row.Debit, row.Credit)
		assert.True(t, row.RunningBalance.Equal(prev[row.AccountID].Add(delta)),
			"account %s: running balance %s, expected %s", row.AccountID, row.RunningBalance, prev[row.AccountID].Add(delta))
	}
	assert.True(t, rows[1].RunningBalance.Equal(dec("60.00")), "cash after 100 in and 40 out, got %s", rows[1].RunningBalance)
}

func TestLedgerRowsOrderedByLineNumber(t *testing.T) {
	lines := []domain.JournalLine{
		postingLine(2, revenueID, domain.CreditLine, "100.00"),
		postingLine(1, cashID, domain.DebitLine, "100.00"),
	}

	rows, err := accounting.LedgerRows(postingEntry(), lines, postingAccounts, nil, time.Now().UTC())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, cashID, rows[0].AccountID)
	assert.Equal(t, revenueID, rows[1].AccountID)
}

func TestLedgerRowsSignedByCategory(t *testing.T) {
	// The stored side is metadata; the running balance follows the category.
	drifted := map[string]domain.Account{
		"acc-drawings": {AccountID: "acc-drawings", Code: "312", Category: domain.Equity, Side: domain.DebitSide},
		cashID:         postingAccounts[cashID],
	}
	lines := []domain.JournalLine{
		postingLine(1, cashID, domain.DebitLine, "100.00"),
		postingLine(2, "acc-drawings", domain.CreditLine, "100.00"),
	}

	rows, err := accounting.LedgerRows(postingEntry(), lines, drifted, nil, time.Now().UTC())

	require.NoError(t, err)
	assert.True(t, rows[1].RunningBalance.Equal(dec("100.00")),
		"equity is credit-normal regardless of the stored side, got %s", rows[1].RunningBalance)
}

func TestLedgerRowsMissingAccount(t *testing.T) {
	lines := []domain.JournalLine{
		postingLine(1, cashID, domain.DebitLine, "100.00"),
		postingLine(2, "acc-unknown", domain.CreditLine, "100.00"),
	}

	rows, err := accounting.LedgerRows(postingEntry(), lines, postingAccounts, nil, time.Now().UTC())

	require.Error(t, err)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLedgerRowsLeavesPrevUntouched(t *testing.T) {
	prev := map[string]decimal.Decimal{cashID: dec("50.00")}
	lines := []domain.JournalLine{
		postingLine(1, cashID, domain.DebitLine, "100.00"),
		postingLine(2, revenueID, domain.CreditLine, "100.00"),
	}

	rows, err := accounting.LedgerRows(postingEntry(), lines, postingAccounts, prev, time.Now().UTC())

	require.NoError(t, err)
	assert.True(t, rows[0].RunningBalance.Equal(dec("150.00")))
	assert.True(t, prev[cashID].Equal(dec("50.00")), "the caller's balance map must not be mutated")
	assert.Len(t, prev, 1)
}
