package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one append-only ledger movement, created by posting a
// journal entry. Exactly one of Debit/Credit is nonzero, mirroring the
// source line. Rows are never updated or deleted once written.
type LedgerEntry struct {
	LedgerID       int64           `json:"ledgerID"` // Monotonic insertion order (BIGSERIAL)
	AccountID      string          `json:"accountID"`
	EntryID        string          `json:"entryID"` // Originating journal entry
	Date           time.Time       `json:"date"`    // Journal entry's business date
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this movement, in its normal-side convention
	CreatedAt      time.Time       `json:"createdAt"`
}

// Movement is the minimal view of ledger/journal activity the balance
// computation needs: a dated debit/credit pair.
type Movement struct {
	Date   time.Time
	Debit  decimal.Decimal
	Credit decimal.Decimal
}
