package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the database representation of one append-only ledger row.
// LedgerID is a BIGSERIAL, so ascending IDs are insertion order.
type LedgerEntry struct {
	LedgerID       int64           `db:"ledger_id"`
	AccountID      string          `db:"account_id"`
	EntryID        string          `db:"journal_entry_id"`
	Date           time.Time       `db:"date"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	CreatedAt      time.Time       `db:"created_at"`
}
