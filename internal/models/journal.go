package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LinePosition mirrors domain.LinePosition at the storage layer.
type LinePosition string

const (
	DebitLine  LinePosition = "debit"
	CreditLine LinePosition = "credit"
)

// JournalEntry is the database representation of a journal entry header.
type JournalEntry struct {
	EntryID   string     `db:"entry_id"`
	Number    string     `db:"number"`
	Date      time.Time  `db:"date"`
	Memo      string     `db:"memo"`
	Posted    bool       `db:"is_posted"`
	PostedAt  *time.Time `db:"posted_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// JournalLine is the database representation of one debit/credit line.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Position    LinePosition    `db:"position"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	LineNumber  int             `db:"line_number"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
