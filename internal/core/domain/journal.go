package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LinePosition indicates whether a journal line is a debit or a credit.
type LinePosition string

const (
	DebitLine  LinePosition = "debit"
	CreditLine LinePosition = "credit"
)

// JournalEntry represents a single bookkeeping event composed of balanced
// debit/credit lines. An entry starts as a draft and becomes immutable once
// posted to the ledger.
type JournalEntry struct {
	EntryID  string     `json:"entryID"`  // Primary Key (UUID)
	Number   string     `json:"number"`   // Unique human-readable number, e.g. JRN20251015000001
	Date     time.Time  `json:"date"`     // Business date of the event
	Memo     string     `json:"memo"`     // Free-text description
	Posted   bool       `json:"posted"`   // Draft while false
	PostedAt *time.Time `json:"postedAt"` // Nil until posted
	Timestamps

	// Lines are exclusively owned by the entry, ordered by LineNumber.
	// They are replaced as a set on update, never patched individually.
	Lines []JournalLine `json:"lines,omitempty"`
}

// IsPosted reports whether the entry has been posted to the ledger.
func (e *JournalEntry) IsPosted() bool {
	return e.Posted
}

// JournalLine is a single debit or credit within a journal entry.
type JournalLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (UUID)
	EntryID     string          `json:"entryID"`     // FK -> JournalEntry
	AccountID   string          `json:"accountID"`   // FK -> Account
	Position    LinePosition    `json:"position"`    // debit or credit
	Amount      decimal.Decimal `json:"amount"`      // Positive, 2 fractional digits
	Description string          `json:"description"` // Optional per-line note
	LineNumber  int             `json:"lineNumber"`  // 1-based, unique within the entry
	Timestamps
}
