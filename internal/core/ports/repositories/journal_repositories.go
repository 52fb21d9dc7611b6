package repositories

import (
	"context"
	"time"

	"github.com/wsetiyawan/balancebook/internal/core/domain"
)

// ListEntriesFilter restricts a journal entry listing.
type ListEntriesFilter struct {
	Query  string     // Substring match over number and memo
	Posted *bool      // Nil means both drafts and posted entries
	From   *time.Time // Inclusive lower bound on the business date
	To     *time.Time // Inclusive upper bound on the business date
}

// JournalReader defines read operations for journal entries and their lines.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a filtered, token-paginated list of entries
	// ordered by business date descending. It returns the entries and a
	// token for the next page, nil when exhausted.
	ListEntries(ctx context.Context, filter ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// LatestNumberWithPrefix returns the lexicographically greatest entry
	// number starting with the prefix, or "" when none exists.
	LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error)

	// MovementsForAccount returns the posted journal activity of an account
	// as dated debit/credit movements, optionally bounded by an inclusive
	// date range.
	MovementsForAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.Movement, error)
}

// JournalWriter defines write operations for draft journal entries.
type JournalWriter interface {
	// SaveEntry inserts the entry and its lines in one transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry rewrites the entry header and replaces its lines as a set
	// in one transaction. Lines are never patched individually.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes a draft entry and, by cascade, its lines.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalPoster owns the atomic draft-to-posted transition.
type JournalPoster interface {
	// PostEntry appends one ledger row per line carrying the account's new
	// running balance and flips the entry to posted, all in one transaction.
	// The affected account rows are locked for the duration, so concurrent
	// postings against the same account serialize instead of computing a
	// stale previous balance. Line order follows line numbers; the accounts
	// map must cover every line.
	PostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, accounts map[string]domain.Account, postedAt time.Time) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalPoster
}
