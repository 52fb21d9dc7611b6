package services

import (
	"context"

	"github.com/wsetiyawan/balancebook/internal/core/domain"
	"github.com/wsetiyawan/balancebook/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines ordered by line number.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a filtered, token-paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for draft journal entries.
type JournalWriterSvc interface {
	// CreateEntry creates a draft entry after validating its lines. An empty
	// number is defaulted from the daily numbering sequence.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// UpdateEntry rewrites a draft entry, replacing its lines as a set.
	// Posted entries are refused.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry and its lines. Posted entries are
	// refused.
	DeleteEntry(ctx context.Context, entryID string) error
}

// PostingSvc owns the one-way draft-to-posted state transition.
type PostingSvc interface {
	// PostEntry validates the draft and atomically materializes its ledger
	// rows. It returns the posted entry.
	PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
