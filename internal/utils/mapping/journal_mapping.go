package mapping

import (
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	"github.com/wsetiyawan/balancebook/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its model.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:   d.EntryID,
		Number:    d.Number,
		Date:      d.Date,
		Memo:      d.Memo,
		Posted:    d.Posted,
		PostedAt:  d.PostedAt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to its domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:  m.EntryID,
		Number:   m.Number,
		Date:     m.Date,
		Memo:     m.Memo,
		Posted:   m.Posted,
		PostedAt: m.PostedAt,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelJournalLine converts a domain JournalLine to its model.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Position:    models.LinePosition(d.Position),
		Amount:      d.Amount,
		Description: d.Description,
		LineNumber:  d.LineNumber,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainJournalLine converts a model JournalLine to its domain form.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Position:    domain.LinePosition(m.Position),
		Amount:      m.Amount,
		Description: m.Description,
		LineNumber:  m.LineNumber,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
