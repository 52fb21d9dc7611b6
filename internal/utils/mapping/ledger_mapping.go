package mapping

import (
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	"github.com/wsetiyawan/balancebook/internal/models"
)

// ToDomainLedgerEntry converts a model LedgerEntry to its domain form.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerID:       m.LedgerID,
		AccountID:      m.AccountID,
		EntryID:        m.EntryID,
		Date:           m.Date,
		Debit:          m.Debit,
		Credit:         m.Credit,
		RunningBalance: m.RunningBalance,
		CreatedAt:      m.CreatedAt,
	}
}
