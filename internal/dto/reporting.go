package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/core/domain"
)

// AccountBalanceResponse reports an account's posted activity, optionally
// restricted to a date range. Balance is signed in the account's normal-side
// convention; Side names the direction the balance currently leans.
type AccountBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
	Side        string          `json:"side"`
}

// SummaryResponse is the dashboard aggregate: one signed balance per account
// category plus net income.
type SummaryResponse struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expense     decimal.Decimal `json:"expense"`
	NetIncome   decimal.Decimal `json:"netIncome"`
}

// LedgerEntryResponse defines the data returned for one ledger movement.
type LedgerEntryResponse struct {
	LedgerID       int64           `json:"ledgerID"`
	AccountID      string          `json:"accountID"`
	EntryID        string          `json:"entryID"`
	Date           string          `json:"date"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListLedgerEntriesResponse wraps a page of ledger rows.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(l *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerID:       l.LedgerID,
		AccountID:      l.AccountID,
		EntryID:        l.EntryID,
		Date:           l.Date.Format(DateLayout),
		Debit:          l.Debit,
		Credit:         l.Credit,
		RunningBalance: l.RunningBalance,
		CreatedAt:      l.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of ledger rows.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
