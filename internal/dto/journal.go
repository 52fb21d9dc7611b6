package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/core/domain"
)

// DateLayout is the wire format for business dates.
const DateLayout = "2006-01-02"

// CreateJournalLineRequest is one debit/credit line in a create/update payload.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Position    string          `json:"position" binding:"required,oneof=debit credit"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	LineNumber  *int            `json:"lineNumber" binding:"omitempty,min=1"` // Defaults to the line's position in the payload
}

// CreateJournalEntryRequest defines the payload for creating a draft entry.
type CreateJournalEntryRequest struct {
	Number string                     `json:"number" binding:"omitempty,max=20"` // Generated when empty
	Date   string                     `json:"date" binding:"required,datetime=2006-01-02"`
	Memo   string                     `json:"memo" binding:"required"`
	Lines  []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest defines the payload for rewriting a draft entry.
// The lines replace the stored set wholesale.
type UpdateJournalEntryRequest struct {
	Number string                     `json:"number" binding:"required,max=20"`
	Date   string                     `json:"date" binding:"required,datetime=2006-01-02"`
	Memo   string                     `json:"memo" binding:"required"`
	Lines  []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListJournalEntriesParams holds the filters for listing entries.
type ListJournalEntriesParams struct {
	Query     string
	Posted    *bool
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	NextToken *string
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Position    string          `json:"position"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	LineNumber  int             `json:"lineNumber"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID  string                `json:"entryID"`
	Number   string                `json:"number"`
	Date     string                `json:"date"`
	Memo     string                `json:"memo"`
	Posted   bool                  `json:"posted"`
	PostedAt *time.Time            `json:"postedAt,omitempty"`
	Lines    []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesResponse wraps a page of entries and the next page token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Position:    string(l.Position),
		Amount:      l.Amount,
		Description: l.Description,
		LineNumber:  l.LineNumber,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry (with whatever lines
// it carries) to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:  e.EntryID,
		Number:   e.Number,
		Date:     e.Date.Format(DateLayout),
		Memo:     e.Memo,
		Posted:   e.Posted,
		PostedAt: e.PostedAt,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&e.Lines[i])
		}
	}
	return resp
}
