package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/accounting"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portsrepo "github.com/wsetiyawan/balancebook/internal/core/ports/repositories"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
	"github.com/wsetiyawan/balancebook/internal/dto"
	"github.com/wsetiyawan/balancebook/internal/middleware"
)

var (
	// ErrEntryUnbalanced is returned when an entry's debit and credit totals differ.
	ErrEntryUnbalanced = fmt.Errorf("%w: debit and credit totals are not equal", apperrors.ErrConflict)

	// ErrAlreadyPosted is returned when mutating or re-posting a posted entry.
	ErrAlreadyPosted = fmt.Errorf("%w: journal entry is already posted", apperrors.ErrConflict)

	// ErrEntryMinLines is returned when an entry has fewer than two lines.
	ErrEntryMinLines = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)

	// ErrDuplicateAccount is returned when two lines reference the same account.
	ErrDuplicateAccount = fmt.Errorf("%w: journal entry lines must reference distinct accounts", apperrors.ErrValidation)

	// ErrDuplicateLineNumber is returned when two lines share a line number.
	ErrDuplicateLineNumber = fmt.Errorf("%w: journal entry line numbers must be distinct", apperrors.ErrValidation)
)

// numberRetries bounds the regenerate-on-duplicate loop that closes the race
// between reading the day's latest number and inserting the next one.
const numberRetries = 3

// journalService manages draft journal entries.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines validates the request lines and converts them into domain lines
// owned by the given entry. Line numbers default to payload order.
func (s *journalService) buildLines(entryID string, reqLines []dto.CreateJournalLineRequest, now time.Time) ([]domain.JournalLine, error) {
	if len(reqLines) < 2 {
		return nil, ErrEntryMinLines
	}

	accountSeen := make(map[string]struct{}, len(reqLines))
	numberSeen := make(map[int]struct{}, len(reqLines))

	lines := make([]domain.JournalLine, len(reqLines))
	for i, lineReq := range reqLines {
		if lineReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, lineReq.AccountID)
		}
		if lineReq.Amount.Exponent() < -2 {
			return nil, fmt.Errorf("%w: line amount %s has more than two decimal places", apperrors.ErrValidation, lineReq.Amount.String())
		}
		if _, dup := accountSeen[lineReq.AccountID]; dup {
			return nil, ErrDuplicateAccount
		}
		accountSeen[lineReq.AccountID] = struct{}{}

		lineNumber := i + 1
		if lineReq.LineNumber != nil {
			lineNumber = *lineReq.LineNumber
		}
		if _, dup := numberSeen[lineNumber]; dup {
			return nil, ErrDuplicateLineNumber
		}
		numberSeen[lineNumber] = struct{}{}

		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lineReq.AccountID,
			Position:    domain.LinePosition(lineReq.Position),
			Amount:      lineReq.Amount,
			Description: strings.TrimSpace(lineReq.Description),
			LineNumber:  lineNumber,
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
	}
	return lines, nil
}

// checkAccounts verifies every referenced account exists and is active.
func (s *journalService) checkAccounts(ctx context.Context, lines []domain.JournalLine) error {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for entry validation: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// CreateEntry creates a draft entry after validating its lines. An empty
// number is defaulted from the daily numbering sequence.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must use the %s format", apperrors.ErrValidation, dto.DateLayout)
	}
	if strings.TrimSpace(req.Memo) == "" {
		return nil, fmt.Errorf("%w: memo must not be blank", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := s.buildLines(entryID, req.Lines, now)
	if err != nil {
		return nil, err
	}
	if !accounting.IsBalanced(lines) {
		debit, credit := accounting.Totals(lines)
		return nil, fmt.Errorf("%w: debit total is %s and credit total is %s", ErrEntryUnbalanced, debit.StringFixed(2), credit.StringFixed(2))
	}
	if err := s.checkAccounts(ctx, lines); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID: entryID,
		Number:  strings.TrimSpace(req.Number),
		Date:    date,
		Memo:    strings.TrimSpace(req.Memo),
		Posted:  false,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Lines: lines,
	}

	generated := entry.Number == ""
	for attempt := 0; ; attempt++ {
		if generated {
			entry.Number, err = s.generateNumber(ctx, now)
			if err != nil {
				return nil, err
			}
		}

		err = s.journalRepo.SaveEntry(ctx, entry)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			if generated && attempt < numberRetries-1 {
				// A concurrent creation claimed the generated number; pick
				// the next one and try again.
				logger.Warn("Generated entry number collided, retrying", slog.String("number", entry.Number))
				continue
			}
			return nil, fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, entry.Number)
		}
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("number", entry.Number))
	return &entry, nil
}

// generateNumber produces the next daily entry number from the stored state.
func (s *journalService) generateNumber(ctx context.Context, today time.Time) (string, error) {
	latest, err := s.journalRepo.LatestNumberWithPrefix(ctx, dailyNumberPrefix(today))
	if err != nil {
		return "", fmt.Errorf("failed to read latest entry number: %w", err)
	}
	return nextEntryNumber(today, latest)
}

// GetEntryByID retrieves an entry with its lines ordered by line number.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a filtered, token-paginated list of entry headers.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.ListEntriesFilter{
		Query:  strings.TrimSpace(params.Query),
		Posted: params.Posted,
		From:   params.StartDate,
		To:     params.EndDate,
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &dto.ListJournalEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// UpdateEntry rewrites a draft entry, replacing its lines as a set.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing.IsPosted() {
		return nil, ErrAlreadyPosted
	}

	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must use the %s format", apperrors.ErrValidation, dto.DateLayout)
	}
	if strings.TrimSpace(req.Memo) == "" {
		return nil, fmt.Errorf("%w: memo must not be blank", apperrors.ErrValidation)
	}
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: number must not be blank", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	lines, err := s.buildLines(entryID, req.Lines, now)
	if err != nil {
		return nil, err
	}
	if !accounting.IsBalanced(lines) {
		debit, credit := accounting.Totals(lines)
		return nil, fmt.Errorf("%w: debit total is %s and credit total is %s", ErrEntryUnbalanced, debit.StringFixed(2), credit.StringFixed(2))
	}
	if err := s.checkAccounts(ctx, lines); err != nil {
		return nil, err
	}

	entry := *existing
	entry.Number = number
	entry.Date = date
	entry.Memo = strings.TrimSpace(req.Memo)
	entry.UpdatedAt = now
	entry.Lines = lines

	if err := s.journalRepo.UpdateEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, entry.Number)
		}
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	return &entry, nil
}

// DeleteEntry removes a draft entry and its lines.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if existing.IsPosted() {
		return ErrAlreadyPosted
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID), slog.String("number", existing.Number))
	return nil
}
