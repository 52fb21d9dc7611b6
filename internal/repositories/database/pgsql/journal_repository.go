package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/accounting"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portsrepo "github.com/wsetiyawan/balancebook/internal/core/ports/repositories"
	"github.com/wsetiyawan/balancebook/internal/models"
	"github.com/wsetiyawan/balancebook/internal/utils/mapping"
	"github.com/wsetiyawan/balancebook/internal/utils/pagination"
)

const (
	entryColumns = `entry_id, number, date, memo, is_posted, posted_at, created_at, updated_at`
	lineColumns  = `line_id, entry_id, account_id, position, amount, description, line_number, created_at, updated_at`
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountReader
}

// newPgxJournalRepository creates a new repository for journal entries. The
// account reader is needed to lock account rows during posting.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountReader) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.Number,
		&m.Date,
		&m.Memo,
		&m.Posted,
		&m.PostedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Position,
		&m.Amount,
		&m.Description,
		&m.LineNumber,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Position,
			m.Amount,
			m.Description,
			m.LineNumber,
			m.CreatedAt,
			m.UpdatedAt,
		)
	}
}

// SaveEntry inserts the entry header and its lines in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.Number,
		m.Date,
		m.Memo,
		m.Posted,
		m.PostedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, entry.Lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for journal entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves the entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := make([]domain.JournalLine, 0, 4)
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", scanErr)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}

	return lines, nil
}

// ListEntries retrieves a filtered page of journal entries ordered by
// business date descending, created_at descending as the tie-breaker. The
// token encodes the cursor of the last returned entry.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to detect whether a next page exists.
	fetchLimit := limit + 1

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		placeholder := `$` + strconv.Itoa(len(args))
		query += ` AND (number ILIKE ` + placeholder + ` OR memo ILIKE ` + placeholder + `)`
	}
	if filter.Posted != nil {
		args = append(args, *filter.Posted)
		query += ` AND is_posted = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}

	return domainEntries, nextTokenVal, nil
}

// LatestNumberWithPrefix returns the greatest entry number starting with the
// prefix, or "" when none exists. Numbers share a fixed-width numeric suffix,
// so lexicographic order is numeric order.
func (r *PgxJournalRepository) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT number
		FROM journal_entries
		WHERE number LIKE $1 || '%'
		ORDER BY number DESC
		LIMIT 1;
	`
	var number string
	err := r.Pool.QueryRow(ctx, query, prefix).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find latest number with prefix %s: %w", prefix, err)
	}
	return number, nil
}

// MovementsForAccount returns the account's posted journal activity as dated
// debit/credit movements, optionally bounded by an inclusive date range.
func (r *PgxJournalRepository) MovementsForAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.Movement, error) {
	query := `
		SELECT je.date, jl.position, jl.amount
		FROM journal_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		WHERE jl.account_id = $1 AND je.is_posted = TRUE
	`
	args := []interface{}{accountID}
	if from != nil {
		args = append(args, *from)
		query += ` AND je.date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND je.date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY je.date;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for account %s: %w", accountID, err)
	}
	defer rows.Close()

	movements := make([]domain.Movement, 0, 16)
	for rows.Next() {
		var (
			date     time.Time
			position models.LinePosition
			amount   decimal.Decimal
		)
		if scanErr := rows.Scan(&date, &position, &amount); scanErr != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", scanErr)
		}
		m := domain.Movement{Date: date, Debit: decimal.Zero, Credit: decimal.Zero}
		if position == models.DebitLine {
			m.Debit = amount
		} else {
			m.Credit = amount
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}

	return movements, nil
}

// UpdateEntry rewrites the entry header and replaces its lines as a whole set
// in one transaction. The is_posted guard makes a concurrent post lose the
// race cleanly instead of silently mixing states.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET number = $2, date = $3, memo = $4, updated_at = $5
		WHERE entry_id = $1 AND is_posted = FALSE;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.Number,
		m.Date,
		m.Memo,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is posted or missing", apperrors.ErrConflict, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines for journal entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, entry.Lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for journal entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes a draft entry; its lines go with it by cascade.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM journal_entries WHERE entry_id = $1 AND is_posted = FALSE;`

	tag, err := r.Pool.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is posted or missing", apperrors.ErrConflict, entryID)
	}
	return nil
}

// PostEntry appends one ledger row per line and flips the entry to posted in
// one transaction. The account rows are locked first, so concurrent postings
// against the same accounts serialize and every running balance is computed
// from a settled previous balance.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, accounts map[string]domain.Account, postedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(accounts))
	for accID := range accounts {
		accountIDs = append(accountIDs, accID)
	}
	sort.Strings(accountIDs)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for posting entry %s: %w", entry.EntryID, err)
	}

	// Previous balance per account is the latest ledger row's running
	// balance, i.e. posting order, not business-date order.
	currentBalances := make(map[string]decimal.Decimal, len(accountIDs))
	prevQuery := `
		SELECT running_balance
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY ledger_id DESC
		LIMIT 1;
	`
	for _, accID := range accountIDs {
		var prev decimal.Decimal
		err := tx.QueryRow(ctx, prevQuery, accID).Scan(&prev)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				prev = decimal.Zero
			} else {
				return fmt.Errorf("failed to read previous balance for account %s: %w", accID, err)
			}
		}
		currentBalances[accID] = prev
	}

	rows, err := accounting.LedgerRows(entry, lines, lockedAccounts, currentBalances, postedAt)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	ledgerQuery := `
		INSERT INTO ledger_entries (account_id, journal_entry_id, date, debit, credit, running_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, row := range rows {
		batch.Queue(ledgerQuery,
			row.AccountID,
			row.EntryID,
			row.Date,
			row.Debit,
			row.Credit,
			row.RunningBalance,
			row.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert ledger rows for entry %s: %w", entry.EntryID, err)
	}

	flipQuery := `
		UPDATE journal_entries
		SET is_posted = TRUE, posted_at = $2, updated_at = $2
		WHERE entry_id = $1 AND is_posted = FALSE;
	`
	tag, err := tx.Exec(ctx, flipQuery, entry.EntryID, postedAt)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s as posted: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is already posted", apperrors.ErrConflict, entry.EntryID)
	}

	return r.Commit(ctx, tx)
}
