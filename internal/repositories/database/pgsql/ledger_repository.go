package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portsrepo "github.com/wsetiyawan/balancebook/internal/core/ports/repositories"
	"github.com/wsetiyawan/balancebook/internal/models"
	"github.com/wsetiyawan/balancebook/internal/utils/mapping"
	"github.com/wsetiyawan/balancebook/internal/utils/pagination"
)

const ledgerColumns = `ledger_id, account_id, journal_entry_id, date, debit, credit, running_balance, created_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new read-only repository over the ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerReader
var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// ListLedgerByAccount retrieves an account's ledger rows in insertion order.
// The token is the ledger_id of the last returned row.
func (r *PgxLedgerRepository) ListLedgerByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE account_id = $1
	`
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastID, decodeErr := pagination.DecodeIDToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastID)
		query += ` AND ledger_id > $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY ledger_id LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger rows for account %s: %w", accountID, err)
	}
	defer rows.Close()

	modelRows := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.LedgerEntry
		scanErr := rows.Scan(
			&m.LedgerID,
			&m.AccountID,
			&m.EntryID,
			&m.Date,
			&m.Debit,
			&m.Credit,
			&m.RunningBalance,
			&m.CreatedAt,
		)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger row: %w", scanErr)
		}
		modelRows = append(modelRows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	var nextTokenVal *string
	results := modelRows
	if len(modelRows) > limit {
		token := pagination.EncodeIDToken(modelRows[limit-1].LedgerID)
		nextTokenVal = &token
		results = modelRows[:limit]
	}

	entries := make([]domain.LedgerEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainLedgerEntry(m)
	}

	return entries, nextTokenVal, nil
}

// MovementsByCategory returns the ledger activity of every account in the
// category as dated debit/credit movements.
func (r *PgxLedgerRepository) MovementsByCategory(ctx context.Context, category domain.AccountCategory) ([]domain.Movement, error) {
	query := `
		SELECT le.date, le.debit, le.credit
		FROM ledger_entries le
		JOIN accounts a ON a.account_id = le.account_id
		WHERE a.category = $1;
	`
	rows, err := r.Pool.Query(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for category %s: %w", category, err)
	}
	defer rows.Close()

	movements := make([]domain.Movement, 0, 16)
	for rows.Next() {
		var (
			date   time.Time
			debit  decimal.Decimal
			credit decimal.Decimal
		)
		if scanErr := rows.Scan(&date, &debit, &credit); scanErr != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", scanErr)
		}
		movements = append(movements, domain.Movement{Date: date, Debit: debit, Credit: credit})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}

	return movements, nil
}
