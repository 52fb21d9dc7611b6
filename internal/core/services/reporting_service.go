package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/core/accounting"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portsrepo "github.com/wsetiyawan/balancebook/internal/core/ports/repositories"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
	"github.com/wsetiyawan/balancebook/internal/dto"
)

// reportingService serves read-side balance queries. It only ever reads
// committed rows, so it is safe to run concurrently with postings.
type reportingService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, ledgerRepo portsrepo.LedgerReader) portssvc.ReportingSvc {
	return &reportingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// AccountBalance computes an account's posted totals and signed balance over
// an optional inclusive date range. The balance is signed in the category's
// normal-side convention; Side reports which way the raw totals currently
// lean.
func (s *reportingService) AccountBalance(ctx context.Context, accountID string, from, to *time.Time) (*dto.AccountBalanceResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	movements, err := s.journalRepo.MovementsForAccount(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movements for account %s: %w", accountID, err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, m := range movements {
		totalDebit = totalDebit.Add(m.Debit)
		totalCredit = totalCredit.Add(m.Credit)
	}

	side := domain.DebitSide
	if totalCredit.GreaterThan(totalDebit) {
		side = domain.CreditSide
	}

	return &dto.AccountBalanceResponse{
		AccountID:   account.AccountID,
		Code:        account.Code,
		Name:        account.Name,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balance:     accounting.SignedDelta(accounting.NormalSideFor(account.Category), totalDebit, totalCredit),
		Side:        string(side),
	}, nil
}

// CategoryBalance computes the signed balance of a whole account category
// from its ledger activity, in the category's normal-side convention.
func (s *reportingService) CategoryBalance(ctx context.Context, category domain.AccountCategory) (decimal.Decimal, error) {
	if !category.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account category %q", category)
	}
	movements, err := s.ledgerRepo.MovementsByCategory(ctx, category)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch ledger movements for category %s: %w", category, err)
	}
	return accounting.Balance(accounting.NormalSideFor(category), movements, nil, nil), nil
}

// Summary computes every category balance plus net income.
func (s *reportingService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	balances := make(map[domain.AccountCategory]decimal.Decimal, len(domain.Categories))
	for _, category := range domain.Categories {
		balance, err := s.CategoryBalance(ctx, category)
		if err != nil {
			return nil, err
		}
		balances[category] = balance
	}

	return &dto.SummaryResponse{
		Assets:      balances[domain.Asset],
		Liabilities: balances[domain.Liability],
		Equity:      balances[domain.Equity],
		Revenue:     balances[domain.Revenue],
		Expense:     balances[domain.Expense],
		NetIncome:   accounting.NetIncome(balances[domain.Revenue], balances[domain.Expense]),
	}, nil
}

// ListLedgerByAccount pages through an account's ledger rows in insertion
// order.
func (s *reportingService) ListLedgerByAccount(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListLedgerEntriesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}
	entries, token, err := s.ledgerRepo.ListLedgerByAccount(ctx, accountID, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger for account %s: %w", accountID, err)
	}

	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: token,
	}, nil
}
