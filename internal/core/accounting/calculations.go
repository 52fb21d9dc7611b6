// Package accounting holds the pure balance computations shared by services
// and repositories: normal-side conventions, debit/credit totals, signed
// balances and net income. All arithmetic is exact decimal at 2-digit scale;
// binary floating point is never used for money.
package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wsetiyawan/balancebook/internal/core/domain"
)

// NormalSideFor returns the side on which an account category's balance is
// conventionally positive. Asset and expense accounts are debit-normal,
// liability, equity and revenue accounts are credit-normal.
func NormalSideFor(category domain.AccountCategory) domain.NormalSide {
	switch category {
	case domain.Asset, domain.Expense:
		return domain.DebitSide
	default:
		return domain.CreditSide
	}
}

// Totals sums the debit and credit sides of a set of journal lines.
func Totals(lines []domain.JournalLine) (debit, credit decimal.Decimal) {
	debit = decimal.Zero
	credit = decimal.Zero
	for _, line := range lines {
		if line.Position == domain.DebitLine {
			debit = debit.Add(line.Amount)
		} else {
			credit = credit.Add(line.Amount)
		}
	}
	return debit, credit
}

// IsBalanced reports whether the debit and credit totals of the lines are
// exactly equal. The comparison is an exact decimal equality, not an epsilon
// float compare.
func IsBalanced(lines []domain.JournalLine) bool {
	debit, credit := Totals(lines)
	return debit.Equal(credit)
}

// SignedDelta converts one debit/credit movement into the signed balance
// change for an account with the given normal side.
func SignedDelta(side domain.NormalSide, debit, credit decimal.Decimal) decimal.Decimal {
	if side == domain.DebitSide {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// Balance computes the signed balance of the movements for the given normal
// side, restricted to the optional inclusive [from, to] date range. An empty
// movement set yields exactly zero. The result is independent of movement
// ordering.
func Balance(side domain.NormalSide, movements []domain.Movement, from, to *time.Time) decimal.Decimal {
	debit := decimal.Zero
	credit := decimal.Zero
	for _, m := range movements {
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		debit = debit.Add(m.Debit)
		credit = credit.Add(m.Credit)
	}
	return SignedDelta(side, debit, credit)
}

// NetIncome is the revenue category balance minus the expense category
// balance, both already adjusted to their normal sides.
func NetIncome(revenue, expense decimal.Decimal) decimal.Decimal {
	return revenue.Sub(expense)
}
