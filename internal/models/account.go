package models

import "time"

// AccountCategory mirrors domain.AccountCategory at the storage layer.
type AccountCategory string

const (
	Asset     AccountCategory = "asset"
	Liability AccountCategory = "liability"
	Equity    AccountCategory = "equity"
	Revenue   AccountCategory = "revenue"
	Expense   AccountCategory = "expense"
)

// NormalSide mirrors domain.NormalSide at the storage layer.
type NormalSide string

const (
	DebitSide  NormalSide = "debit"
	CreditSide NormalSide = "credit"
)

// Account is the database representation of a chart-of-accounts row.
type Account struct {
	AccountID string          `db:"account_id"`
	Code      string          `db:"code"`
	Name      string          `db:"name"`
	Category  AccountCategory `db:"category"`
	Side      NormalSide      `db:"side"`
	IsActive  bool            `db:"is_active"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
