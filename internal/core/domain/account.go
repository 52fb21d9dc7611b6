package domain

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "asset"
	Liability AccountCategory = "liability"
	Equity    AccountCategory = "equity"
	Revenue   AccountCategory = "revenue"
	Expense   AccountCategory = "expense"
)

// Categories lists every account category in reporting order.
var Categories = []AccountCategory{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether the category is one of the known five.
func (c AccountCategory) IsValid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalSide is the debit or credit direction in which an account's balance
// is conventionally positive.
type NormalSide string

const (
	DebitSide  NormalSide = "debit"
	CreditSide NormalSide = "credit"
)

// Account represents a single account in the chart of accounts.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	Code      string          `json:"code"`      // Unique short code, e.g. "111"
	Name      string          `json:"name"`      // User-defined display name
	Category  AccountCategory `json:"category"`  // asset, liability, equity, revenue, expense
	Side      NormalSide      `json:"side"`      // Normal balance side
	IsActive  bool            `json:"isActive"`  // Inactive accounts cannot be used on new entries
	Timestamps
}
