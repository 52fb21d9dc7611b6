package dto

import (
	"github.com/wsetiyawan/balancebook/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code     string `json:"code" binding:"required,max=12"`
	Name     string `json:"name" binding:"required,max=50"`
	Category string `json:"category" binding:"required,oneof=asset liability equity revenue expense"`
	Side     string `json:"side" binding:"omitempty,oneof=debit credit"` // Defaults to the category's normal side; a mismatch is refused
	IsActive *bool  `json:"isActive"`                                    // Defaults to true
}

// UpdateAccountRequest defines the payload for a partial account update.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Code     *string `json:"code" binding:"omitempty,max=12"`
	Name     *string `json:"name" binding:"omitempty,max=50"`
	Category *string `json:"category" binding:"omitempty,oneof=asset liability equity revenue expense"`
	Side     *string `json:"side" binding:"omitempty,oneof=debit credit"`
	IsActive *bool   `json:"isActive"`
}

// ListAccountsParams holds the filters for listing accounts.
type ListAccountsParams struct {
	Category *domain.AccountCategory
	Active   *bool
	Limit    int
	Offset   int
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Side      string `json:"side"`
	IsActive  bool   `json:"isActive"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Category:  string(a.Category),
		Side:      string(a.Side),
		IsActive:  a.IsActive,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
