package mapping

import (
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	"github.com/wsetiyawan/balancebook/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID: d.AccountID,
		Code:      d.Code,
		Name:      d.Name,
		Category:  models.AccountCategory(d.Category),
		Side:      models.NormalSide(d.Side),
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		Code:      m.Code,
		Name:      m.Name,
		Category:  domain.AccountCategory(m.Category),
		Side:      domain.NormalSide(m.Side),
		IsActive:  m.IsActive,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
