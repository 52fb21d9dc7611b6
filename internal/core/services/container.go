package services

import (
	portsrepo "github.com/wsetiyawan/balancebook/internal/core/ports/repositories"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Account   portssvc.AccountSvcFacade
	Journal   portssvc.JournalSvcFacade
	Posting   portssvc.PostingSvc
	Reporting portssvc.ReportingSvc
}

// NewContainer creates a new service container with properly initialized
// dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider) *Container {
	return &Container{
		Account:   NewAccountService(repos.AccountRepo),
		Journal:   NewJournalService(repos.JournalRepo, repos.AccountRepo),
		Posting:   NewPostingService(repos.JournalRepo, repos.AccountRepo),
		Reporting: NewReportingService(repos.AccountRepo, repos.JournalRepo, repos.LedgerRepo),
	}
}
