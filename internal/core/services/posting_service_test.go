package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
	"github.com/wsetiyawan/balancebook/internal/core/services"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.PostingSvc

	entryID string
	cash    domain.Account
	revenue domain.Account
	draft   *domain.JournalEntry
	lines   []domain.JournalLine
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewPostingService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.entryID = uuid.NewString()
	suite.cash = domain.Account{
		AccountID: uuid.NewString(),
		Code:      "111",
		Name:      "Cash",
		Category:  domain.Asset,
		Side:      domain.DebitSide,
		IsActive:  true,
	}
	suite.revenue = domain.Account{
		AccountID: uuid.NewString(),
		Code:      "411",
		Name:      "Service Revenue",
		Category:  domain.Revenue,
		Side:      domain.CreditSide,
		IsActive:  true,
	}
	suite.draft = &domain.JournalEntry{
		EntryID: suite.entryID,
		Number:  "JRN20251015000001",
		Date:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Memo:    "Cash sale",
		Posted:  false,
	}
	suite.lines = []domain.JournalLine{
		{
			LineID:     uuid.NewString(),
			EntryID:    suite.entryID,
			AccountID:  suite.cash.AccountID,
			Position:   domain.DebitLine,
			Amount:     decimal.RequireFromString("100.00"),
			LineNumber: 1,
		},
		{
			LineID:     uuid.NewString(),
			EntryID:    suite.entryID,
			AccountID:  suite.revenue.AccountID,
			Position:   domain.CreditLine,
			Amount:     decimal.RequireFromString("100.00"),
			LineNumber: 2,
		},
	}
}

func (suite *PostingServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.entryID).Return(suite.draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, suite.entryID).Return(suite.lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cash.AccountID, suite.revenue.AccountID}).
		Return(map[string]domain.Account{
			suite.cash.AccountID:    suite.cash,
			suite.revenue.AccountID: suite.revenue,
		}, nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), suite.lines,
		mock.AnythingOfType("map[string]domain.Account"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.entryID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.Posted)
	suite.Require().NotNil(entry.PostedAt)
	suite.WithinDuration(time.Now().UTC(), *entry.PostedAt, time.Second)
	suite.Equal(*entry.PostedAt, entry.UpdatedAt)
	suite.Len(entry.Lines, 2, "one ledger row per line")

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostEntry_NotFound() {
	ctx := context.Background()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.entryID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.PostEntry(ctx, suite.entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry")
}

func (suite *PostingServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	postedAt := time.Now().UTC()
	suite.draft.Posted = true
	suite.draft.PostedAt = &postedAt

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.entryID).Return(suite.draft, nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrAlreadyPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry")
}

func (suite *PostingServiceTestSuite) TestPostEntry_SingleLine() {
	ctx := context.Background()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.entryID).Return(suite.draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, suite.entryID).Return(suite.lines[:1], nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry")
}

func (suite *PostingServiceTestSuite) TestPostEntry_Unbalanced() {
	ctx := context.Background()
	suite.lines[1].Amount = decimal.RequireFromString("99.00")

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.entryID).Return(suite.draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, suite.entryID).Return(suite.lines, nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry")
}

func (suite *PostingServiceTestSuite) TestPostEntry_MissingAccount() {
	ctx := context.Background()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.entryID).Return(suite.draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, suite.entryID).Return(suite.lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Account{suite.cash.AccountID: suite.cash}, nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry")
}

func (suite *PostingServiceTestSuite) TestPostEntry_StorageFailureLeavesDraft() {
	ctx := context.Background()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.entryID).Return(suite.draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, suite.entryID).Return(suite.lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Account{
			suite.cash.AccountID:    suite.cash,
			suite.revenue.AccountID: suite.revenue,
		}, nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	entry, err := suite.service.PostEntry(ctx, suite.entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.False(suite.draft.Posted, "the loaded entry must not be mutated on failure")
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
