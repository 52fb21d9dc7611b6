package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
	"github.com/wsetiyawan/balancebook/internal/core/services"
	"github.com/wsetiyawan/balancebook/internal/dto"
	"github.com/wsetiyawan/balancebook/internal/handlers"
	"github.com/wsetiyawan/balancebook/pkg/config"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PostingSvc = (*MockPostingService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) AccountBalance(ctx context.Context, accountID string, from, to *time.Time) (*dto.AccountBalanceResponse, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountBalanceResponse), args.Error(1)
}
func (m *MockReportingService) CategoryBalance(ctx context.Context, category domain.AccountCategory) (decimal.Decimal, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReportingService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SummaryResponse), args.Error(1)
}
func (m *MockReportingService) ListLedgerByAccount(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListLedgerEntriesResponse, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLedgerEntriesResponse), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Test Suite Setup ---

type JournalHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockJournal   *MockJournalService
	mockPosting   *MockPostingService
	mockAccount   *MockAccountService
	mockReporting *MockReportingService
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockJournal = new(MockJournalService)
	suite.mockPosting = new(MockPostingService)
	suite.mockAccount = new(MockAccountService)
	suite.mockReporting = new(MockReportingService)

	container := &services.Container{
		Account:   suite.mockAccount,
		Journal:   suite.mockJournal,
		Posting:   suite.mockPosting,
		Reporting: suite.mockReporting,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, container)
}

func (suite *JournalHandlerTestSuite) performRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateEntry_Success() {
	entryID := uuid.NewString()
	req := dto.CreateJournalEntryRequest{
		Date: "2025-10-15",
		Memo: "Cash sale",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: uuid.NewString(), Position: "debit", Amount: decimal.RequireFromString("100.00")},
			{AccountID: uuid.NewString(), Position: "credit", Amount: decimal.RequireFromString("100.00")},
		},
	}
	created := &domain.JournalEntry{
		EntryID: entryID,
		Number:  "JRN20251015000001",
		Date:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Memo:    "Cash sale",
	}

	suite.mockJournal.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
		Return(created, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID, resp.EntryID)
	suite.Equal("JRN20251015000001", resp.Number)
	suite.Equal("2025-10-15", resp.Date)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_BindingRejectsSingleLine() {
	req := dto.CreateJournalEntryRequest{
		Date: "2025-10-15",
		Memo: "One-legged",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: uuid.NewString(), Position: "debit", Amount: decimal.RequireFromString("100.00")},
		},
	}

	w := suite.performRequest(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_UnbalancedMapsToConflict() {
	req := dto.CreateJournalEntryRequest{
		Date: "2025-10-15",
		Memo: "Lopsided",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: uuid.NewString(), Position: "debit", Amount: decimal.RequireFromString("100.00")},
			{AccountID: uuid.NewString(), Position: "credit", Amount: decimal.RequireFromString("90.00")},
		},
	}

	suite.mockJournal.On("CreateEntry", mock.Anything, mock.Anything).
		Return(nil, services.ErrEntryUnbalanced).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()

	suite.mockJournal.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Success() {
	entryID := uuid.NewString()
	postedAt := time.Now().UTC()
	posted := &domain.JournalEntry{
		EntryID:  entryID,
		Number:   "JRN20251015000001",
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Memo:     "Cash sale",
		Posted:   true,
		PostedAt: &postedAt,
	}

	suite.mockPosting.On("PostEntry", mock.Anything, entryID).Return(posted, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/post", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Posted)
	suite.NotNil(resp.PostedAt)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_AlreadyPostedMapsToConflict() {
	entryID := uuid.NewString()

	suite.mockPosting.On("PostEntry", mock.Anything, entryID).
		Return(nil, services.ErrAlreadyPosted).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_Success() {
	entryID := uuid.NewString()

	suite.mockJournal.On("DeleteEntry", mock.Anything, entryID).Return(nil).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListEntries_InvalidPostedFlag() {
	w := suite.performRequest(http.MethodGet, "/api/v1/journal-entries?posted=maybe", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournal.AssertNotCalled(suite.T(), "ListEntries")
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
