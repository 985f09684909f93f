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
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/tradelens/barter_ledger/internal/apperrors"
	"github.com/tradelens/barter_ledger/internal/core/domain"
	portssvc "github.com/tradelens/barter_ledger/internal/core/ports/services"
	"github.com/tradelens/barter_ledger/internal/dto"
	"github.com/tradelens/barter_ledger/internal/handlers"
	"github.com/tradelens/barter_ledger/internal/middleware"
	"github.com/tradelens/barter_ledger/pkg/config"
)

// --- Mock BarterService ---
type MockBarterService struct {
	mock.Mock
}

var _ portssvc.BarterSvcFacade = (*MockBarterService)(nil)

func (m *MockBarterService) CreateBarter(ctx context.Context, req dto.CreateBarterRequest, deviceID string) (*domain.BarterWithEntries, []string, error) {
	args := m.Called(ctx, req, deviceID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var warnings []string
	if args.Get(1) != nil {
		warnings = args.Get(1).([]string)
	}
	return args.Get(0).(*domain.BarterWithEntries), warnings, args.Error(2)
}

func (m *MockBarterService) GetBarterByID(ctx context.Context, barterID string) (*domain.BarterWithEntries, error) {
	args := m.Called(ctx, barterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarterWithEntries), args.Error(1)
}

func (m *MockBarterService) UpdateBarter(ctx context.Context, barterID string, req dto.UpdateBarterRequest, deviceID string) (*domain.BarterTransaction, []string, error) {
	args := m.Called(ctx, barterID, req, deviceID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var warnings []string
	if args.Get(1) != nil {
		warnings = args.Get(1).([]string)
	}
	return args.Get(0).(*domain.BarterTransaction), warnings, args.Error(2)
}

func (m *MockBarterService) PostBarter(ctx context.Context, barterID, deviceID string) (*domain.BarterTransaction, error) {
	args := m.Called(ctx, barterID, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarterTransaction), args.Error(1)
}

func (m *MockBarterService) VoidBarter(ctx context.Context, barterID, deviceID, reason string) (*domain.BarterTransaction, error) {
	args := m.Called(ctx, barterID, deviceID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarterTransaction), args.Error(1)
}

func (m *MockBarterService) QueryBarters(ctx context.Context, req dto.QueryBartersRequest) ([]domain.BarterTransaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BarterTransaction), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) Statistics(ctx context.Context, companyID string, taxYear int) (*domain.BarterStatistics, error) {
	args := m.Called(ctx, companyID, taxYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarterStatistics), args.Error(1)
}

func (m *MockReportingService) TaxSummary(ctx context.Context, companyID string, taxYear int) (*domain.BarterTaxSummary, error) {
	args := m.Called(ctx, companyID, taxYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarterTaxSummary), args.Error(1)
}

const testJWTSecret = "test-secret"

// --- Test Suite Setup ---
type BarterHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockBarter    *MockBarterService
	mockReporting *MockReportingService
	token         string
}

func (suite *BarterHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	_ = dto.RegisterBindingValidations()

	suite.mockBarter = new(MockBarterService)
	suite.mockReporting = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:          testJWTSecret,
		RateLimit:          "1000-S",
		IsProduction:       true,
		CORSAllowedOrigins: []string{"*"},
	}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Barter:    suite.mockBarter,
		Reporting: suite.mockReporting,
	})

	claims := jwt.RegisteredClaims{
		Subject:   "tester",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(suite.T(), err)
	suite.token = token
}

func (suite *BarterHandlerTestSuite) doRequest(method, path, deviceID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	if deviceID != "" {
		req.Header.Set(middleware.DeviceIDHeader, deviceID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validCreateBody() dto.CreateBarterRequest {
	return dto.CreateBarterRequest{
		CompanyID:                "comp-1",
		TransactionDate:          time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		GoodsReceivedDescription: "Website design services",
		GoodsReceivedFMV:         "500.00",
		IncomeAccountID:          "acc-income",
		GoodsProvidedDescription: "Office furniture",
		GoodsProvidedFMV:         "450.00",
		ExpenseAccountID:         "acc-expense",
	}
}

func sampleAggregate() *domain.BarterWithEntries {
	return &domain.BarterWithEntries{
		Barter: domain.BarterTransaction{
			BarterID:          "barter-1",
			TransactionNumber: "BRT-2026-00001",
			Status:            domain.Draft,
			ReceivedFMV:       decimal.RequireFromString("500.00"),
			ProvidedFMV:       decimal.RequireFromString("450.00"),
			Version:           domain.VersionVector{"device-a": 1},
		},
		IncomeEntry:  domain.Transaction{TransactionID: "entry-income", Version: domain.VersionVector{"device-a": 1}},
		ExpenseEntry: domain.Transaction{TransactionID: "entry-expense", Version: domain.VersionVector{"device-a": 1}},
	}
}

func (suite *BarterHandlerTestSuite) TestCreateBarter_Created() {
	suite.mockBarter.On("CreateBarter", mock.Anything, mock.Anything, "device-a").
		Return(sampleAggregate(), []string{"advisory"}, nil)

	w := suite.doRequest(http.MethodPost, "/api/v1/barters", "device-a", validCreateBody())

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	var resp dto.BarterWithEntriesResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "BRT-2026-00001", resp.Barter.TransactionNumber)
	assert.Equal(suite.T(), []string{"advisory"}, resp.Warnings)
}

func (suite *BarterHandlerTestSuite) TestCreateBarter_MissingDeviceHeader() {
	w := suite.doRequest(http.MethodPost, "/api/v1/barters", "", validCreateBody())

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockBarter.AssertNotCalled(suite.T(), "CreateBarter", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BarterHandlerTestSuite) TestCreateBarter_MissingAuth() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/barters", bytes.NewReader(nil))
	req.Header.Set(middleware.DeviceIDHeader, "device-a")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *BarterHandlerTestSuite) TestCreateBarter_ValidationErrorDetails() {
	suite.mockBarter.On("CreateBarter", mock.Anything, mock.Anything, "device-a").
		Return(nil, nil, apperrors.NewValidationError([]string{"goods received FMV must be greater than zero"}))

	w := suite.doRequest(http.MethodPost, "/api/v1/barters", "device-a", validCreateBody())

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "Validation failed", resp["error"])
	assert.Len(suite.T(), resp["details"], 1)
}

func (suite *BarterHandlerTestSuite) TestCreateBarter_MalformedDecimalRejectedAtBinding() {
	body := validCreateBody()
	body.GoodsReceivedFMV = "12.3.4"

	w := suite.doRequest(http.MethodPost, "/api/v1/barters", "device-a", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockBarter.AssertNotCalled(suite.T(), "CreateBarter", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BarterHandlerTestSuite) TestGetBarter_NotFound() {
	suite.mockBarter.On("GetBarterByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	w := suite.doRequest(http.MethodGet, "/api/v1/barters/missing", "", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *BarterHandlerTestSuite) TestPostBarter_InvalidStateConflict() {
	suite.mockBarter.On("PostBarter", mock.Anything, "barter-1", "device-a").
		Return(nil, apperrors.NewInvalidStateError("POSTED", "post"))

	w := suite.doRequest(http.MethodPost, "/api/v1/barters/barter-1/post", "device-a", nil)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *BarterHandlerTestSuite) TestUpdateBarter_ConflictOnConcurrentEdit() {
	suite.mockBarter.On("UpdateBarter", mock.Anything, "barter-1", mock.Anything, "device-a").
		Return(nil, nil, apperrors.ErrConflict)

	memo := "note"
	w := suite.doRequest(http.MethodPatch, "/api/v1/barters/barter-1", "device-a", dto.UpdateBarterRequest{Memo: &memo})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *BarterHandlerTestSuite) TestVoidBarter_ReasonRequired() {
	w := suite.doRequest(http.MethodPost, "/api/v1/barters/barter-1/void", "device-a", map[string]string{})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockBarter.AssertNotCalled(suite.T(), "VoidBarter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BarterHandlerTestSuite) TestVoidBarter_Success() {
	barter := sampleAggregate().Barter
	barter.Status = domain.Void
	suite.mockBarter.On("VoidBarter", mock.Anything, "barter-1", "device-a", "duplicate entry").
		Return(&barter, nil)

	w := suite.doRequest(http.MethodPost, "/api/v1/barters/barter-1/void", "device-a", dto.VoidBarterRequest{Reason: "duplicate entry"})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.BarterResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), domain.Void, resp.Status)
}

func (suite *BarterHandlerTestSuite) TestQueryBarters_ReturnsCount() {
	suite.mockBarter.On("QueryBarters", mock.Anything, mock.MatchedBy(func(req dto.QueryBartersRequest) bool {
		return req.CompanyID == "comp-1"
	})).Return([]domain.BarterTransaction{sampleAggregate().Barter}, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/barters?companyID=comp-1", "", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.QueryBartersResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), 1, resp.Count)
}

func (suite *BarterHandlerTestSuite) TestQueryBarters_CompanyIDRequired() {
	w := suite.doRequest(http.MethodGet, "/api/v1/barters", "", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *BarterHandlerTestSuite) TestStatistics_OK() {
	suite.mockReporting.On("Statistics", mock.Anything, "comp-1", 2026).
		Return(&domain.BarterStatistics{
			CompanyID:       "comp-1",
			TaxYear:         2026,
			TotalCount:      2,
			TotalIncomeFMV:  decimal.RequireFromString("1500.00"),
			TotalExpenseFMV: decimal.RequireFromString("1400.00"),
			CountByStatus:   map[domain.TransactionStatus]int{domain.Posted: 2},
			CountByMonth:    map[string]int{"2026-01": 2},
		}, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/reports/barters/statistics?companyID=comp-1&taxYear=2026", "", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.BarterStatisticsResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "1500.00", resp.TotalIncomeFMV)
	assert.Equal(suite.T(), 2, resp.CountByStatus["POSTED"])
}

func (suite *BarterHandlerTestSuite) TestStatistics_CompanyIDRequired() {
	w := suite.doRequest(http.MethodGet, "/api/v1/reports/barters/statistics", "", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// --- Run Test Suite ---
func TestBarterHandlers(t *testing.T) {
	suite.Run(t, new(BarterHandlerTestSuite))
}
