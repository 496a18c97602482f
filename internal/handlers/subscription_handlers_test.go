package handlers

import (
	"context"
	"net/http"
	"testing"

	"saledup/internal/models"
	"saledup/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ActivatePlan(ctx context.Context, shopID uuid.UUID, planName, paymentID, subscriptionID string) error {
	args := m.Called(ctx, shopID, planName, paymentID, subscriptionID)
	return args.Error(0)
}

type SubscriptionHandlersTestSuite struct {
	suite.Suite
	echo          *echo.Echo
	entitlements  *MockEntitlementService
	subscriptions *MockSubscriptionRepository
	handlers      *SubscriptionHandlers
	shopID        uuid.UUID
}

func (suite *SubscriptionHandlersTestSuite) SetupTest() {
	suite.echo = echo.New()
	suite.entitlements = new(MockEntitlementService)
	suite.subscriptions = new(MockSubscriptionRepository)
	suite.handlers = NewSubscriptionHandlers(suite.entitlements, suite.subscriptions)
	suite.shopID = uuid.New()
}

func (suite *SubscriptionHandlersTestSuite) TestGetCurrent() {
	plan := services.ResolvePlan(models.PlanGrowth)
	suite.entitlements.On("EffectivePlan", mock.Anything, suite.shopID).Return(plan).Once()
	suite.subscriptions.On("GetByShop", mock.Anything, suite.shopID).
		Return(&models.Subscription{ID: uuid.New(), ShopID: suite.shopID, PlanName: models.PlanGrowth, Status: models.SubscriptionStatusActive}, nil).Once()

	c, rec := newJSONContext(suite.echo, http.MethodGet, "/v1/subscription", "", &suite.shopID)

	err := suite.handlers.GetCurrent(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"effective_plan"`)
	assert.Contains(suite.T(), rec.Body.String(), models.PlanGrowth)
}

func (suite *SubscriptionHandlersTestSuite) TestGetCurrentNoSubscriptionRow() {
	plan := services.ResolvePlan(models.PlanTrial)
	suite.entitlements.On("EffectivePlan", mock.Anything, suite.shopID).Return(plan).Once()
	suite.subscriptions.On("GetByShop", mock.Anything, suite.shopID).
		Return(nil, pgx.ErrNoRows).Once()

	c, rec := newJSONContext(suite.echo, http.MethodGet, "/v1/subscription", "", &suite.shopID)

	err := suite.handlers.GetCurrent(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"subscription":null`)
	assert.Contains(suite.T(), rec.Body.String(), models.PlanTrial)
}

func (suite *SubscriptionHandlersTestSuite) TestGetCurrentRepoError() {
	plan := services.ResolvePlan(models.PlanTrial)
	suite.entitlements.On("EffectivePlan", mock.Anything, suite.shopID).Return(plan).Once()
	suite.subscriptions.On("GetByShop", mock.Anything, suite.shopID).
		Return(nil, assert.AnError).Once()

	c, _ := newJSONContext(suite.echo, http.MethodGet, "/v1/subscription", "", &suite.shopID)

	err := suite.handlers.GetCurrent(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusInternalServerError, httpErr.Code)
}

func TestSubscriptionHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionHandlersTestSuite))
}
