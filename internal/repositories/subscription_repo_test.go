package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"saledup/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SubscriptionRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    SubscriptionRepository
	shopID  uuid.UUID
	context context.Context
}

func (suite *SubscriptionRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSubscriptionRepo(mock)
	suite.shopID = uuid.New()
	suite.context = context.Background()
}

func (suite *SubscriptionRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestSubscriptionRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionRepoTestSuite))
}

func (suite *SubscriptionRepoTestSuite) TestCreate_TrialWithoutPaymentIDs() {
	subscription := &models.Subscription{
		ID:       uuid.New(),
		ShopID:   suite.shopID,
		PlanName: models.PlanTrial,
		Status:   models.SubscriptionStatusTrialing,
	}

	suite.mock.ExpectExec(`INSERT INTO subscriptions`).
		WithArgs(subscription.ID, subscription.ShopID, subscription.PlanName,
			subscription.RazorpayPaymentID, subscription.RazorpaySubscriptionID, subscription.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, subscription)
	assert.NoError(suite.T(), err)
}

func (suite *SubscriptionRepoTestSuite) TestGetByShop_ReturnsLatest() {
	now := time.Now()

	rows := suite.mock.NewRows([]string{"id", "shop_id", "plan_name", "razorpay_payment_id",
		"razorpay_subscription_id", "status", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.shopID, models.PlanGrowth, stringPtr("pay_123"),
			stringPtr("sub_456"), models.SubscriptionStatusActive, now, now)

	suite.mock.ExpectQuery(`FROM subscriptions`).
		WithArgs(suite.shopID).
		WillReturnRows(rows)

	subscription, err := suite.repo.GetByShop(suite.context, suite.shopID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PlanGrowth, subscription.PlanName)
	assert.Equal(suite.T(), models.SubscriptionStatusActive, subscription.Status)
	assert.Equal(suite.T(), "pay_123", *subscription.RazorpayPaymentID)
}

func (suite *SubscriptionRepoTestSuite) TestGetByShop_NotFound() {
	suite.mock.ExpectQuery(`FROM subscriptions`).
		WithArgs(suite.shopID).
		WillReturnError(errors.New("no rows in result set"))

	subscription, err := suite.repo.GetByShop(suite.context, suite.shopID)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), subscription)
}

func (suite *SubscriptionRepoTestSuite) TestActivatePlan_SingleUpdate() {
	suite.mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(models.PlanPro, "pay_123", "sub_456", models.SubscriptionStatusActive, suite.shopID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.ActivatePlan(suite.context, suite.shopID, models.PlanPro, "pay_123", "sub_456")
	assert.NoError(suite.T(), err)
}

func (suite *SubscriptionRepoTestSuite) TestActivatePlan_DatabaseError() {
	suite.mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(models.PlanPro, "pay_123", "sub_456", models.SubscriptionStatusActive, suite.shopID).
		WillReturnError(errors.New("connection reset"))

	err := suite.repo.ActivatePlan(suite.context, suite.shopID, models.PlanPro, "pay_123", "sub_456")
	assert.Error(suite.T(), err)
}
