package jobs

import (
	"context"
	"testing"
	"time"

	"saledup/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LateAlertTestSuite struct {
	suite.Suite
	mockShopRepo       *MockShopRepository
	mockEmployeeRepo   *MockEmployeeRepository
	mockAttendanceRepo *MockAttendanceRepository
	mockPush           *MockPushService
	mockCache          *MockCacheService
	service            *LateAlertService
	shopID             uuid.UUID
	employeeID         uuid.UUID
}

func (suite *LateAlertTestSuite) SetupTest() {
	suite.mockShopRepo = &MockShopRepository{}
	suite.mockEmployeeRepo = &MockEmployeeRepository{}
	suite.mockAttendanceRepo = &MockAttendanceRepository{}
	suite.mockPush = &MockPushService{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewLateAlertService(suite.mockShopRepo, suite.mockEmployeeRepo,
		suite.mockAttendanceRepo, suite.mockPush, suite.mockCache)
	suite.shopID = uuid.New()
	suite.employeeID = uuid.New()
}

func (suite *LateAlertTestSuite) TearDownTest() {
	suite.mockShopRepo.AssertExpectations(suite.T())
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
	suite.mockAttendanceRepo.AssertExpectations(suite.T())
	suite.mockPush.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestLateAlertTestSuite(t *testing.T) {
	suite.Run(t, new(LateAlertTestSuite))
}

func (suite *LateAlertTestSuite) shop() *models.Shop {
	return &models.Shop{
		ID:                     suite.shopID,
		ShopName:               "Test Kirana",
		EnableLateAlerts:       true,
		AdminFCMToken:          stringPtr("admin-token"),
		LateGracePeriodMinutes: 10,
		BusinessHours: models.BusinessHours{
			"monday": {IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
		},
	}
}

func (suite *LateAlertTestSuite) employee() *models.Employee {
	return &models.Employee{ID: suite.employeeID, ShopID: suite.shopID, Name: "Asha"}
}

func (suite *LateAlertTestSuite) fixNow(t time.Time) {
	suite.service.now = func() time.Time { return t }
}

func (suite *LateAlertTestSuite) TestRunTick_AlertsMissingEmployee() {
	ctx := context.Background()
	// Monday 09:15, past the 09:10 deadline.
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	suite.fixNow(now)
	startOfDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	suite.mockShopRepo.On("List", ctx, 1000, 0).Return([]*models.Shop{suite.shop()}, nil).Once()
	suite.mockCache.On("GetShop", mock.Anything, suite.shopID).Return(suite.shop(), nil).Once()
	suite.mockEmployeeRepo.On("ListActive", mock.Anything, suite.shopID).
		Return([]*models.Employee{suite.employee()}, nil).Once()
	suite.mockAttendanceRepo.On("HasCheckInSince", mock.Anything, suite.shopID, suite.employeeID, startOfDay).
		Return(false, nil).Once()
	suite.mockPush.On("SendToToken", mock.Anything, "admin-token", "Late arrival alert",
		"Asha has not checked in for the 09:00 shift yet.", mock.Anything).Return(nil).Once()

	err := suite.service.RunTick(ctx)
	assert.NoError(suite.T(), err)
}

func (suite *LateAlertTestSuite) TestRunTick_CheckedInEmployeeNotAlerted() {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	suite.fixNow(now)
	startOfDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	suite.mockShopRepo.On("List", ctx, 1000, 0).Return([]*models.Shop{suite.shop()}, nil).Once()
	suite.mockCache.On("GetShop", mock.Anything, suite.shopID).Return(suite.shop(), nil).Once()
	suite.mockEmployeeRepo.On("ListActive", mock.Anything, suite.shopID).
		Return([]*models.Employee{suite.employee()}, nil).Once()
	suite.mockAttendanceRepo.On("HasCheckInSince", mock.Anything, suite.shopID, suite.employeeID, startOfDay).
		Return(true, nil).Once()

	err := suite.service.RunTick(ctx)
	assert.NoError(suite.T(), err)
	suite.mockPush.AssertNotCalled(suite.T(), "SendToToken",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LateAlertTestSuite) TestRunTick_BeforeDeadlineDoesNothing() {
	ctx := context.Background()
	// 09:10 is exactly the deadline, not past it.
	suite.fixNow(time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC))

	suite.mockShopRepo.On("List", ctx, 1000, 0).Return([]*models.Shop{suite.shop()}, nil).Once()
	suite.mockCache.On("GetShop", mock.Anything, suite.shopID).Return(suite.shop(), nil).Once()

	err := suite.service.RunTick(ctx)
	assert.NoError(suite.T(), err)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "ListActive", mock.Anything, mock.Anything)
}

func (suite *LateAlertTestSuite) TestRunTick_AlertsDisabled() {
	ctx := context.Background()
	suite.fixNow(time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC))

	shop := suite.shop()
	shop.EnableLateAlerts = false

	suite.mockShopRepo.On("List", ctx, 1000, 0).Return([]*models.Shop{shop}, nil).Once()
	suite.mockCache.On("GetShop", mock.Anything, suite.shopID).Return(shop, nil).Once()

	err := suite.service.RunTick(ctx)
	assert.NoError(suite.T(), err)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "ListActive", mock.Anything, mock.Anything)
}

func (suite *LateAlertTestSuite) TestRunTick_StatelessRepeatsEveryTick() {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	suite.fixNow(now)
	startOfDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// Dedup disabled: two consecutive ticks both alert for the same absence,
	// and the dedup marker is never consulted.
	suite.mockShopRepo.On("List", ctx, 1000, 0).Return([]*models.Shop{suite.shop()}, nil).Twice()
	suite.mockCache.On("GetShop", mock.Anything, suite.shopID).Return(suite.shop(), nil).Twice()
	suite.mockEmployeeRepo.On("ListActive", mock.Anything, suite.shopID).
		Return([]*models.Employee{suite.employee()}, nil).Twice()
	suite.mockAttendanceRepo.On("HasCheckInSince", mock.Anything, suite.shopID, suite.employeeID, startOfDay).
		Return(false, nil).Twice()
	suite.mockPush.On("SendToToken", mock.Anything, "admin-token", "Late arrival alert",
		mock.Anything, mock.Anything).Return(nil).Twice()

	assert.NoError(suite.T(), suite.service.RunTick(ctx))
	assert.NoError(suite.T(), suite.service.RunTick(ctx))
	suite.mockCache.AssertNotCalled(suite.T(), "MarkLateAlertSent",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LateAlertTestSuite) TestRunTick_DedupSuppressesRepeatAlert() {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	suite.fixNow(now)
	startOfDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	ttl := startOfDay.AddDate(0, 0, 1).Sub(now)

	shop := suite.shop()
	shop.DedupeLateAlerts = true

	suite.mockShopRepo.On("List", ctx, 1000, 0).Return([]*models.Shop{shop}, nil).Twice()
	suite.mockCache.On("GetShop", mock.Anything, suite.shopID).Return(shop, nil).Twice()
	suite.mockEmployeeRepo.On("ListActive", mock.Anything, suite.shopID).
		Return([]*models.Employee{suite.employee()}, nil).Twice()
	suite.mockAttendanceRepo.On("HasCheckInSince", mock.Anything, suite.shopID, suite.employeeID, startOfDay).
		Return(false, nil).Twice()
	suite.mockCache.On("MarkLateAlertSent", mock.Anything, suite.shopID, suite.employeeID, ttl).
		Return(true, nil).Once()
	suite.mockCache.On("MarkLateAlertSent", mock.Anything, suite.shopID, suite.employeeID, ttl).
		Return(false, nil).Once()
	// Only the first tick pushes.
	suite.mockPush.On("SendToToken", mock.Anything, "admin-token", "Late arrival alert",
		mock.Anything, mock.Anything).Return(nil).Once()

	assert.NoError(suite.T(), suite.service.RunTick(ctx))
	assert.NoError(suite.T(), suite.service.RunTick(ctx))
}

func (suite *LateAlertTestSuite) TestRunTick_NoAdminTokenSkipsShop() {
	ctx := context.Background()
	suite.fixNow(time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC))

	// Dedup enabled: a shop without an admin token must not consume the
	// day's dedup mark, or the alert is lost once the token is registered.
	shop := suite.shop()
	shop.AdminFCMToken = nil
	shop.DedupeLateAlerts = true

	suite.mockShopRepo.On("List", ctx, 1000, 0).Return([]*models.Shop{shop}, nil).Once()
	suite.mockCache.On("GetShop", mock.Anything, suite.shopID).Return(shop, nil).Once()

	err := suite.service.RunTick(ctx)
	assert.NoError(suite.T(), err)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "ListActive", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "MarkLateAlertSent",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPush.AssertNotCalled(suite.T(), "SendToToken",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LateAlertTestSuite) TestRunTick_FailedPushReleasesDedupMark() {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	suite.fixNow(now)
	startOfDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	ttl := startOfDay.AddDate(0, 0, 1).Sub(now)

	shop := suite.shop()
	shop.DedupeLateAlerts = true

	suite.mockShopRepo.On("List", ctx, 1000, 0).Return([]*models.Shop{shop}, nil).Once()
	suite.mockCache.On("GetShop", mock.Anything, suite.shopID).Return(shop, nil).Once()
	suite.mockEmployeeRepo.On("ListActive", mock.Anything, suite.shopID).
		Return([]*models.Employee{suite.employee()}, nil).Once()
	suite.mockAttendanceRepo.On("HasCheckInSince", mock.Anything, suite.shopID, suite.employeeID, startOfDay).
		Return(false, nil).Once()
	suite.mockCache.On("MarkLateAlertSent", mock.Anything, suite.shopID, suite.employeeID, ttl).
		Return(true, nil).Once()
	suite.mockPush.On("SendToToken", mock.Anything, "admin-token", "Late arrival alert",
		mock.Anything, mock.Anything).Return(assert.AnError).Once()
	suite.mockCache.On("ClearLateAlertSent", mock.Anything, suite.shopID, suite.employeeID).
		Return(nil).Once()

	err := suite.service.RunTick(ctx)
	assert.NoError(suite.T(), err)
}
