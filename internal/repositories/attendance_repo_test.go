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

type AttendanceRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       AttendanceRepository
	shopID     uuid.UUID
	employeeID uuid.UUID
	context    context.Context
}

func (suite *AttendanceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewAttendanceRepo(mock)
	suite.shopID = uuid.New()
	suite.employeeID = uuid.New()
	suite.context = context.Background()
}

func (suite *AttendanceRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestAttendanceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceRepoTestSuite))
}

func (suite *AttendanceRepoTestSuite) record(status string, checkIn time.Time) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		ID:         uuid.New(),
		ShopID:     suite.shopID,
		EmployeeID: suite.employeeID,
		CheckIn:    checkIn,
		Status:     status,
	}
}

func (suite *AttendanceRepoTestSuite) recordRows(records ...*models.AttendanceRecord) *pgxmock.Rows {
	rows := suite.mock.NewRows([]string{"id", "shop_id", "employee_id", "check_in",
		"check_out", "status", "created_at"})
	for _, r := range records {
		rows.AddRow(r.ID, r.ShopID, r.EmployeeID, r.CheckIn, r.CheckOut, r.Status, r.CreatedAt)
	}
	return rows
}

func (suite *AttendanceRepoTestSuite) TestCreate_Success() {
	record := suite.record(models.AttendanceStatusOnTime, time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC))

	suite.mock.ExpectExec(`INSERT INTO attendance_records`).
		WithArgs(record.ID, record.ShopID, record.EmployeeID, record.CheckIn, record.CheckOut, record.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, record)
	assert.NoError(suite.T(), err)
}

func (suite *AttendanceRepoTestSuite) TestSetCheckOut_OnlyOpenRecords() {
	recordID := uuid.New()
	checkOut := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	suite.mock.ExpectExec(`UPDATE attendance_records`).
		WithArgs(checkOut, suite.shopID, recordID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SetCheckOut(suite.context, suite.shopID, recordID, checkOut)
	assert.NoError(suite.T(), err)
}

func (suite *AttendanceRepoTestSuite) TestListByShopSince() {
	since := time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC)
	first := suite.record(models.AttendanceStatusOnTime, since.Add(9*time.Hour))
	second := suite.record(models.AttendanceStatusLate, since.Add(33*time.Hour))

	suite.mock.ExpectQuery(`FROM attendance_records WHERE shop_id = \$1 AND check_in >= \$2 ORDER BY check_in`).
		WithArgs(suite.shopID, since).
		WillReturnRows(suite.recordRows(first, second))

	records, err := suite.repo.ListByShopSince(suite.context, suite.shopID, since)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 2)
	assert.Equal(suite.T(), models.AttendanceStatusLate, records[1].Status)
}

func (suite *AttendanceRepoTestSuite) TestHasCheckInSince_True() {
	since := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.shopID, suite.employeeID, since).
		WillReturnRows(suite.mock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := suite.repo.HasCheckInSince(suite.context, suite.shopID, suite.employeeID, since)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

func (suite *AttendanceRepoTestSuite) TestHasCheckInSince_False() {
	since := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.shopID, suite.employeeID, since).
		WillReturnRows(suite.mock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := suite.repo.HasCheckInSince(suite.context, suite.shopID, suite.employeeID, since)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}

func (suite *AttendanceRepoTestSuite) TestGetOpenRecord_Found() {
	since := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	open := suite.record(models.AttendanceStatusOnTime, since.Add(9*time.Hour))

	suite.mock.ExpectQuery(`FROM attendance_records`).
		WithArgs(suite.shopID, suite.employeeID, since).
		WillReturnRows(suite.recordRows(open))

	record, err := suite.repo.GetOpenRecord(suite.context, suite.shopID, suite.employeeID, since)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), open.ID, record.ID)
	assert.Nil(suite.T(), record.CheckOut)
}

func (suite *AttendanceRepoTestSuite) TestGetOpenRecord_NoneOpen() {
	since := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`FROM attendance_records`).
		WithArgs(suite.shopID, suite.employeeID, since).
		WillReturnError(errors.New("no rows in result set"))

	_, err := suite.repo.GetOpenRecord(suite.context, suite.shopID, suite.employeeID, since)
	assert.Error(suite.T(), err)
}
