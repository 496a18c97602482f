package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"saledup/internal/models"
	"saledup/internal/repositories"

	"github.com/google/uuid"
)

// Reward deltas applied on check-in when the plan includes the rewards system.
const (
	rewardOnTimePoints = 10
	rewardLatePoints   = 2
)

// AttendanceService records scan events and classifies them against the
// shop's business hours and grace period.
type AttendanceService interface {
	CheckIn(ctx context.Context, shopID, employeeID uuid.UUID, at time.Time) (*models.AttendanceRecord, error)
	CheckOut(ctx context.Context, shopID, employeeID uuid.UUID, at time.Time) (*models.AttendanceRecord, error)
	ListWeek(ctx context.Context, shopID uuid.UUID, now time.Time) ([]*models.AttendanceRecord, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	employeeRepo   repositories.EmployeeRepository
	shopRepo       repositories.ShopRepository
	entitlements   EntitlementService
}

func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	employeeRepo repositories.EmployeeRepository,
	shopRepo repositories.ShopRepository,
	entitlements EntitlementService,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		shopRepo:       shopRepo,
		entitlements:   entitlements,
	}
}

func (s *attendanceService) CheckIn(ctx context.Context, shopID, employeeID uuid.UUID, at time.Time) (*models.AttendanceRecord, error) {
	employee, err := s.employeeRepo.GetByID(ctx, shopID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("employee not found: %v", err)
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("shop not found: %v", err)
	}

	already, err := s.attendanceRepo.HasCheckInSince(ctx, shopID, employeeID, StartOfDay(at))
	if err != nil {
		return nil, err
	}
	if already {
		return nil, fmt.Errorf("employee has already checked in today")
	}

	record := &models.AttendanceRecord{
		ID:         uuid.New(),
		ShopID:     shopID,
		EmployeeID: employeeID,
		CheckIn:    at,
		Status:     classifyCheckIn(shop, at),
	}

	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record check-in: %v", err)
	}

	s.applyRewards(ctx, shop, employee, record.Status)

	return record, nil
}

// applyRewards credits points and streaks for a check-in when the shop's plan
// includes the rewards system. Reward failures never fail the check-in itself.
func (s *attendanceService) applyRewards(ctx context.Context, shop *models.Shop, employee *models.Employee, status string) {
	if err := s.entitlements.RequireFeature(ctx, shop.ID, models.FeatureRewardsSystem); err != nil {
		return
	}

	points := rewardLatePoints
	streak := 0
	if status == models.AttendanceStatusOnTime {
		points = rewardOnTimePoints
		streak = employee.Streak + 1
	}

	if err := s.employeeRepo.AddReward(ctx, shop.ID, employee.ID, points, streak); err != nil {
		log.Printf("Failed to apply rewards for employee %s: %v", employee.ID.String(), err)
	}
}

func (s *attendanceService) CheckOut(ctx context.Context, shopID, employeeID uuid.UUID, at time.Time) (*models.AttendanceRecord, error) {
	record, err := s.attendanceRepo.GetOpenRecord(ctx, shopID, employeeID, StartOfDay(at))
	if err != nil {
		return nil, fmt.Errorf("no open attendance record for today: %v", err)
	}

	if err := s.attendanceRepo.SetCheckOut(ctx, shopID, record.ID, at); err != nil {
		return nil, fmt.Errorf("failed to record check-out: %v", err)
	}

	record.CheckOut = &at
	return record, nil
}

func (s *attendanceService) ListWeek(ctx context.Context, shopID uuid.UUID, now time.Time) ([]*models.AttendanceRecord, error) {
	return s.attendanceRepo.ListByShopSince(ctx, shopID, StartOfDay(now).AddDate(0, 0, -6))
}

// classifyCheckIn labels a scan as on-time or late against today's shift start
// plus the shop's grace period. Scans on a closed day are labeled manual.
func classifyCheckIn(shop *models.Shop, at time.Time) string {
	hours, ok := shop.HoursFor(at.Weekday())
	if !ok || !hours.IsOpen {
		return models.AttendanceStatusManual
	}

	start, err := ShiftStart(hours.StartTime, at)
	if err != nil {
		return models.AttendanceStatusManual
	}

	deadline := start.Add(time.Duration(shop.LateGracePeriodMinutes) * time.Minute)
	if at.After(deadline) {
		return models.AttendanceStatusLate
	}
	return models.AttendanceStatusOnTime
}

// StartOfDay returns midnight of the given moment in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ShiftStart resolves an "HH:mm" shift time onto the date of the given moment.
func ShiftStart(hhmm string, day time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid shift time %q: %v", hhmm, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}
