package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"saledup/internal/caching"
	"saledup/internal/repositories"
	"saledup/internal/services"

	"github.com/google/uuid"
)

// LateAlertService notifies a shop's admin about employees who have not
// checked in past the shift start plus the shop's grace period.
//
// The job is stateless per tick: an absent employee triggers a fresh alert on
// every run until they check in. Shops that prefer a single alert per day can
// opt into de-duplication via their config.
type LateAlertService struct {
	shopRepo       repositories.ShopRepository
	employeeRepo   repositories.EmployeeRepository
	attendanceRepo repositories.AttendanceRepository
	pushSvc        services.PushService
	cacheSvc       caching.CacheService
	now            func() time.Time
}

func NewLateAlertService(
	shopRepo repositories.ShopRepository,
	employeeRepo repositories.EmployeeRepository,
	attendanceRepo repositories.AttendanceRepository,
	pushSvc services.PushService,
	cacheSvc caching.CacheService,
) *LateAlertService {
	return &LateAlertService{
		shopRepo:       shopRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		pushSvc:        pushSvc,
		cacheSvc:       cacheSvc,
		now:            time.Now,
	}
}

func (s *LateAlertService) RunTick(ctx context.Context) error {
	shops, err := s.shopRepo.List(ctx, 1000, 0)
	if err != nil {
		return fmt.Errorf("failed to list shops for late alerts: %v", err)
	}

	forEachShop(ctx, shops, "late-alert", s.processShop)
	return nil
}

func (s *LateAlertService) processShop(ctx context.Context, shopID uuid.UUID) error {
	shop, err := getShopConfig(ctx, s.cacheSvc, s.shopRepo, shopID)
	if err != nil {
		return err
	}

	if !shop.EnableLateAlerts {
		return nil
	}

	now := s.now()
	hours, ok := shop.HoursFor(now.Weekday())
	if !ok || !hours.IsOpen {
		return nil
	}

	start, err := services.ShiftStart(hours.StartTime, now)
	if err != nil {
		return err
	}

	deadline := start.Add(time.Duration(shop.LateGracePeriodMinutes) * time.Minute)
	if !now.After(deadline) {
		return nil
	}

	if shop.AdminFCMToken == nil || *shop.AdminFCMToken == "" {
		log.Printf("Shop %s has no admin device token; skipping late alerts", shopID.String())
		return nil
	}

	employees, err := s.employeeRepo.ListActive(ctx, shopID)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %v", err)
	}

	startOfDay := services.StartOfDay(now)
	for _, employee := range employees {
		checkedIn, err := s.attendanceRepo.HasCheckInSince(ctx, shopID, employee.ID, startOfDay)
		if err != nil {
			log.Printf("Failed to check attendance for employee %s: %v", employee.ID.String(), err)
			continue
		}
		if checkedIn {
			continue
		}

		if shop.DedupeLateAlerts {
			first, err := s.cacheSvc.MarkLateAlertSent(ctx, shopID, employee.ID, untilEndOfDay(now))
			if err != nil {
				log.Printf("Late alert dedup check failed for employee %s: %v", employee.ID.String(), err)
			} else if !first {
				continue
			}
		}

		body := fmt.Sprintf("%s has not checked in for the %s shift yet.", employee.Name, hours.StartTime)
		if err := s.pushSvc.SendToToken(ctx, *shop.AdminFCMToken, "Late arrival alert", body, map[string]string{
			"type":        "late_alert",
			"employee_id": employee.ID.String(),
		}); err != nil {
			log.Printf("Failed to send late alert for employee %s: %v", employee.ID.String(), err)
			// Release the dedup mark so the next tick can retry the alert.
			if shop.DedupeLateAlerts {
				if clearErr := s.cacheSvc.ClearLateAlertSent(ctx, shopID, employee.ID); clearErr != nil {
					log.Printf("Failed to clear late alert mark for employee %s: %v", employee.ID.String(), clearErr)
				}
			}
		}
	}
	return nil
}

func untilEndOfDay(now time.Time) time.Duration {
	return services.StartOfDay(now).AddDate(0, 0, 1).Sub(now)
}
