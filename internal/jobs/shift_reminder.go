package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"saledup/internal/caching"
	"saledup/internal/models"
	"saledup/internal/repositories"
	"saledup/internal/services"

	"github.com/google/uuid"
)

// reminderWindow is the inclusive lead time before a shift start during which
// the reminder fires. The job runs every 15 minutes, so the window matches
// the tick interval.
const reminderWindow = 15 * time.Minute

const shopConfigTTL = 10 * time.Minute

// ShiftReminderService sends "shift starting soon" pushes to active employees
// shortly before their shop opens.
type ShiftReminderService struct {
	shopRepo     repositories.ShopRepository
	employeeRepo repositories.EmployeeRepository
	pushSvc      services.PushService
	cacheSvc     caching.CacheService
	now          func() time.Time
}

func NewShiftReminderService(
	shopRepo repositories.ShopRepository,
	employeeRepo repositories.EmployeeRepository,
	pushSvc services.PushService,
	cacheSvc caching.CacheService,
) *ShiftReminderService {
	return &ShiftReminderService{
		shopRepo:     shopRepo,
		employeeRepo: employeeRepo,
		pushSvc:      pushSvc,
		cacheSvc:     cacheSvc,
		now:          time.Now,
	}
}

// RunTick processes every shop once. Shops are independent: a failure in one
// is logged and never aborts the rest of the batch.
func (s *ShiftReminderService) RunTick(ctx context.Context) error {
	shops, err := s.shopRepo.List(ctx, 1000, 0)
	if err != nil {
		return fmt.Errorf("failed to list shops for shift reminders: %v", err)
	}

	forEachShop(ctx, shops, "shift-reminder", s.processShop)
	return nil
}

func (s *ShiftReminderService) processShop(ctx context.Context, shopID uuid.UUID) error {
	shop, err := getShopConfig(ctx, s.cacheSvc, s.shopRepo, shopID)
	if err != nil {
		return err
	}

	if !shop.EnableEmployeeReminders {
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

	// Inclusive [0, 15] minute window before shift start.
	remaining := start.Sub(now)
	if remaining < 0 || remaining > reminderWindow {
		return nil
	}

	employees, err := s.employeeRepo.ListActive(ctx, shopID)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %v", err)
	}

	for _, employee := range employees {
		if employee.FCMToken == nil || *employee.FCMToken == "" {
			continue
		}
		body := fmt.Sprintf("Hi %s, your shift at %s starts at %s.", employee.Name, shop.ShopName, hours.StartTime)
		if err := s.pushSvc.SendToToken(ctx, *employee.FCMToken, "Shift starting soon", body, map[string]string{
			"type":    "shift_reminder",
			"shop_id": shopID.String(),
		}); err != nil {
			log.Printf("Failed to send shift reminder to employee %s: %v", employee.ID.String(), err)
		}
	}
	return nil
}

// getShopConfig reads a shop through the shared cache. Both periodic jobs hit
// the same per-shop config, so one read can serve several ticks.
func getShopConfig(ctx context.Context, cacheSvc caching.CacheService, shopRepo repositories.ShopRepository, shopID uuid.UUID) (*models.Shop, error) {
	cached, err := cacheSvc.GetShop(ctx, shopID)
	if err != nil {
		log.Printf("Shop config cache read failed for %s: %v", shopID.String(), err)
	}
	if cached != nil {
		return cached, nil
	}

	shop, err := shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop config: %v", err)
	}

	if err := cacheSvc.SetShop(ctx, shop, shopConfigTTL); err != nil {
		log.Printf("Shop config cache write failed for %s: %v", shopID.String(), err)
	}
	return shop, nil
}
