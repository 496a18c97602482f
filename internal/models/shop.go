package models

import (
	"time"

	"github.com/google/uuid"
)

// DayHours is a single weekday entry in a shop's business-hours table.
type DayHours struct {
	IsOpen    bool   `json:"is_open"`
	StartTime string `json:"start_time"` // "HH:mm"
	EndTime   string `json:"end_time"`   // "HH:mm"
}

// BusinessHours maps lowercase English weekday names ("monday"..."sunday")
// to opening hours. A missing weekday is treated as closed.
type BusinessHours map[string]DayHours

type Shop struct {
	ID                      uuid.UUID     `json:"id" db:"id"`
	OwnerName               string        `json:"owner_name" db:"owner_name"`
	ShopName                string        `json:"shop_name" db:"shop_name"`
	BusinessType            string        `json:"business_type" db:"business_type"`
	AdminFCMToken           *string       `json:"admin_fcm_token" db:"admin_fcm_token"`
	EnableEmployeeReminders bool          `json:"enable_employee_reminders" db:"enable_employee_reminders"`
	EnableLateAlerts        bool          `json:"enable_late_alerts" db:"enable_late_alerts"`
	DedupeLateAlerts        bool          `json:"dedupe_late_alerts" db:"dedupe_late_alerts"`
	LateGracePeriodMinutes  int           `json:"late_grace_period_minutes" db:"late_grace_period_minutes"`
	BusinessHours           BusinessHours `json:"business_hours" db:"business_hours"`
	CreatedAt               time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at" db:"updated_at"`
}

// HoursFor returns the business-hours entry for a weekday, matching the
// lowercase key convention used by the stored schedule.
func (s *Shop) HoursFor(weekday time.Weekday) (DayHours, bool) {
	if s.BusinessHours == nil {
		return DayHours{}, false
	}
	hours, ok := s.BusinessHours[weekdayKey(weekday)]
	return hours, ok
}

var weekdayKeys = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func weekdayKey(d time.Weekday) string {
	return weekdayKeys[int(d)%7]
}
