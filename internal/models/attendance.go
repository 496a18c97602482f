package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance status classifications. Records are created by a scan event and
// never mutated afterwards except to add a checkout time.
const (
	AttendanceStatusOnTime = "on-time"
	AttendanceStatusLate   = "late"
	AttendanceStatusManual = "manual"
	AttendanceStatusAbsent = "absent"
)

type AttendanceRecord struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	ShopID     uuid.UUID  `json:"shop_id" db:"shop_id"`
	EmployeeID uuid.UUID  `json:"employee_id" db:"employee_id"`
	CheckIn    time.Time  `json:"check_in" db:"check_in"`
	CheckOut   *time.Time `json:"check_out" db:"check_out"`
	Status     string     `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
