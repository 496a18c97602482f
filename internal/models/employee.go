package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee statuses as stored in the database.
const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
	EmployeeStatusPending  = "Pending"
)

type Employee struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ShopID    uuid.UUID `json:"shop_id" db:"shop_id"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	Status    string    `json:"status" db:"status"`
	JoinDate  time.Time `json:"join_date" db:"join_date"`
	FCMToken  *string   `json:"fcm_token" db:"fcm_token"`
	Points    int       `json:"points" db:"points"`
	Streak    int       `json:"streak" db:"streak"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
