package models

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a QR-code marketing offer published by a shop. The QR image itself
// is generated client-side; the backend only tracks the offer and its scans.
type Offer struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ShopID      uuid.UUID  `json:"shop_id" db:"shop_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	DiscountPct int        `json:"discount_pct" db:"discount_pct"`
	ValidFrom   time.Time  `json:"valid_from" db:"valid_from"`
	ValidUntil  *time.Time `json:"valid_until" db:"valid_until"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	ScanCount   int        `json:"scan_count" db:"scan_count"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
