package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses.
const (
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
)

type Subscription struct {
	ID                     uuid.UUID `json:"id" db:"id"`
	ShopID                 uuid.UUID `json:"shop_id" db:"shop_id"`
	PlanName               string    `json:"plan_name" db:"plan_name"`
	RazorpayPaymentID      *string   `json:"razorpay_payment_id" db:"razorpay_payment_id"`
	RazorpaySubscriptionID *string   `json:"razorpay_subscription_id" db:"razorpay_subscription_id"`
	Status                 string    `json:"status" db:"status"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}
