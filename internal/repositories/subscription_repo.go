package repositories

import (
	"context"

	"saledup/internal/models"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	GetByShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error)
	// ActivatePlan records a verified payment against the shop's subscription
	// in a single update: plan, payment id, subscription id, status active.
	ActivatePlan(ctx context.Context, shopID uuid.UUID, planName, paymentID, subscriptionID string) error
}

type subscriptionRepo struct {
	db Database
}

func NewSubscriptionRepo(db Database) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, shop_id, plan_name, razorpay_payment_id, razorpay_subscription_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, subscription.ID, subscription.ShopID, subscription.PlanName,
		subscription.RazorpayPaymentID, subscription.RazorpaySubscriptionID, subscription.Status)
	return err
}

func (r *subscriptionRepo) GetByShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error) {
	subscription := &models.Subscription{}
	query := `
		SELECT id, shop_id, plan_name, razorpay_payment_id, razorpay_subscription_id, status, created_at, updated_at
		FROM subscriptions
		WHERE shop_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, shopID).Scan(&subscription.ID, &subscription.ShopID,
		&subscription.PlanName, &subscription.RazorpayPaymentID, &subscription.RazorpaySubscriptionID,
		&subscription.Status, &subscription.CreatedAt, &subscription.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (r *subscriptionRepo) ActivatePlan(ctx context.Context, shopID uuid.UUID, planName, paymentID, subscriptionID string) error {
	query := `
		UPDATE subscriptions
		SET plan_name = $1, razorpay_payment_id = $2, razorpay_subscription_id = $3, status = $4, updated_at = NOW()
		WHERE shop_id = $5
	`
	_, err := r.db.Exec(ctx, query, planName, paymentID, subscriptionID, models.SubscriptionStatusActive, shopID)
	return err
}
