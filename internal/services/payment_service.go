package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"saledup/internal/repositories"

	"github.com/google/uuid"
)

// PaymentErrorKind is the closed set of failure kinds the payment endpoint
// reports. Clients branch on the kind, so precondition violations never
// surface as generic errors.
type PaymentErrorKind string

const (
	PaymentErrUnauthenticated  PaymentErrorKind = "unauthenticated"
	PaymentErrInvalidArgument  PaymentErrorKind = "invalid-argument"
	PaymentErrPermissionDenied PaymentErrorKind = "permission-denied"
	PaymentErrInternal         PaymentErrorKind = "internal"
)

type PaymentError struct {
	Kind    PaymentErrorKind
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func paymentError(kind PaymentErrorKind, message string) *PaymentError {
	return &PaymentError{Kind: kind, Message: message}
}

// PaymentVerification is the payload of a Razorpay checkout callback.
type PaymentVerification struct {
	RazorpayPaymentID      string `json:"razorpay_payment_id"`
	RazorpaySubscriptionID string `json:"razorpay_subscription_id"`
	RazorpaySignature      string `json:"razorpay_signature"`
	ShopID                 string `json:"shop_id"`
	PlanName               string `json:"plan_name"`
}

type PaymentService interface {
	// VerifyAndActivate validates the Razorpay signature and, only on
	// success, activates the requested plan on the caller's subscription.
	VerifyAndActivate(ctx context.Context, callerShopID uuid.UUID, req *PaymentVerification) (string, error)
}

type paymentService struct {
	subscriptionRepo repositories.SubscriptionRepository
	keySecret        string
}

func NewPaymentService(subscriptionRepo repositories.SubscriptionRepository, keySecret string) PaymentService {
	return &paymentService{
		subscriptionRepo: subscriptionRepo,
		keySecret:        keySecret,
	}
}

func (s *paymentService) VerifyAndActivate(ctx context.Context, callerShopID uuid.UUID, req *PaymentVerification) (string, error) {
	if callerShopID == uuid.Nil {
		return "", paymentError(PaymentErrUnauthenticated, "caller is not authenticated")
	}

	if req == nil || req.RazorpayPaymentID == "" || req.RazorpaySubscriptionID == "" ||
		req.RazorpaySignature == "" || req.ShopID == "" || req.PlanName == "" {
		return "", paymentError(PaymentErrInvalidArgument, "all payment verification fields are required")
	}

	// Tenants may only update their own subscription.
	if callerShopID.String() != req.ShopID {
		return "", paymentError(PaymentErrPermissionDenied, "caller may not update another shop's subscription")
	}

	if s.keySecret == "" {
		return "", paymentError(PaymentErrInternal, "payment key secret is not configured")
	}

	// Razorpay signs "payment_id|subscription_id" with the key secret. The
	// same construction must be recomputed here to stay compatible with the
	// provider's signing scheme. A mismatch is reported as unauthenticated,
	// same as a missing caller, so the response does not reveal which check
	// failed.
	expected := signPayment(req.RazorpayPaymentID, req.RazorpaySubscriptionID, s.keySecret)
	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		return "", paymentError(PaymentErrUnauthenticated, "payment signature verification failed")
	}

	if err := s.subscriptionRepo.ActivatePlan(ctx, callerShopID, req.PlanName,
		req.RazorpayPaymentID, req.RazorpaySubscriptionID); err != nil {
		return "", paymentError(PaymentErrInternal, fmt.Sprintf("failed to update subscription: %v", err))
	}

	return fmt.Sprintf("Payment verified. Your %s plan is now active.", req.PlanName), nil
}

func signPayment(paymentID, subscriptionID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(paymentID + "|" + subscriptionID))
	return hex.EncodeToString(mac.Sum(nil))
}
