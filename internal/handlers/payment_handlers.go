package handlers

import (
	"errors"
	"net/http"

	"saledup/internal/middleware"
	"saledup/internal/services"

	"github.com/labstack/echo/v4"
)

// PaymentHandlers handles Razorpay payment verification callbacks.
type PaymentHandlers struct {
	paymentService services.PaymentService
}

func NewPaymentHandlers(paymentService services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentService: paymentService}
}

// VerifyPayment handles POST /payments/verify
func (h *PaymentHandlers) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	var req services.PaymentVerification
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	message, err := h.paymentService.VerifyAndActivate(ctx, shopID, &req)
	if err != nil {
		var paymentErr *services.PaymentError
		if errors.As(err, &paymentErr) {
			return c.JSON(paymentStatusCode(paymentErr.Kind), map[string]interface{}{
				"success": false,
				"code":    string(paymentErr.Kind),
				"message": paymentErr.Message,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func paymentStatusCode(kind services.PaymentErrorKind) int {
	switch kind {
	case services.PaymentErrUnauthenticated:
		return http.StatusUnauthorized
	case services.PaymentErrInvalidArgument:
		return http.StatusBadRequest
	case services.PaymentErrPermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
