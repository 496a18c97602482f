package handlers

import (
	"errors"
	"net/http"

	"saledup/internal/middleware"
	"saledup/internal/repositories"
	"saledup/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// SubscriptionHandlers exposes the plan catalog and a shop's current
// subscription state.
type SubscriptionHandlers struct {
	entitlementService services.EntitlementService
	subscriptionRepo   repositories.SubscriptionRepository
}

func NewSubscriptionHandlers(entitlementService services.EntitlementService, subscriptionRepo repositories.SubscriptionRepository) *SubscriptionHandlers {
	return &SubscriptionHandlers{
		entitlementService: entitlementService,
		subscriptionRepo:   subscriptionRepo,
	}
}

// ListPlans handles GET /plans
func (h *SubscriptionHandlers) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"plans": services.AvailablePlans(),
	})
}

// GetCurrent handles GET /subscription
func (h *SubscriptionHandlers) GetCurrent(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	plan := h.entitlementService.EffectivePlan(ctx, shopID)

	// A shop with no subscription row is still on the trial plan, so report
	// the effective plan with a null subscription rather than an error.
	subscription, err := h.subscriptionRepo.GetByShop(ctx, shopID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"subscription":   subscription,
		"effective_plan": plan,
	})
}
