package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"saledup/internal/caching"
	"saledup/internal/middleware"
	"saledup/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Scan rate limit per client IP. The scan route is public, so this is the
// only guard against a bot hammering a printed QR code.
const (
	scanRateLimit  = 30
	scanRateWindow = time.Minute
)

// OfferHandlers handles QR offer management and public scan recording.
type OfferHandlers struct {
	offerService services.OfferService
	cacheSvc     caching.CacheService
}

func NewOfferHandlers(offerService services.OfferService, cacheSvc caching.CacheService) *OfferHandlers {
	return &OfferHandlers{offerService: offerService, cacheSvc: cacheSvc}
}

// Create handles POST /offers
func (h *OfferHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	var req services.CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	offer, err := h.offerService.Create(ctx, shopID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, offer)
}

// Get handles GET /offers/:id
func (h *OfferHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid offer id")
	}

	offer, err := h.offerService.GetByID(ctx, shopID, offerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Offer not found")
	}

	return c.JSON(http.StatusOK, offer)
}

// Update handles PUT /offers/:id
func (h *OfferHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid offer id")
	}

	offer, err := h.offerService.GetByID(ctx, shopID, offerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Offer not found")
	}

	if err := c.Bind(offer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	offer.ID = offerID
	offer.ShopID = shopID

	if err := h.offerService.Update(ctx, offer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, offer)
}

// Delete handles DELETE /offers/:id
func (h *OfferHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid offer id")
	}

	if err := h.offerService.Delete(ctx, shopID, offerID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Offer deleted"})
}

// List handles GET /offers
func (h *OfferHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	limit := 50
	offset := 0
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	offers, err := h.offerService.List(ctx, shopID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"offers": offers,
		"limit":  limit,
		"offset": offset,
	})
}

// RecordScan handles POST /scan/:shopID/:offerID. Customers hit this route
// from the printed QR code, so it is unauthenticated.
func (h *OfferHandlers) RecordScan(c echo.Context) error {
	ctx := c.Request().Context()

	limited, err := h.cacheSvc.IsRateLimited(ctx, "scan:"+c.RealIP(), scanRateLimit, scanRateWindow)
	if err != nil {
		// Fail open: a cache outage should not take the scan route down.
		log.Printf("Rate limit check failed for %s: %v", c.RealIP(), err)
	} else if limited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many scans, try again later")
	}

	shopID, err := uuid.Parse(c.Param("shopID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid shop id")
	}
	offerID, err := uuid.Parse(c.Param("offerID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid offer id")
	}

	offer, err := h.offerService.RecordScan(ctx, shopID, offerID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusGone, err.Error())
	}

	return c.JSON(http.StatusOK, offer)
}
