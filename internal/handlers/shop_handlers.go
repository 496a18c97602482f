package handlers

import (
	"errors"
	"net/http"

	"saledup/internal/middleware"
	"saledup/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ShopHandlers handles shop registration, settings, and branch management.
type ShopHandlers struct {
	shopService services.ShopService
}

func NewShopHandlers(shopService services.ShopService) *ShopHandlers {
	return &ShopHandlers{shopService: shopService}
}

// Create handles POST /shops
func (h *ShopHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	shop, err := h.shopService.Create(ctx, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, shop)
}

// Get handles GET /shop
func (h *ShopHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	shop, err := h.shopService.GetByID(ctx, shopID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Shop not found")
	}

	return c.JSON(http.StatusOK, shop)
}

// Update handles PUT /shop
func (h *ShopHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	shop, err := h.shopService.GetByID(ctx, shopID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Shop not found")
	}

	if err := c.Bind(shop); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	shop.ID = shopID

	if err := h.shopService.Update(ctx, shop); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, shop)
}

// CreateBranch handles POST /branches
func (h *ShopHandlers) CreateBranch(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	var req struct {
		Name    string  `json:"name"`
		Address *string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	branch, err := h.shopService.CreateBranch(ctx, shopID, req.Name, req.Address)
	if err != nil {
		if errors.Is(err, services.ErrBranchLimitReached) || errors.Is(err, services.ErrFeatureLocked) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, branch)
}

// ListBranches handles GET /branches
func (h *ShopHandlers) ListBranches(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	branches, err := h.shopService.ListBranches(ctx, shopID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"branches": branches,
	})
}

// DeleteBranch handles DELETE /branches/:id
func (h *ShopHandlers) DeleteBranch(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid branch id")
	}

	if err := h.shopService.DeleteBranch(ctx, shopID, branchID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Branch deleted"})
}
