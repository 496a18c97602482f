package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"saledup/internal/middleware"
	"saledup/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EmployeeHandlers handles HTTP requests for employees
type EmployeeHandlers struct {
	employeeService services.EmployeeService
}

func NewEmployeeHandlers(employeeService services.EmployeeService) *EmployeeHandlers {
	return &EmployeeHandlers{employeeService: employeeService}
}

func (h *EmployeeHandlers) validateUUID(idStr string) (uuid.UUID, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid UUID format")
	}
	return id, nil
}

// Create handles POST /employees
func (h *EmployeeHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	var req services.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Employee name is required")
	}

	employee, err := h.employeeService.Create(ctx, shopID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeLimitReached) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Employee created successfully",
		"employee": employee,
	})
}

// List handles GET /employees
func (h *EmployeeHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	limit := 50
	offset := 0

	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}

	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}

	employees, err := h.employeeService.List(ctx, shopID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"employees": employees,
		"limit":     limit,
		"offset":    offset,
	})
}

// Get handles GET /employees/:id
func (h *EmployeeHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	employeeID, err := h.validateUUID(c.Param("id"))
	if err != nil {
		return err
	}

	employee, err := h.employeeService.GetByID(ctx, shopID, employeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Employee not found")
	}

	return c.JSON(http.StatusOK, employee)
}

// Update handles PUT /employees/:id
func (h *EmployeeHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	employeeID, err := h.validateUUID(c.Param("id"))
	if err != nil {
		return err
	}

	employee, err := h.employeeService.GetByID(ctx, shopID, employeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Employee not found")
	}

	var req struct {
		Name   *string `json:"name"`
		Role   *string `json:"role"`
		Status *string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.Status != nil {
		employee.Status = *req.Status
	}

	if err := h.employeeService.Update(ctx, employee); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Employee updated successfully",
		"employee": employee,
	})
}

// Delete handles DELETE /employees/:id
func (h *EmployeeHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	employeeID, err := h.validateUUID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.employeeService.Delete(ctx, shopID, employeeID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Employee deleted successfully",
	})
}

// RegisterDeviceToken handles PUT /employees/:id/device-token
func (h *EmployeeHandlers) RegisterDeviceToken(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	employeeID, err := h.validateUUID(c.Param("id"))
	if err != nil {
		return err
	}

	var req struct {
		FCMToken string `json:"fcm_token"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.FCMToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Device token is required")
	}

	if err := h.employeeService.RegisterDeviceToken(ctx, shopID, employeeID, req.FCMToken); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Device token registered",
	})
}
