package handlers

import (
	"net/http"
	"time"

	"saledup/internal/middleware"
	"saledup/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AttendanceHandlers handles QR scan check-in and check-out events.
type AttendanceHandlers struct {
	attendanceService services.AttendanceService
}

func NewAttendanceHandlers(attendanceService services.AttendanceService) *AttendanceHandlers {
	return &AttendanceHandlers{attendanceService: attendanceService}
}

// CheckIn handles POST /attendance/check-in
func (h *AttendanceHandlers) CheckIn(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	var req struct {
		EmployeeID string `json:"employee_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid employee id")
	}

	record, err := h.attendanceService.CheckIn(ctx, shopID, employeeID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Checked in",
		"record":  record,
	})
}

// CheckOut handles POST /attendance/check-out
func (h *AttendanceHandlers) CheckOut(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	var req struct {
		EmployeeID string `json:"employee_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid employee id")
	}

	record, err := h.attendanceService.CheckOut(ctx, shopID, employeeID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Checked out",
		"record":  record,
	})
}

// ListWeek handles GET /attendance/week
func (h *AttendanceHandlers) ListWeek(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	records, err := h.attendanceService.ListWeek(ctx, shopID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"records": records,
	})
}
