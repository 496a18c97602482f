package handlers

import (
	"errors"
	"net/http"
	"time"

	"saledup/internal/middleware"
	"saledup/internal/models"
	"saledup/internal/services"

	"github.com/labstack/echo/v4"
)

// AdvisorHandlers exposes the staffing advisor and the weekly briefing.
// Both are gated behind the AI tools feature.
type AdvisorHandlers struct {
	entitlements      services.EntitlementService
	employeeService   services.EmployeeService
	attendanceService services.AttendanceService
}

func NewAdvisorHandlers(
	entitlements services.EntitlementService,
	employeeService services.EmployeeService,
	attendanceService services.AttendanceService,
) *AdvisorHandlers {
	return &AdvisorHandlers{
		entitlements:      entitlements,
		employeeService:   employeeService,
		attendanceService: attendanceService,
	}
}

// GetStaffingAdvice handles POST /advisor/staffing
func (h *AdvisorHandlers) GetStaffingAdvice(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	if err := h.entitlements.RequireFeature(ctx, shopID, models.FeatureAITools); err != nil {
		if errors.Is(err, services.ErrFeatureLocked) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req struct {
		BusinessType      string  `json:"business_type"`
		MonthlyTurnover   float64 `json:"monthly_turnover"`
		YearlyTurnover    float64 `json:"yearly_turnover"`
		CurrentStaffCount int     `json:"current_staff_count"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	advice := services.ComputeStaffingAdvice(req.BusinessType, req.MonthlyTurnover, req.YearlyTurnover, req.CurrentStaffCount)
	return c.JSON(http.StatusOK, advice)
}

// GetWeeklyBriefing handles GET /advisor/briefing
func (h *AdvisorHandlers) GetWeeklyBriefing(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	if err := h.entitlements.RequireFeature(ctx, shopID, models.FeatureAITools); err != nil {
		if errors.Is(err, services.ErrFeatureLocked) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	employees, err := h.employeeService.List(ctx, shopID, 1000, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	records, err := h.attendanceService.ListWeek(ctx, shopID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	briefing := services.GenerateWeeklyBriefing(employees, records)
	return c.JSON(http.StatusOK, map[string]string{
		"briefing": briefing,
	})
}
