package handlers

import (
	"errors"
	"net/http"
	"time"

	"saledup/internal/middleware"
	"saledup/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandlers handles attendance report exports.
type ReportHandlers struct {
	reportService services.ReportService
}

func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// ExportAttendance handles POST /reports/attendance. The export lands in
// object storage and the response carries a presigned download link.
func (h *ReportHandlers) ExportAttendance(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, ok := middleware.GetShopIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Shop not found")
	}

	var req struct {
		From *time.Time `json:"from"`
		To   *time.Time `json:"to"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	to := time.Now()
	if req.To != nil {
		to = *req.To
	}
	from := to.AddDate(0, -1, 0)
	if req.From != nil {
		from = *req.From
	}

	url, err := h.reportService.ExportAttendanceCSV(ctx, shopID, from, to)
	if err != nil {
		if errors.Is(err, services.ErrFeatureLocked) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"download_url": url,
	})
}
