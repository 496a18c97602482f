package handlers

import (
	"net/http"

	"saledup/internal/jobs"
	"saledup/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

// JobHandlers exposes the background notification jobs for manual runs and
// status inspection.
type JobHandlers struct {
	reminderSvc *jobs.ShiftReminderService
	lateSvc     *jobs.LateAlertService
	scheduler   *background.JobScheduler
}

func NewJobHandlers(reminderSvc *jobs.ShiftReminderService, lateSvc *jobs.LateAlertService, scheduler *background.JobScheduler) *JobHandlers {
	return &JobHandlers{
		reminderSvc: reminderSvc,
		lateSvc:     lateSvc,
		scheduler:   scheduler,
	}
}

// RunShiftReminders handles POST /jobs/shift-reminders/run
func (h *JobHandlers) RunShiftReminders(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.reminderSvc.RunTick(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Shift reminder run completed"})
}

// RunLateAlerts handles POST /jobs/late-alerts/run
func (h *JobHandlers) RunLateAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.lateSvc.RunTick(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Late alert run completed"})
}

// GetStatus handles GET /jobs/status
func (h *JobHandlers) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}
