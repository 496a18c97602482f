package background

import (
	"context"
	"log"
	"sync"
	"time"

	"saledup/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the periodic notification jobs.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	reminderSvc *jobs.ShiftReminderService
	lateSvc     *jobs.LateAlertService
	jobJobs     map[string]gocron.Job
	mu          sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(reminderSvc *jobs.ShiftReminderService, lateSvc *jobs.LateAlertService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		reminderSvc: reminderSvc,
		lateSvc:     lateSvc,
		jobJobs:     make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs. Singleton mode skips a tick
// while the previous run of the same job is still active.
func (js *JobScheduler) registerJobs() {
	reminderJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.runShiftReminders, context.Background()),
		gocron.WithName("shift-start-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create shift reminder job: %v", err)
	} else {
		js.jobJobs["shift-start-reminders"] = reminderJob
	}

	lateJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.runLateAlerts, context.Background()),
		gocron.WithName("late-arrival-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create late alert job: %v", err)
	} else {
		js.jobJobs["late-arrival-alerts"] = lateJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

func (js *JobScheduler) runShiftReminders(ctx context.Context) error {
	log.Printf("Starting shift reminder run")
	if err := js.reminderSvc.RunTick(ctx); err != nil {
		log.Printf("Shift reminder run failed: %v", err)
		return err
	}
	log.Printf("Completed shift reminder run")
	return nil
}

func (js *JobScheduler) runLateAlerts(ctx context.Context) error {
	log.Printf("Starting late alert run")
	if err := js.lateSvc.RunTick(ctx); err != nil {
		log.Printf("Late alert run failed: %v", err)
		return err
	}
	log.Printf("Completed late alert run")
	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobJobs)
	jobNames := make([]string, 0, len(js.jobJobs))

	for name := range js.jobJobs {
		jobNames = append(jobNames, name)
	}

	status["jobs"] = jobNames

	return status
}
