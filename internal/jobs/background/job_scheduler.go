package background

import (
	"context"
	"log"
	"sync"
	"time"

	"buildstock/internal/models"
	"buildstock/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const defaultSweepInterval = 30 * time.Minute

// JobScheduler runs the recurring shortage sweep. Singleton mode keeps a
// long-running sweep from overlapping with the next tick.
type JobScheduler struct {
	scheduler     gocron.Scheduler
	alertService  services.AlertService
	sweepInterval time.Duration
	jobs          map[string]gocron.Job
	mu            sync.RWMutex
}

func NewJobScheduler(alertService services.AlertService, sweepInterval time.Duration) *JobScheduler {
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:     scheduler,
		alertService:  alertService,
		sweepInterval: sweepInterval,
		jobs:          make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler (sweep every %s)", js.sweepInterval)
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	sweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.sweepInterval),
		gocron.NewTask(js.runShortageSweep, context.Background()),
		gocron.WithName("shortage-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create shortage sweep job: %v", err)
		return
	}

	js.mu.Lock()
	js.jobs["shortage-sweep"] = sweepJob
	js.mu.Unlock()
}

func (js *JobScheduler) runShortageSweep(ctx context.Context) {
	started := time.Now()
	result, err := js.alertService.RunSweep(ctx)
	if err != nil {
		log.Printf("Scheduled shortage sweep failed: %v", err)
		return
	}

	if result.Status == models.StatusAllSufficient {
		log.Printf("Scheduled shortage sweep completed in %s: all stock sufficient", time.Since(started).Round(time.Millisecond))
		return
	}
	log.Printf("Scheduled shortage sweep completed in %s: %d shortages, %d alerts, %d errors",
		time.Since(started).Round(time.Millisecond), result.ShortageCount, len(result.Alerts), len(result.Errors))
}
