package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/nbasharp/nba-sharp-go/internal/config"
)

// Scheduler runs the full pipeline on a cron schedule in the slate
// timezone. The default spec fires at noon Eastern, after the league's
// overnight stat updates settle.
type Scheduler struct {
	cron     *cron.Cron
	pipeline *PipelineService
	spec     string
	logger   *logrus.Logger

	mu        sync.RWMutex
	entryID   cron.EntryID
	lastRun   time.Time
	lastError string
}

// SchedulerStatus is the admin API view of the scheduler.
type SchedulerStatus struct {
	Running   bool      `json:"running"`
	Spec      string    `json:"spec"`
	NextRun   time.Time `json:"next_run,omitempty"`
	LastRun   time.Time `json:"last_run,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// NewScheduler creates the pipeline scheduler.
func NewScheduler(cfg config.SchedulerConfig, pipeline *PipelineService, logger *logrus.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Timezone, err)
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		pipeline: pipeline,
		spec:     cfg.CronSpec,
		logger:   logger,
	}, nil
}

// Start registers the pipeline job and starts the cron loop.
func (s *Scheduler) Start() error {
	id, err := s.cron.AddFunc(s.spec, s.runPipeline)
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.spec, err)
	}
	s.mu.Lock()
	s.entryID = id
	s.mu.Unlock()

	s.cron.Start()
	s.logger.WithField("spec", s.spec).Info("Pipeline scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Pipeline scheduler stopped")
}

func (s *Scheduler) runPipeline() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	_, err := s.pipeline.RunFull(ctx)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.WithError(err).Error("Scheduled pipeline run failed")
	}
}

// Status reports the scheduler state for the admin API.
func (s *Scheduler) Status() SchedulerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := SchedulerStatus{
		Spec:      s.spec,
		LastRun:   s.lastRun,
		LastError: s.lastError,
	}
	entry := s.cron.Entry(s.entryID)
	if entry.ID != 0 {
		status.Running = true
		status.NextRun = entry.Next
	}
	return status
}
