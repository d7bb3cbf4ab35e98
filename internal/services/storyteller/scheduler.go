package storyteller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/models"
)

// runTimeout bounds a single scheduled narration run
const runTimeout = 5 * time.Minute

// Scheduler periodically narrates events that have no narrative yet
type Scheduler struct {
	service       *Service
	cron          *cron.Cron
	logger        arbor.ILogger
	schedule      string
	narrativeType models.NarrativeType
	mu            sync.Mutex // Protects isProcessing and running
	isProcessing  bool
	running       bool
	lastRun       *time.Time
	lastError     string
}

// NewScheduler creates a scheduler from the processing configuration
func NewScheduler(service *Service, config common.ProcessingConfig, logger arbor.ILogger) (*Scheduler, error) {
	narrativeType, err := ParseNarrativeType(config.NarrativeType)
	if err != nil {
		return nil, fmt.Errorf("processing narrative type: %w", err)
	}

	return &Scheduler{
		service:       service,
		cron:          cron.New(),
		logger:        logger,
		schedule:      config.Schedule,
		narrativeType: narrativeType,
	}, nil
}

// Start registers the narration job and starts the cron runner
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runScheduledTask); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("cron_expr", s.schedule).
		Str("narrative_type", string(s.narrativeType)).
		Msg("Scheduler started")

	return nil
}

// Stop halts the cron runner and waits for a run in progress to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) runScheduledTask() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Scheduled narration failed")
	}
}

// RunOnce narrates pending events now. A run already in progress makes
// this call a no-op returning zero.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.isProcessing {
		s.mu.Unlock()
		s.logger.Debug().Msg("Narration run already in progress, skipping")
		return 0, nil
	}
	s.isProcessing = true
	s.mu.Unlock()

	generated, err := s.service.NarratePending(ctx, s.narrativeType)

	s.mu.Lock()
	now := s.service.clock.Now()
	s.lastRun = &now
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.isProcessing = false
	s.mu.Unlock()

	return generated, err
}

// Status reports the last run for the health endpoint
type Status struct {
	Running   bool       `json:"running"`
	Schedule  string     `json:"schedule"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// Status returns a snapshot of the scheduler state
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Running:   s.running,
		Schedule:  s.schedule,
		LastRun:   s.lastRun,
		LastError: s.lastError,
	}
}
