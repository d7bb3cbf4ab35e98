package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/handlers"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/ternarybob/storyteller/internal/services/compliance"
	"github.com/ternarybob/storyteller/internal/services/render"
	"github.com/ternarybob/storyteller/internal/services/storyteller"
	"github.com/ternarybob/storyteller/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	Clock          common.Clock
	StorageManager interfaces.StorageManager

	// Services
	StorytellerService *storyteller.Service
	RenderService      *render.Service
	Scheduler          *storyteller.Scheduler // nil when processing is disabled

	// HTTP handlers
	APIHandler        *handlers.APIHandler
	EventHandler      *handlers.EventHandler
	ComplianceHandler *handlers.ComplianceHandler
	NarrativeHandler  *handlers.NarrativeHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	return NewWithClock(cfg, logger, common.SystemClock{})
}

// NewWithClock initializes the application with an explicit clock
func NewWithClock(cfg *common.Config, logger arbor.ILogger, clock common.Clock) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		Clock:  clock,
	}

	// Initialize database
	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize services
	if err := app.initServices(); err != nil {
		app.StorageManager.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Initialize handlers
	app.initHandlers()

	logger.Info().
		Bool("processing_enabled", cfg.Processing.Enabled).
		Int("concurrency", cfg.Processing.Concurrency).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger) and loads seed data
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Bool("in_memory", a.Config.Storage.Badger.InMemory).
		Msg("Storage layer initialized")

	var defaultRules []models.ComplianceRule
	if a.Config.Seed.DefaultRules {
		defaultRules = compliance.DefaultRules()
	}

	if err := a.StorageManager.LoadSeedData(context.Background(), a.Config.Seed.Dir, defaultRules); err != nil {
		// Log warning but don't fail startup (consistent with other loaders)
		a.Logger.Warn().Err(err).Msg("Failed to load seed data")
	}

	return nil
}

// initServices initializes business services in dependency order
func (a *App) initServices() error {
	a.StorytellerService = storyteller.NewService(a.StorageManager, a.Clock, a.Logger, a.Config.Processing.Concurrency)
	a.RenderService = render.NewService(a.Logger)

	if !a.Config.Processing.Enabled {
		a.Logger.Debug().Msg("Scheduled processing disabled")
		return nil
	}

	scheduler, err := storyteller.NewScheduler(a.StorytellerService, a.Config.Processing, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	a.Scheduler = scheduler

	return nil
}

// initHandlers creates the HTTP handlers
func (a *App) initHandlers() {
	var schedulerStatus handlers.SchedulerStatus
	if a.Scheduler != nil {
		schedulerStatus = a.Scheduler
	}

	a.APIHandler = handlers.NewAPIHandler(schedulerStatus)
	a.EventHandler = handlers.NewEventHandler(a.StorageManager, a.Clock, a.Logger)
	a.ComplianceHandler = handlers.NewComplianceHandler(a.StorageManager, a.Logger)
	a.NarrativeHandler = handlers.NewNarrativeHandler(a.StorytellerService, a.RenderService, a.StorageManager, a.Clock, a.Logger)
}

// Close stops background work and closes storage
func (a *App) Close() error {
	// Stop scheduler service
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	// Close storage
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
