package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/storyteller/internal/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist
var ErrNotFound = errors.New("not found")

// EventStorage - interface for market event persistence
type EventStorage interface {
	SaveEvent(ctx context.Context, event *models.MarketEvent) error
	GetEvent(ctx context.Context, id string) (*models.MarketEvent, error)
	ListEvents(ctx context.Context) ([]*models.MarketEvent, error) // Newest event date first
	ListEventsByTicker(ctx context.Context, ticker string) ([]*models.MarketEvent, error)
	CountEvents(ctx context.Context) (int, error)
}

// RuleStorage - interface for compliance rule persistence
type RuleStorage interface {
	SaveRule(ctx context.Context, rule *models.ComplianceRule) error
	GetRule(ctx context.Context, id string) (*models.ComplianceRule, error)
	ListRules(ctx context.Context) ([]models.ComplianceRule, error)       // Evaluation order
	ListActiveRules(ctx context.Context) ([]models.ComplianceRule, error) // Evaluation order, IsActive only
	CountRules(ctx context.Context) (int, error)
}

// ClientStorage - interface for client profile persistence
type ClientStorage interface {
	SaveClient(ctx context.Context, client *models.ClientProfile) error
	GetClient(ctx context.Context, id string) (*models.ClientProfile, error)
	ListClients(ctx context.Context) ([]*models.ClientProfile, error)
	CountClients(ctx context.Context) (int, error)
}

// NarrativeStorage - interface for generated narrative persistence
type NarrativeStorage interface {
	SaveNarrative(ctx context.Context, narrative *models.GeneratedNarrative) error
	GetNarrative(ctx context.Context, id string) (*models.GeneratedNarrative, error)
	ListNarratives(ctx context.Context) ([]*models.GeneratedNarrative, error) // Newest first
	ListNarrativesByEvent(ctx context.Context, eventID string) ([]*models.GeneratedNarrative, error)
	CountNarrativesByEvent(ctx context.Context, eventID string) (int, error)
}

// AuditStorage - interface for compliance audit log persistence
type AuditStorage interface {
	SaveAuditEntries(ctx context.Context, entries []*models.AuditLogEntry) error
	ListAuditEntries(ctx context.Context, narrativeID string) ([]*models.AuditLogEntry, error)
	ListAuditEntriesByEvent(ctx context.Context, eventID string) ([]*models.AuditLogEntry, error)
}

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	EventStorage() EventStorage
	RuleStorage() RuleStorage
	ClientStorage() ClientStorage
	NarrativeStorage() NarrativeStorage
	AuditStorage() AuditStorage
	LoadSeedData(ctx context.Context, dir string, defaultRules []models.ComplianceRule) error
	Close() error
}
