package badger

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db        *BadgerDB
	event     interfaces.EventStorage
	rule      interfaces.RuleStorage
	client    interfaces.ClientStorage
	narrative interfaces.NarrativeStorage
	audit     interfaces.AuditStorage
	logger    arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:        db,
		event:     NewEventStorage(db, logger),
		rule:      NewRuleStorage(db, logger),
		client:    NewClientStorage(db, logger),
		narrative: NewNarrativeStorage(db, logger),
		audit:     NewAuditStorage(db, logger),
		logger:    logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// EventStorage returns the market event storage interface
func (m *Manager) EventStorage() interfaces.EventStorage {
	return m.event
}

// RuleStorage returns the compliance rule storage interface
func (m *Manager) RuleStorage() interfaces.RuleStorage {
	return m.rule
}

// ClientStorage returns the client profile storage interface
func (m *Manager) ClientStorage() interfaces.ClientStorage {
	return m.client
}

// NarrativeStorage returns the generated narrative storage interface
func (m *Manager) NarrativeStorage() interfaces.NarrativeStorage {
	return m.narrative
}

// AuditStorage returns the audit log storage interface
func (m *Manager) AuditStorage() interfaces.AuditStorage {
	return m.audit
}

// LoadSeedData loads events, clients and rules from dir into empty stores
func (m *Manager) LoadSeedData(ctx context.Context, dir string, defaultRules []models.ComplianceRule) error {
	return LoadSeedData(ctx, m, dir, defaultRules, m.logger)
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
