package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// AuditStorage implements the AuditStorage interface for Badger
type AuditStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAuditStorage creates a new AuditStorage instance
func NewAuditStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AuditStorage {
	return &AuditStorage{
		db:     db,
		logger: logger,
	}
}

// SaveAuditEntries writes all entries in one transaction
func (s *AuditStorage) SaveAuditEntries(ctx context.Context, entries []*models.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	err := s.db.Store().Badger().Update(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.ID == "" {
				return fmt.Errorf("audit entry ID is required")
			}
			if err := s.db.Store().TxUpsert(tx, entry.ID, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store audit entries: %w", err)
	}
	return nil
}

func (s *AuditStorage) ListAuditEntries(ctx context.Context, narrativeID string) ([]*models.AuditLogEntry, error) {
	return s.find(badgerhold.Where("NarrativeID").Eq(narrativeID).SortBy("CreatedAt"))
}

func (s *AuditStorage) ListAuditEntriesByEvent(ctx context.Context, eventID string) ([]*models.AuditLogEntry, error) {
	return s.find(badgerhold.Where("EventID").Eq(eventID).SortBy("CreatedAt"))
}

func (s *AuditStorage) find(query *badgerhold.Query) ([]*models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	if err := s.db.Store().Find(&entries, query); err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	result := make([]*models.AuditLogEntry, len(entries))
	for i := range entries {
		result[i] = &entries[i]
	}
	return result, nil
}
