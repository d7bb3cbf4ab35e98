package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// NarrativeStorage implements the NarrativeStorage interface for Badger
type NarrativeStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewNarrativeStorage creates a new NarrativeStorage instance
func NewNarrativeStorage(db *BadgerDB, logger arbor.ILogger) interfaces.NarrativeStorage {
	return &NarrativeStorage{
		db:     db,
		logger: logger,
	}
}

func (s *NarrativeStorage) SaveNarrative(ctx context.Context, narrative *models.GeneratedNarrative) error {
	if narrative.ID == "" {
		return fmt.Errorf("narrative ID is required")
	}
	if err := s.db.Store().Upsert(narrative.ID, narrative); err != nil {
		return fmt.Errorf("failed to store narrative: %w", err)
	}
	return nil
}

func (s *NarrativeStorage) GetNarrative(ctx context.Context, id string) (*models.GeneratedNarrative, error) {
	var narrative models.GeneratedNarrative
	if err := s.db.Store().Get(id, &narrative); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("narrative %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get narrative: %w", err)
	}
	return &narrative, nil
}

func (s *NarrativeStorage) ListNarratives(ctx context.Context) ([]*models.GeneratedNarrative, error) {
	return s.find(badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse())
}

func (s *NarrativeStorage) ListNarrativesByEvent(ctx context.Context, eventID string) ([]*models.GeneratedNarrative, error) {
	return s.find(badgerhold.Where("SourceEventID").Eq(eventID).SortBy("CreatedAt").Reverse())
}

func (s *NarrativeStorage) CountNarrativesByEvent(ctx context.Context, eventID string) (int, error) {
	count, err := s.db.Store().Count(&models.GeneratedNarrative{}, badgerhold.Where("SourceEventID").Eq(eventID))
	if err != nil {
		return 0, fmt.Errorf("failed to count narratives: %w", err)
	}
	return int(count), nil
}

func (s *NarrativeStorage) find(query *badgerhold.Query) ([]*models.GeneratedNarrative, error) {
	var narratives []models.GeneratedNarrative
	if err := s.db.Store().Find(&narratives, query); err != nil {
		return nil, fmt.Errorf("failed to list narratives: %w", err)
	}

	result := make([]*models.GeneratedNarrative, len(narratives))
	for i := range narratives {
		result[i] = &narratives[i]
	}
	return result, nil
}
