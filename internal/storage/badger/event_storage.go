package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// EventStorage implements the EventStorage interface for Badger
type EventStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewEventStorage creates a new EventStorage instance
func NewEventStorage(db *BadgerDB, logger arbor.ILogger) interfaces.EventStorage {
	return &EventStorage{
		db:     db,
		logger: logger,
	}
}

func (s *EventStorage) SaveEvent(ctx context.Context, event *models.MarketEvent) error {
	if event.ID == "" {
		return fmt.Errorf("event ID is required")
	}

	event.Ticker = common.NormalizeTicker(event.Ticker)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(event.ID, event); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

func (s *EventStorage) GetEvent(ctx context.Context, id string) (*models.MarketEvent, error) {
	var event models.MarketEvent
	if err := s.db.Store().Get(id, &event); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (s *EventStorage) ListEvents(ctx context.Context) ([]*models.MarketEvent, error) {
	return s.find(badgerhold.Where("ID").Ne("").SortBy("EventDate").Reverse())
}

func (s *EventStorage) ListEventsByTicker(ctx context.Context, ticker string) ([]*models.MarketEvent, error) {
	return s.find(badgerhold.Where("Ticker").Eq(common.NormalizeTicker(ticker)).SortBy("EventDate").Reverse())
}

func (s *EventStorage) CountEvents(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.MarketEvent{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return int(count), nil
}

func (s *EventStorage) find(query *badgerhold.Query) ([]*models.MarketEvent, error) {
	var events []models.MarketEvent
	if err := s.db.Store().Find(&events, query); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	result := make([]*models.MarketEvent, len(events))
	for i := range events {
		result[i] = &events[i]
	}
	return result, nil
}
