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

// ClientStorage implements the ClientStorage interface for Badger
type ClientStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewClientStorage creates a new ClientStorage instance
func NewClientStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ClientStorage {
	return &ClientStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ClientStorage) SaveClient(ctx context.Context, client *models.ClientProfile) error {
	if client.ID == "" {
		return fmt.Errorf("client ID is required")
	}
	if err := s.db.Store().Upsert(client.ID, client); err != nil {
		return fmt.Errorf("failed to store client: %w", err)
	}
	return nil
}

func (s *ClientStorage) GetClient(ctx context.Context, id string) (*models.ClientProfile, error) {
	var client models.ClientProfile
	if err := s.db.Store().Get(id, &client); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("client %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (s *ClientStorage) ListClients(ctx context.Context) ([]*models.ClientProfile, error) {
	var clients []models.ClientProfile
	if err := s.db.Store().Find(&clients, badgerhold.Where("ID").Ne("").SortBy("Name")); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	result := make([]*models.ClientProfile, len(clients))
	for i := range clients {
		result[i] = &clients[i]
	}
	return result, nil
}

func (s *ClientStorage) CountClients(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.ClientProfile{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return int(count), nil
}
