package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// RuleStorage implements the RuleStorage interface for Badger
type RuleStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewRuleStorage creates a new RuleStorage instance
func NewRuleStorage(db *BadgerDB, logger arbor.ILogger) interfaces.RuleStorage {
	return &RuleStorage{
		db:     db,
		logger: logger,
	}
}

func (s *RuleStorage) SaveRule(ctx context.Context, rule *models.ComplianceRule) error {
	if rule.ID == "" {
		return fmt.Errorf("rule ID is required")
	}
	if err := s.db.Store().Upsert(rule.ID, rule); err != nil {
		return fmt.Errorf("failed to store rule: %w", err)
	}
	return nil
}

func (s *RuleStorage) GetRule(ctx context.Context, id string) (*models.ComplianceRule, error) {
	var rule models.ComplianceRule
	if err := s.db.Store().Get(id, &rule); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("rule %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return &rule, nil
}

func (s *RuleStorage) ListRules(ctx context.Context) ([]models.ComplianceRule, error) {
	return s.find(nil)
}

func (s *RuleStorage) ListActiveRules(ctx context.Context) ([]models.ComplianceRule, error) {
	return s.find(badgerhold.Where("IsActive").Eq(true))
}

func (s *RuleStorage) CountRules(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.ComplianceRule{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}
	return int(count), nil
}

// find returns rules in evaluation order: Order ascending, then ID
func (s *RuleStorage) find(query *badgerhold.Query) ([]models.ComplianceRule, error) {
	var rules []models.ComplianceRule
	if err := s.db.Store().Find(&rules, query); err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Order != rules[j].Order {
			return rules[i].Order < rules[j].Order
		}
		return rules[i].ID < rules[j].ID
	})
	return rules, nil
}
