package badger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"gopkg.in/yaml.v3"
)

// Seed file names looked up in the seed directory
const (
	eventsFile    = "events.toml"
	clientsFile   = "clients.toml"
	rulesTOMLFile = "rules.toml"
	rulesYAMLFile = "rules.yaml"
)

// EventFile represents a market event in TOML format. The payload lives in
// the sub-table named after the event type.
// Format:
// [[events]]
// id = "1"
// event_type = "earnings_release"
// ticker = "AAPL"
// event_date = 2024-10-31T20:30:00Z
// [events.earnings_release]
// company = "Apple Inc."
type EventFile struct {
	ID                string                           `toml:"id"`
	Type              models.EventType                 `toml:"event_type"`
	Ticker            string                           `toml:"ticker"`
	EventDate         time.Time                        `toml:"event_date"`
	Earnings          *models.EarningsPayload          `toml:"earnings_release"`
	EconomicIndicator *models.EconomicIndicatorPayload `toml:"economic_indicator"`
	Volatility        *models.VolatilityPayload        `toml:"market_volatility"`
	CorporateAction   *models.CorporateActionPayload   `toml:"corporate_action"`
	Fields            map[string]string                `toml:"fields"`
}

type eventsDocument struct {
	Events []EventFile `toml:"events"`
}

type clientsDocument struct {
	Clients []models.ClientProfile `toml:"clients"`
}

type rulesDocument struct {
	Rules []models.ComplianceRule `toml:"rules" yaml:"rules"`
}

// ToEvent converts the file form into a MarketEvent. The payload sub-table
// must match event_type; an event with no sub-table has no payload.
func (f EventFile) ToEvent() (*models.MarketEvent, error) {
	if f.ID == "" {
		return nil, fmt.Errorf("event id is required")
	}

	event := &models.MarketEvent{
		ID:        f.ID,
		Type:      f.Type,
		Ticker:    f.Ticker,
		EventDate: f.EventDate,
	}

	var payloads []models.EventPayload
	if f.Earnings != nil {
		payloads = append(payloads, *f.Earnings)
	}
	if f.EconomicIndicator != nil {
		payloads = append(payloads, *f.EconomicIndicator)
	}
	if f.Volatility != nil {
		payloads = append(payloads, *f.Volatility)
	}
	if f.CorporateAction != nil {
		payloads = append(payloads, *f.CorporateAction)
	}
	if len(f.Fields) > 0 {
		payloads = append(payloads, models.GenericPayload{Fields: f.Fields})
	}

	switch len(payloads) {
	case 0:
		return event, nil
	case 1:
		payload := payloads[0]
		if _, generic := payload.(models.GenericPayload); !generic && models.PayloadType(payload) != f.Type {
			return nil, fmt.Errorf("event %s: %s payload does not match event_type %q", f.ID, models.PayloadType(payload), f.Type)
		}
		event.Data = payload
		return event, nil
	default:
		return nil, fmt.Errorf("event %s: more than one payload table", f.ID)
	}
}

// LoadSeedData loads events, clients and rules from dirPath. Each store is
// only seeded while empty, so restarts never overwrite edited records.
// When no rule file exists the supplied default rules are used instead.
// Unreadable files are logged and skipped.
func LoadSeedData(ctx context.Context, manager interfaces.StorageManager, dirPath string, defaultRules []models.ComplianceRule, logger arbor.ILogger) error {
	logger.Debug().Str("dir", dirPath).Msg("Loading seed data")

	if err := loadEvents(ctx, manager.EventStorage(), filepath.Join(dirPath, eventsFile), logger); err != nil {
		return err
	}
	if err := loadClients(ctx, manager.ClientStorage(), filepath.Join(dirPath, clientsFile), logger); err != nil {
		return err
	}
	return loadRules(ctx, manager.RuleStorage(), dirPath, defaultRules, logger)
}

func loadEvents(ctx context.Context, storage interfaces.EventStorage, path string, logger arbor.ILogger) error {
	count, err := storage.CountEvents(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Debug().Int("count", count).Msg("Events already present, skipping seed")
		return nil
	}

	var doc eventsDocument
	if !readSeedFile(path, func(content []byte) error { return toml.Unmarshal(content, &doc) }, logger) {
		return nil
	}

	loaded, skipped := 0, 0
	for _, file := range doc.Events {
		event, err := file.ToEvent()
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("Skipping seed event")
			skipped++
			continue
		}
		if err := storage.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to seed event %s: %w", event.ID, err)
		}
		loaded++
	}

	logger.Info().Int("loaded", loaded).Int("skipped", skipped).Str("file", path).Msg("Seeded market events")
	return nil
}

func loadClients(ctx context.Context, storage interfaces.ClientStorage, path string, logger arbor.ILogger) error {
	count, err := storage.CountClients(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Debug().Int("count", count).Msg("Clients already present, skipping seed")
		return nil
	}

	var doc clientsDocument
	if !readSeedFile(path, func(content []byte) error { return toml.Unmarshal(content, &doc) }, logger) {
		return nil
	}

	loaded, skipped := 0, 0
	for i := range doc.Clients {
		client := &doc.Clients[i]
		if client.ID == "" {
			logger.Warn().Str("file", path).Int("index", i).Msg("Skipping seed client: id is required")
			skipped++
			continue
		}
		if err := storage.SaveClient(ctx, client); err != nil {
			return fmt.Errorf("failed to seed client %s: %w", client.ID, err)
		}
		loaded++
	}

	logger.Info().Int("loaded", loaded).Int("skipped", skipped).Str("file", path).Msg("Seeded client profiles")
	return nil
}

func loadRules(ctx context.Context, storage interfaces.RuleStorage, dirPath string, defaultRules []models.ComplianceRule, logger arbor.ILogger) error {
	count, err := storage.CountRules(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Debug().Int("count", count).Msg("Rules already present, skipping seed")
		return nil
	}

	var doc rulesDocument
	source := filepath.Join(dirPath, rulesTOMLFile)
	found := readSeedFile(source, func(content []byte) error { return toml.Unmarshal(content, &doc) }, logger)
	if !found {
		source = filepath.Join(dirPath, rulesYAMLFile)
		found = readSeedFile(source, func(content []byte) error { return yaml.Unmarshal(content, &doc) }, logger)
	}
	if !found {
		if len(defaultRules) == 0 {
			return nil
		}
		source = "defaults"
		doc.Rules = defaultRules
	}

	loaded, skipped := 0, 0
	for i := range doc.Rules {
		rule := doc.Rules[i]
		if rule.ID == "" {
			logger.Warn().Str("source", source).Int("index", i).Msg("Skipping seed rule: id is required")
			skipped++
			continue
		}
		if rule.Order == 0 {
			rule.Order = i + 1
		}
		if rule.Logic.Kind() == models.RuleKindNone {
			logger.Warn().Str("rule", rule.ID).Msg("Seed rule has no trigger or requirement logic")
		}
		if err := storage.SaveRule(ctx, &rule); err != nil {
			return fmt.Errorf("failed to seed rule %s: %w", rule.ID, err)
		}
		loaded++
	}

	logger.Info().Int("loaded", loaded).Int("skipped", skipped).Str("source", source).Msg("Seeded compliance rules")
	return nil
}

// readSeedFile reads and parses path, returning false when the file is
// missing or could not be parsed
func readSeedFile(path string, parse func([]byte) error, logger arbor.ILogger) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("file", path).Msg("Seed file does not exist, skipping")
		} else {
			logger.Warn().Err(err).Str("file", path).Msg("Failed to read seed file")
		}
		return false
	}

	if err := parse(content); err != nil {
		logger.Warn().Err(err).Str("file", path).Msg("Failed to parse seed file")
		return false
	}
	return true
}
