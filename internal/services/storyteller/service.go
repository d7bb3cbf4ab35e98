// Package storyteller runs the narrative and compliance engines against
// stored events and persists what they produce.
package storyteller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/ternarybob/storyteller/internal/services/compliance"
	"github.com/ternarybob/storyteller/internal/services/narrative"
)

// ErrUnknownNarrativeType is returned for a request naming an unsupported narrative type
var ErrUnknownNarrativeType = errors.New("unknown narrative type")

// errNotCompleted marks a batch request whose worker exited without a result
var errNotCompleted = errors.New("generation did not complete")

// Request asks for one narrative about one stored event.
// An empty NarrativeType means flash_note; ClientID is optional.
type Request struct {
	EventID       string               `json:"event_id"`
	NarrativeType models.NarrativeType `json:"narrative_type"`
	ClientID      string               `json:"client_id,omitempty"`
}

// Result pairs a batch request with its outcome
type Result struct {
	Request   Request
	Narrative *models.GeneratedNarrative
	Err       error
}

// Service orchestrates generate, check, correct and persist
type Service struct {
	storage     interfaces.StorageManager
	clock       common.Clock
	logger      arbor.ILogger
	concurrency int
}

// NewService creates a new storyteller service. Concurrency below one is treated as one.
func NewService(storage interfaces.StorageManager, clock common.Clock, logger arbor.ILogger, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	if clock == nil {
		clock = common.SystemClock{}
	}
	return &Service{
		storage:     storage,
		clock:       clock,
		logger:      logger,
		concurrency: concurrency,
	}
}

// ParseNarrativeType resolves a narrative type name, defaulting empty to flash_note
func ParseNarrativeType(name string) (models.NarrativeType, error) {
	if name == "" {
		return models.NarrativeFlashNote, nil
	}
	for _, t := range models.NarrativeTypes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNarrativeType, name)
}

// Generate produces, screens and stores one narrative. The stored record
// holds both the draft and the corrected text. One audit entry is written
// per violation.
func (s *Service) Generate(ctx context.Context, req Request) (*models.GeneratedNarrative, error) {
	narrativeType, err := ParseNarrativeType(string(req.NarrativeType))
	if err != nil {
		return nil, err
	}

	event, err := s.storage.EventStorage().GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event %s: %w", req.EventID, err)
	}

	rules, err := s.storage.RuleStorage().ListActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load compliance rules: %w", err)
	}

	var client *models.ClientProfile
	if req.ClientID != "" {
		client, err = s.storage.ClientStorage().GetClient(ctx, req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to load client %s: %w", req.ClientID, err)
		}
	}

	opts := narrative.Options{NarrativeType: narrativeType, ClientProfile: client}
	if client != nil {
		opts.TargetAudience = client.Name
	}

	draft, err := narrative.Generate(*event, opts)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_id", event.ID).
			Str("narrative_type", string(narrativeType)).
			Msg("Narrative generation failed")
		return nil, fmt.Errorf("failed to generate narrative for event %s: %w", event.ID, err)
	}

	result := compliance.Check(draft, rules, client)

	now := s.clock.Now()
	record := &models.GeneratedNarrative{
		ID:               common.NewNarrativeID(),
		SourceEventID:    event.ID,
		NarrativeType:    narrativeType,
		TargetAudience:   opts.TargetAudience,
		ClientID:         req.ClientID,
		RawNarrative:     draft,
		ComplianceStatus: result.Status,
		ComplianceChecks: models.ComplianceChecks{
			Violations:      result.Violations,
			Warnings:        result.Warnings,
			AutoCorrections: result.AutoCorrections,
		},
		RequiredDisclaimers: result.RequiredDisclaimers,
		FinalNarrative:      compliance.ApplyCorrections(draft, result),
		CreatedAt:           now,
	}
	if result.Status == models.StatusApproved {
		reviewed := now
		record.ReviewedAt = &reviewed
	}

	if err := s.storage.NarrativeStorage().SaveNarrative(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save narrative: %w", err)
	}

	if entries := auditEntries(record, now); len(entries) > 0 {
		if err := s.storage.AuditStorage().SaveAuditEntries(ctx, entries); err != nil {
			return nil, fmt.Errorf("failed to save audit entries for narrative %s: %w", record.ID, err)
		}
	}

	s.logger.Info().
		Str("narrative_id", record.ID).
		Str("event_id", event.ID).
		Str("narrative_type", string(narrativeType)).
		Str("status", string(record.ComplianceStatus)).
		Int("violations", len(result.Violations)).
		Int("warnings", len(result.Warnings)).
		Msg("Narrative generated")

	return record, nil
}

func auditEntries(record *models.GeneratedNarrative, now time.Time) []*models.AuditLogEntry {
	entries := make([]*models.AuditLogEntry, 0, len(record.ComplianceChecks.Violations))
	for _, v := range record.ComplianceChecks.Violations {
		entries = append(entries, &models.AuditLogEntry{
			ID:          common.NewAuditID(),
			NarrativeID: record.ID,
			EventID:     record.SourceEventID,
			RuleID:      v.RuleID,
			CheckResult: models.AuditFail,
			Details:     models.AuditDetails{Message: v.Message, Severity: v.Severity},
			CreatedAt:   now,
		})
	}
	return entries
}

// GenerateBatch runs independent requests in parallel, at most
// concurrency at a time. Results are returned in request order.
func (s *Service) GenerateBatch(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, req := range reqs {
		results[i] = Result{Request: req, Err: errNotCompleted}

		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		common.SafeGo(s.logger, "narrate-event-"+req.EventID, func() {
			defer wg.Done()
			defer func() { <-sem }()

			record, err := s.Generate(ctx, req)
			results[i] = Result{Request: req, Narrative: record, Err: err}
		})
	}

	wg.Wait()
	return results
}

// NarratePending generates one narrative of the given type for every stored
// event that has none yet. It returns the number generated; per-event
// failures are logged and skipped.
func (s *Service) NarratePending(ctx context.Context, narrativeType models.NarrativeType) (int, error) {
	events, err := s.storage.EventStorage().ListEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list events: %w", err)
	}

	reqs := make([]Request, 0, len(events))
	for _, event := range events {
		count, err := s.storage.NarrativeStorage().CountNarrativesByEvent(ctx, event.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to count narratives for event %s: %w", event.ID, err)
		}
		if count == 0 {
			reqs = append(reqs, Request{EventID: event.ID, NarrativeType: narrativeType})
		}
	}

	if len(reqs) == 0 {
		s.logger.Debug().Msg("No events awaiting narration")
		return 0, nil
	}

	generated := 0
	for _, result := range s.GenerateBatch(ctx, reqs) {
		if result.Err != nil {
			s.logger.Warn().Err(result.Err).Str("event_id", result.Request.EventID).Msg("Skipping event")
			continue
		}
		generated++
	}

	s.logger.Info().
		Int("pending", len(reqs)).
		Int("generated", generated).
		Msg("Pending events narrated")

	return generated, nil
}
