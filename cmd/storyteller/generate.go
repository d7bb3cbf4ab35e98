package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/app"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/ternarybob/storyteller/internal/services/render"
	"github.com/ternarybob/storyteller/internal/services/storyteller"
)

// runGenerate produces one narrative and writes its compliance report.
// The return value is the process exit code.
func runGenerate(config *common.Config, logger arbor.ILogger, args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	eventID := fs.String("event", "", "Event ID to narrate (required)")
	narrativeType := fs.String("type", string(models.NarrativeFlashNote), "Narrative type: flash_note, client_message, newsletter, executive_summary")
	clientID := fs.String("client", "", "Client profile ID (optional)")
	format := fs.String("format", string(render.FormatMarkdown), "Report format: md, html, pdf")
	output := fs.String("o", "", "Write the report to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *eventID == "" {
		fmt.Fprintln(os.Stderr, "generate: -event is required")
		fs.Usage()
		return 2
	}

	application, err := app.New(config, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		return 1
	}
	defer application.Close()

	ctx := context.Background()
	record, err := application.StorytellerService.Generate(ctx, storyteller.Request{
		EventID:       *eventID,
		NarrativeType: models.NarrativeType(*narrativeType),
		ClientID:      *clientID,
	})
	if err != nil {
		logger.Error().Err(err).Str("event_id", *eventID).Msg("Generation failed")
		return 1
	}

	report := render.Report{Narrative: record, GeneratedAt: application.Clock.Now()}
	if report.Event, err = application.StorageManager.EventStorage().GetEvent(ctx, record.SourceEventID); err != nil {
		logger.Warn().Err(err).Msg("Report will not include event details")
	}
	if report.Audit, err = application.StorageManager.AuditStorage().ListAuditEntries(ctx, record.ID); err != nil {
		logger.Warn().Err(err).Msg("Report will not include audit entries")
	}

	body, _, err := application.RenderService.Render(report, render.Format(*format))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to render report")
		return 1
	}

	if *output == "" {
		os.Stdout.Write(body)
		return 0
	}
	if err := os.WriteFile(*output, body, 0644); err != nil {
		logger.Error().Err(err).Str("path", *output).Msg("Failed to write report")
		return 1
	}
	logger.Info().
		Str("narrative_id", record.ID).
		Str("status", string(record.ComplianceStatus)).
		Str("path", *output).
		Msg("Report written")
	return 0
}

// runNarrate generates a narrative for every event that has none and exits
func runNarrate(config *common.Config, logger arbor.ILogger) int {
	config.Processing.Enabled = false

	application, err := app.New(config, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		return 1
	}
	defer application.Close()

	narrativeType, err := storyteller.ParseNarrativeType(config.Processing.NarrativeType)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid processing narrative type")
		return 1
	}

	generated, err := application.StorytellerService.NarratePending(context.Background(), narrativeType)
	if err != nil {
		logger.Error().Err(err).Msg("Narration failed")
		return 1
	}

	fmt.Printf("Generated %d narratives\n", generated)
	return 0
}
