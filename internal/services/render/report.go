package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format names a report output format
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ErrUnknownFormat is returned for a report format other than md, html or pdf
var ErrUnknownFormat = errors.New("unknown report format")

const reportTimeLayout = "2006-01-02 15:04 MST"

// Report gathers everything shown in a compliance report
type Report struct {
	Narrative   *models.GeneratedNarrative
	Event       *models.MarketEvent // Optional, the source event when still stored
	Audit       []*models.AuditLogEntry
	GeneratedAt time.Time
}

// Service renders compliance reports
type Service struct {
	logger arbor.ILogger
	md     goldmark.Markdown
}

// NewService creates a new render service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
		md:     goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough)),
	}
}

// Render produces the report in the requested format along with its content type
func (s *Service) Render(report Report, format Format) ([]byte, string, error) {
	markdown := Markdown(report)

	switch format {
	case FormatMarkdown, "":
		return []byte(markdown), "text/markdown; charset=utf-8", nil
	case FormatHTML:
		body, err := s.HTML(markdown, reportTitle(report))
		return body, "text/html; charset=utf-8", err
	case FormatPDF:
		body, err := s.PDF(markdown, reportTitle(report))
		return body, "application/pdf", err
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// HTML converts markdown into a standalone HTML document
func (s *Service) HTML(markdown, title string) ([]byte, error) {
	var body bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &body); err != nil {
		s.logger.Error().Err(err).Msg("Failed to convert report to HTML")
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	doc.WriteString("<title>" + html.EscapeString(title) + "</title>\n</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.Bytes(), nil
}

// Markdown builds the compliance report for a generated narrative
func Markdown(report Report) string {
	n := report.Narrative

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", reportTitle(report)))

	sb.WriteString("| Field | Value |\n|---|---|\n")
	row(&sb, "Narrative", n.ID)
	if report.Event != nil {
		row(&sb, "Event", EventTitle(*report.Event))
		row(&sb, "Event type", EventTypeLabel(report.Event.Type))
		row(&sb, "Event date", report.Event.EventDate.UTC().Format(reportTimeLayout))
	} else {
		row(&sb, "Event", n.SourceEventID)
	}
	row(&sb, "Narrative type", strings.ReplaceAll(string(n.NarrativeType), "_", " "))
	audience := n.TargetAudience
	if audience == "" {
		audience = "General"
	}
	row(&sb, "Audience", audience)
	row(&sb, "Status", strings.ToUpper(StatusLabel(n.ComplianceStatus)))
	row(&sb, "Created", n.CreatedAt.UTC().Format(reportTimeLayout))
	reviewed := "Pending"
	if n.ReviewedAt != nil {
		reviewed = n.ReviewedAt.UTC().Format(reportTimeLayout)
	}
	row(&sb, "Reviewed", reviewed)
	if !report.GeneratedAt.IsZero() {
		row(&sb, "Report generated", report.GeneratedAt.UTC().Format(reportTimeLayout))
	}

	sb.WriteString("\n## Violations\n\n")
	if len(n.ComplianceChecks.Violations) == 0 {
		sb.WriteString("None.\n")
	} else {
		sb.WriteString("| Rule | Severity | Category | Message |\n|---|---|---|---|\n")
		for _, v := range n.ComplianceChecks.Violations {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", cell(v.RuleName), cell(string(v.Severity)), cell(v.Category), cell(v.Message)))
		}
	}

	sb.WriteString("\n## Warnings\n\n")
	list(&sb, warningLines(n.ComplianceChecks.Warnings))

	sb.WriteString("\n## Auto-corrections\n\n")
	list(&sb, n.ComplianceChecks.AutoCorrections)

	sb.WriteString("\n## Required disclaimers\n\n")
	list(&sb, n.RequiredDisclaimers)

	sb.WriteString("\n## Draft narrative\n\n")
	fence(&sb, n.RawNarrative)

	sb.WriteString("\n## Final narrative\n\n")
	fence(&sb, n.FinalNarrative)

	sb.WriteString("\n## Audit trail\n\n")
	if len(report.Audit) == 0 {
		sb.WriteString("No audit entries.\n")
	} else {
		sb.WriteString("| Entry | Rule | Result | Severity | Message |\n|---|---|---|---|---|\n")
		for _, e := range report.Audit {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				cell(e.ID), cell(e.RuleID), cell(string(e.CheckResult)), cell(string(e.Details.Severity)), cell(e.Details.Message)))
		}
	}

	return sb.String()
}

func reportTitle(report Report) string {
	if report.Event != nil {
		return "Compliance Report: " + EventTitle(*report.Event)
	}
	return "Compliance Report: " + report.Narrative.ID
}

func warningLines(warnings []models.Warning) []string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, fmt.Sprintf("**%s**: %s", w.RuleName, w.Message))
	}
	return lines
}

func row(sb *strings.Builder, field, value string) {
	sb.WriteString(fmt.Sprintf("| %s | %s |\n", field, cell(value)))
}

func list(sb *strings.Builder, items []string) {
	if len(items) == 0 {
		sb.WriteString("None.\n")
		return
	}
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
}

// fence writes text verbatim inside a fenced block so markdown in narratives is not interpreted
func fence(sb *strings.Builder, text string) {
	sb.WriteString("```text\n")
	sb.WriteString(strings.ReplaceAll(text, "```", "'''"))
	sb.WriteString("\n```\n")
}

// cell makes a value safe for a single markdown table cell
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
