package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/ternarybob/storyteller/internal/services/narrative"
	"github.com/ternarybob/storyteller/internal/services/render"
	"github.com/ternarybob/storyteller/internal/services/storyteller"
)

// maxRequestBody caps the size of a generate request
const maxRequestBody = 64 << 10

// NarrativeView is a stored narrative with its status display tokens
type NarrativeView struct {
	*models.GeneratedNarrative
	StatusColor string `json:"status_color"`
	StatusIcon  string `json:"status_icon"`
}

// NarrativeHandler handles narrative generation, listing and reports
type NarrativeHandler struct {
	service *storyteller.Service
	render  *render.Service
	storage interfaces.StorageManager
	clock   common.Clock
	logger  arbor.ILogger
}

// NewNarrativeHandler creates a new NarrativeHandler
func NewNarrativeHandler(service *storyteller.Service, renderService *render.Service, storage interfaces.StorageManager, clock common.Clock, logger arbor.ILogger) *NarrativeHandler {
	return &NarrativeHandler{
		service: service,
		render:  renderService,
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreateHandler handles POST /api/narratives
func (h *NarrativeHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req storyteller.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EventID == "" {
		WriteError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	record, err := h.service.Generate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, narrative.ErrInvalidPayload), errors.Is(err, storyteller.ErrUnknownNarrativeType):
			WriteError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Str("event_id", req.EventID).Msg("Failed to generate narrative")
			WriteError(w, http.StatusInternalServerError, "Failed to generate narrative")
		}
		return
	}

	WriteJSON(w, http.StatusCreated, narrativeView(record))
}

// ListHandler handles GET /api/narratives with optional ?event_id= and pagination
func (h *NarrativeHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	var (
		records []*models.GeneratedNarrative
		err     error
	)
	if eventID := r.URL.Query().Get("event_id"); eventID != "" {
		records, err = h.storage.NarrativeStorage().ListNarrativesByEvent(r.Context(), eventID)
	} else {
		records, err = h.storage.NarrativeStorage().ListNarratives(r.Context())
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list narratives")
		WriteError(w, http.StatusInternalServerError, "Failed to list narratives")
		return
	}

	views := make([]NarrativeView, 0, len(records))
	for _, record := range records {
		views = append(views, narrativeView(record))
	}

	page, pageSize := GetPaginationParams(r)
	paged, pagination := Paginate(views, page, pageSize)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"narratives": paged,
		"pagination": pagination,
	})
}

// GetHandler handles GET /api/narratives/{id}
func (h *NarrativeHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	record, ok := h.loadNarrative(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, narrativeView(record))
}

// ReportHandler handles GET /api/narratives/{id}/report?format=md|html|pdf
func (h *NarrativeHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	format := render.Format(r.URL.Query().Get("format"))
	switch format {
	case "", render.FormatMarkdown, render.FormatHTML, render.FormatPDF:
	default:
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown report format %q", format))
		return
	}

	record, ok := h.loadNarrative(w, r)
	if !ok {
		return
	}

	report := render.Report{Narrative: record, GeneratedAt: h.clock.Now()}

	event, err := h.storage.EventStorage().GetEvent(r.Context(), record.SourceEventID)
	switch {
	case err == nil:
		report.Event = event
	case !errors.Is(err, interfaces.ErrNotFound):
		h.logger.Warn().Err(err).Str("event_id", record.SourceEventID).Msg("Failed to load report event")
	}

	report.Audit, err = h.storage.AuditStorage().ListAuditEntries(r.Context(), record.ID)
	if err != nil {
		h.logger.Error().Err(err).Str("narrative_id", record.ID).Msg("Failed to load audit entries")
		WriteError(w, http.StatusInternalServerError, "Failed to load audit entries")
		return
	}

	body, contentType, err := h.render.Render(report, format)
	if err != nil {
		h.logger.Error().Err(err).Str("narrative_id", record.ID).Msg("Failed to render report")
		WriteError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	if format == render.FormatPDF {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.ID+".pdf"))
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *NarrativeHandler) loadNarrative(w http.ResponseWriter, r *http.Request) (*models.GeneratedNarrative, bool) {
	id := PathID(r.URL.Path, "/api/narratives/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Narrative ID is required")
		return nil, false
	}

	record, err := h.storage.NarrativeStorage().GetNarrative(r.Context(), id)
	if err != nil {
		WriteStorageError(w, err, "Narrative")
		return nil, false
	}
	return record, true
}

func narrativeView(record *models.GeneratedNarrative) NarrativeView {
	return NarrativeView{
		GeneratedNarrative: record,
		StatusColor:        render.StatusColor(record.ComplianceStatus),
		StatusIcon:         render.StatusIcon(record.ComplianceStatus),
	}
}
