package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/ternarybob/storyteller/internal/services/render"
)

// EventView is a market event with its display fields
type EventView struct {
	Event       *models.MarketEvent `json:"event"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	TypeLabel   string              `json:"type_label"`
	TimeAgo     string              `json:"time_ago"`
	Narratives  int                 `json:"narratives"`
}

// EventHandler handles HTTP requests for market events
type EventHandler struct {
	storage interfaces.StorageManager
	clock   common.Clock
	logger  arbor.ILogger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(storage interfaces.StorageManager, clock common.Clock, logger arbor.ILogger) *EventHandler {
	return &EventHandler{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// ListEventsHandler handles GET /api/events, newest first, optionally filtered by ?ticker=
func (h *EventHandler) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx := r.Context()

	var (
		events []*models.MarketEvent
		err    error
	)
	if ticker := r.URL.Query().Get("ticker"); ticker != "" {
		events, err = h.storage.EventStorage().ListEventsByTicker(ctx, ticker)
	} else {
		events, err = h.storage.EventStorage().ListEvents(ctx)
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list events")
		WriteError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	now := h.clock.Now()
	views := make([]EventView, 0, len(events))
	for _, event := range events {
		count, err := h.storage.NarrativeStorage().CountNarrativesByEvent(ctx, event.ID)
		if err != nil {
			h.logger.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to count narratives")
		}
		views = append(views, eventView(event, now, count))
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": views,
		"total":  len(views),
	})
}

// GetEventHandler handles GET /api/events/{id}
func (h *EventHandler) GetEventHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := PathID(r.URL.Path, "/api/events/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Event ID is required")
		return
	}

	event, err := h.storage.EventStorage().GetEvent(r.Context(), id)
	if err != nil {
		WriteStorageError(w, err, "Event")
		return
	}

	count, err := h.storage.NarrativeStorage().CountNarrativesByEvent(r.Context(), id)
	if err != nil {
		h.logger.Warn().Err(err).Str("event_id", id).Msg("Failed to count narratives")
	}

	WriteJSON(w, http.StatusOK, eventView(event, h.clock.Now(), count))
}

func eventView(event *models.MarketEvent, now time.Time, narratives int) EventView {
	return EventView{
		Event:       event,
		Title:       render.EventTitle(*event),
		Description: render.EventDescription(*event),
		TypeLabel:   render.EventTypeLabel(event.Type),
		TimeAgo:     render.TimeAgo(event.EventDate, now),
		Narratives:  narratives,
	}
}
