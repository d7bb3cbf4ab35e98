package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/interfaces"
	"github.com/ternarybob/storyteller/internal/models"
)

// ComplianceHandler serves rules, client profiles and the audit log
type ComplianceHandler struct {
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewComplianceHandler creates a new ComplianceHandler
func NewComplianceHandler(storage interfaces.StorageManager, logger arbor.ILogger) *ComplianceHandler {
	return &ComplianceHandler{
		storage: storage,
		logger:  logger,
	}
}

// ListRulesHandler handles GET /api/rules. Only active rules are listed unless ?all=true.
func (h *ComplianceHandler) ListRulesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	var (
		rules []models.ComplianceRule
		err   error
	)
	if r.URL.Query().Get("all") == "true" {
		rules, err = h.storage.RuleStorage().ListRules(r.Context())
	} else {
		rules, err = h.storage.RuleStorage().ListActiveRules(r.Context())
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list rules")
		WriteError(w, http.StatusInternalServerError, "Failed to list rules")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"rules": rules,
		"total": len(rules),
	})
}

// ListClientsHandler handles GET /api/clients
func (h *ComplianceHandler) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	clients, err := h.storage.ClientStorage().ListClients(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list clients")
		WriteError(w, http.StatusInternalServerError, "Failed to list clients")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"clients": clients,
		"total":   len(clients),
	})
}

// AuditHandler handles GET /api/audit?narrative_id= or ?event_id=
func (h *ComplianceHandler) AuditHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query()

	var (
		entries []*models.AuditLogEntry
		err     error
	)
	switch {
	case query.Get("narrative_id") != "":
		entries, err = h.storage.AuditStorage().ListAuditEntries(r.Context(), query.Get("narrative_id"))
	case query.Get("event_id") != "":
		entries, err = h.storage.AuditStorage().ListAuditEntriesByEvent(r.Context(), query.Get("event_id"))
	default:
		WriteError(w, http.StatusBadRequest, "narrative_id or event_id is required")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list audit entries")
		WriteError(w, http.StatusInternalServerError, "Failed to list audit entries")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}
