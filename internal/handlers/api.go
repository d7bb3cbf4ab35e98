package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/services/storyteller"
)

// SchedulerStatus reports the state of the narration scheduler
type SchedulerStatus interface {
	Status() storyteller.Status
}

type APIHandler struct {
	scheduler SchedulerStatus // Optional, nil when processing is disabled
	logger    arbor.ILogger
}

func NewAPIHandler(scheduler SchedulerStatus) *APIHandler {
	return &APIHandler{
		scheduler: scheduler,
		logger:    common.GetLogger(),
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.Version,
		"build":      common.Build,
		"git_commit": common.GitCommit,
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	response := map[string]interface{}{
		"status": "ok",
	}
	if h.scheduler != nil {
		response["scheduler"] = h.scheduler.Status()
	}

	WriteJSON(w, http.StatusOK, response)
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
