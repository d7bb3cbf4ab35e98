package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Market events
	mux.HandleFunc("/api/events", s.app.EventHandler.ListEventsHandler) // GET (list, ?ticker=)

	// GET /{id}
	mux.Handle("/api/events/", itemRoutes{
		prefix:   "/api/events/",
		get:      s.app.EventHandler.GetEventHandler,
		notFound: s.app.APIHandler.NotFoundHandler,
	})

	// API routes - Compliance
	mux.HandleFunc("/api/rules", s.app.ComplianceHandler.ListRulesHandler)     // GET (active, ?all=true)
	mux.HandleFunc("/api/clients", s.app.ComplianceHandler.ListClientsHandler) // GET
	mux.HandleFunc("/api/audit", s.app.ComplianceHandler.AuditHandler)         // GET ?narrative_id= or ?event_id=

	// API routes - Narratives
	mux.HandleFunc("/api/narratives", s.handleNarrativesRoute) // GET (list), POST (generate)

	// GET /{id}, GET /{id}/report
	mux.Handle("/api/narratives/", itemRoutes{
		prefix: "/api/narratives/",
		get:    s.app.NarrativeHandler.GetHandler,
		actions: map[string]RouteHandler{
			"report": s.app.NarrativeHandler.ReportHandler,
		},
		notFound: s.app.APIHandler.NotFoundHandler,
	})

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched routes
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleNarrativesRoute handles GET (list) and POST (generate) for /api/narratives.
// Generation is rate limited.
func (s *Server) handleNarrativesRoute(w http.ResponseWriter, r *http.Request) {
	routeCollection(w, r,
		s.app.NarrativeHandler.ListHandler,
		s.rateLimited(s.app.NarrativeHandler.CreateHandler),
	)
}
