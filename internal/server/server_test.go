package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/app"
	"github.com/ternarybob/storyteller/internal/common"
)

func newTestServer(t *testing.T, configure func(*common.Config)) *Server {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Storage.Badger.InMemory = true
	config.Seed.Dir = "../../seed"
	config.Processing.Enabled = false
	config.API.RateLimit = 0
	if configure != nil {
		configure(config)
	}

	clock := common.FixedClock{At: time.Date(2024, 11, 14, 17, 0, 0, 0, time.UTC)}
	application, err := app.NewWithClock(config, arbor.NewLogger(), clock)
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })

	return New(application)
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/version", http.StatusOK},
		{http.MethodGet, "/api/events", http.StatusOK},
		{http.MethodGet, "/api/events/1", http.StatusOK},
		{http.MethodGet, "/api/events/99", http.StatusNotFound},
		{http.MethodGet, "/api/rules", http.StatusOK},
		{http.MethodGet, "/api/clients", http.StatusOK},
		{http.MethodGet, "/api/audit", http.StatusBadRequest},
		{http.MethodGet, "/api/narratives", http.StatusOK},
		{http.MethodGet, "/api/narratives/nar_missing", http.StatusNotFound},
		{http.MethodGet, "/api/narratives/nar_missing/report", http.StatusNotFound},
		{http.MethodGet, "/api/narratives/nar_missing/other", http.StatusNotFound},
		{http.MethodGet, "/api/narratives/", http.StatusNotFound},
		{http.MethodGet, "/api/narratives/nar_missing/report/pdf", http.StatusNotFound},
		{http.MethodPost, "/api/narratives/nar_missing", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/events/1/narratives", http.StatusNotFound},
		{http.MethodDelete, "/api/narratives", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodOptions, "/api/narratives", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(s, tt.method, tt.target, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestGenerateAndReport(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, http.MethodPost, "/api/narratives", `{"event_id":"3","narrative_type":"newsletter"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"compliance_status":"approved"`)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = serve(s, http.MethodGet, "/api/narratives?event_id=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_items":1`)

	rec = serve(s, http.MethodGet, "/api/narratives/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), created.ID)

	rec = serve(s, http.MethodGet, "/api/narratives/"+created.ID+"/report?format=html", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = serve(s, http.MethodDelete, "/api/narratives/"+created.ID+"/report", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestRouteByMethod_AllowHeader(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }

	rec := httptest.NewRecorder()
	routeCollection(rec, httptest.NewRequest(http.MethodPut, "/things", nil), ok, ok)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	assert.Contains(t, rec.Body.String(), "Method not allowed")

	rec = httptest.NewRecorder()
	routeCollection(rec, httptest.NewRequest(http.MethodPost, "/things", nil), ok, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))

	rec = httptest.NewRecorder()
	routeCollection(rec, httptest.NewRequest(http.MethodGet, "/things", nil), ok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(config *common.Config) {
		config.API.RateLimit = 0.001
		config.API.RateBurst = 2
	})

	body := `{"event_id":"3"}`
	assert.Equal(t, http.StatusCreated, serve(s, http.MethodPost, "/api/narratives", body).Code)
	assert.Equal(t, http.StatusCreated, serve(s, http.MethodPost, "/api/narratives", body).Code)

	rec := serve(s, http.MethodPost, "/api/narratives", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// Reads are not limited
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/api/narratives", "").Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer(t, nil)

	handler := s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
