// Package api exposes activities, the syllabus, content generation and the
// resource list over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/p-n-ai/ibcs-hub/internal/activity"
	"github.com/p-n-ai/ibcs-hub/internal/ai"
	"github.com/p-n-ai/ibcs-hub/internal/content"
	"github.com/p-n-ai/ibcs-hub/internal/resources"
	"github.com/p-n-ai/ibcs-hub/internal/syllabus"
	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

const (
	maxBodyBytes = 1 << 20
	readyTimeout = 2 * time.Second
)

var errBadRequest = errors.New("bad request")

// Check is a named readiness probe.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Deps are the collaborators served by the API. Content may be nil when no AI
// provider is configured.
type Deps struct {
	Hub       *activity.Hub
	Syllabus  *syllabus.Loader
	Content   *content.Generator
	Resources resources.Store
	Ready     []Check
}

// Server holds the HTTP handlers.
type Server struct {
	hub       *activity.Hub
	syllabus  *syllabus.Loader
	content   *content.Generator
	resources resources.Store
	ready     []Check
}

// New creates a Server.
func New(d Deps) *Server {
	return &Server{
		hub:       d.Hub,
		syllabus:  d.Syllabus,
		content:   d.Content,
		resources: d.Resources,
		ready:     d.Ready,
	}
}

// Handler returns the HTTP router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /api/topics", s.handleListTopics)
	mux.HandleFunc("GET /api/topics/{id}", s.handleGetTopic)
	mux.HandleFunc("GET /api/subtopics/{id}", s.handleGetSubTopic)

	mux.HandleFunc("GET /api/activities", s.handleListActivities)
	mux.HandleFunc("POST /api/activities/{kind}/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/answer", s.handleSubmit)
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /api/sessions/{id}/live", s.handleLive)

	mux.HandleFunc("POST /api/content/quiz", s.handleQuiz)
	mux.HandleFunc("POST /api/content/worksheet", s.handleWorksheet)
	mux.HandleFunc("POST /api/content/lesson-plan", s.handleLessonPlan)
	mux.HandleFunc("POST /api/content/module", s.handleModule)
	mux.HandleFunc("POST /api/content/ia-help", s.handleIAHelp)

	mux.HandleFunc("GET /api/resources", s.handleListResources)
	mux.HandleFunc("POST /api/resources", s.handleAddResource)
	mux.HandleFunc("DELETE /api/resources/{id}", s.handleDeleteResource)
	mux.HandleFunc("POST /api/resources/import", s.handleImportResources)
	mux.HandleFunc("GET /api/resources/export", s.handleExportResources)
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	var failed []string
	for _, c := range s.ready {
		if err := c.Fn(ctx); err != nil {
			slog.Warn("readiness check failed", "check", c.Name, "error", err)
			failed = append(failed, c.Name)
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing response failed", "error", err)
	}
}

type errorBody struct {
	Error string          `json:"error"`
	State *activity.State `json:"state,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorState(w, err, nil)
}

// writeErrorState reports err, attaching the session state when the request
// reached a live session.
func writeErrorState(w http.ResponseWriter, err error, st *activity.State) {
	status := statusFor(err)
	msg := err.Error()
	switch {
	case status == http.StatusBadGateway:
		slog.Warn("content generation failed", "error", err)
		msg = "content generation failed, please try again"
	case status >= http.StatusInternalServerError:
		slog.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg, State: st})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, activity.ErrSessionNotFound),
		errors.Is(err, activity.ErrUnknownKind),
		errors.Is(err, resources.ErrNotFound),
		errors.Is(err, resources.ErrNothingToExport):
		return http.StatusNotFound
	case errors.Is(err, trainer.ErrComplete),
		errors.Is(err, trainer.ErrAdvancePending):
		return http.StatusConflict
	case errors.Is(err, activity.ErrBadAnswer),
		errors.Is(err, content.ErrInvalidRequest),
		errors.Is(err, resources.ErrInvalidResource),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, content.ErrBudgetExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, errContentDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, content.ErrInvalidContent),
		errors.Is(err, ai.ErrAllProvidersFail),
		errors.Is(err, ai.ErrNoProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes an optional JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", errBadRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
