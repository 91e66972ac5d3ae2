package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/ibcs-hub/internal/activity"
	"github.com/p-n-ai/ibcs-hub/internal/syllabus"
)

const liveWriteTimeout = 5 * time.Second

// topicSummary is a topic without its sub-topics or notes.
type topicSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Color         string `json:"color"`
	SubTopicCount int    `json:"subtopic_count"`
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics := s.syllabus.AllTopics()
	out := make([]topicSummary, 0, len(topics))
	for _, t := range topics {
		out = append(out, topicSummary{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			Color:         t.Color,
			SubTopicCount: len(t.SubTopics),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	topic, ok := s.syllabus.GetTopic(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "topic not found"})
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

type subTopicResponse struct {
	TopicID      string            `json:"topic_id"`
	SubTopic     syllabus.SubTopic `json:"subtopic"`
	CodeExamples bool              `json:"code_examples"`
}

func (s *Server) handleGetSubTopic(w http.ResponseWriter, r *http.Request) {
	topic, sub, ok := s.syllabus.FindSubTopic(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "sub-topic not found"})
		return
	}
	writeJSON(w, http.StatusOK, subTopicResponse{
		TopicID:      topic.ID,
		SubTopic:     sub,
		CodeExamples: syllabus.WantsCodeExamples(topic.ID),
	})
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, activity.Kinds())
}

type createSessionRequest struct {
	Seed string `json:"seed"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	st, err := s.hub.Create(activity.Kind(r.PathValue("kind")), req.Seed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.hub.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, fmt.Errorf("%w: reading body: %v", errBadRequest, err))
		return
	}
	st, err := s.hub.Submit(r.PathValue("id"), raw)
	if err != nil {
		if errors.Is(err, activity.ErrSessionNotFound) {
			writeError(w, err)
			return
		}
		writeErrorState(w, err, &st)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	st, err := s.hub.Reset(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.hub.Remove(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLive streams the session state over a websocket after every
// transition, including delayed advances. The socket closes normally when the
// session is removed or expires.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	updates, cancel, err := s.hub.Subscribe(id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cancel()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "session_id", id, "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	// Clients only listen; CloseRead handles their control frames.
	ctx := conn.CloseRead(r.Context())
	slog.Debug("live session connected", "session_id", id)

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok {
				_ = conn.Close(websocket.StatusNormalClosure, "session closed")
				return
			}
			if err := writeState(ctx, conn, st); err != nil {
				slog.Debug("live session write failed", "session_id", id, "error", err)
				return
			}
		}
	}
}

func writeState(ctx context.Context, conn *websocket.Conn, st activity.State) error {
	ctx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, st)
}
