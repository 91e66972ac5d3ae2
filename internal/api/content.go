package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/p-n-ai/ibcs-hub/internal/content"
	"github.com/p-n-ai/ibcs-hub/internal/syllabus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errContentDisabled = errors.New("content generation is not configured")

type quizRequest struct {
	Topic string           `json:"topic"`
	Count int              `json:"count"`
	Type  content.QuizType `json:"type"`
}

type worksheetRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type topicRequest struct {
	Topic string `json:"topic"`
}

// moduleRequest names a syllabus sub-topic, or a free title.
type moduleRequest struct {
	SubTopicID   string `json:"subtopic_id"`
	Title        string `json:"title"`
	CodeExamples bool   `json:"code_examples"`
}

type iaHelpRequest struct {
	Type content.IAHelpType `json:"type"`
}

// contentRequest decodes the body and checks that generation is available.
func (s *Server) contentRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if s.content == nil {
		writeError(w, errContentDisabled)
		return false
	}
	if err := decodeBody(w, r, v); err != nil {
		writeError(w, err)
		return false
	}
	return true
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	req := quizRequest{Count: 5, Type: content.QuizMultipleChoice}
	if !s.contentRequest(w, r, &req) {
		return
	}
	quiz, err := s.content.Quiz(r.Context(), req.Topic, req.Count, req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsXLSX(r) {
		writeXLSX(w, "quiz.xlsx", func(buf *bytes.Buffer) error { return content.ExportQuizXLSX(buf, quiz) })
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (s *Server) handleWorksheet(w http.ResponseWriter, r *http.Request) {
	req := worksheetRequest{Count: 3}
	if !s.contentRequest(w, r, &req) {
		return
	}
	ws, err := s.content.Worksheet(r.Context(), req.Topic, req.Count)
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsXLSX(r) {
		writeXLSX(w, "worksheet.xlsx", func(buf *bytes.Buffer) error { return content.ExportWorksheetXLSX(buf, ws) })
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleLessonPlan(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if !s.contentRequest(w, r, &req) {
		return
	}
	plan, err := s.content.LessonPlan(r.Context(), req.Topic)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	var req moduleRequest
	if !s.contentRequest(w, r, &req) {
		return
	}

	title, codeExamples := req.Title, req.CodeExamples
	if req.SubTopicID != "" {
		topic, sub, ok := s.syllabus.FindSubTopic(req.SubTopicID)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "sub-topic not found"})
			return
		}
		if sub.Interactive() {
			writeError(w, fmt.Errorf("%w: sub-topic %s opens the %s activity", content.ErrInvalidRequest, sub.ID, sub.Activity))
			return
		}
		title = sub.Title
		codeExamples = syllabus.WantsCodeExamples(topic.ID)
	}

	mod, err := s.content.LearningModule(r.Context(), title, codeExamples)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mod)
}

func (s *Server) handleIAHelp(w http.ResponseWriter, r *http.Request) {
	var req iaHelpRequest
	if !s.contentRequest(w, r, &req) {
		return
	}
	text, err := s.content.IAHelp(r.Context(), req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"type": string(req.Type), "text": text})
}

func wantsXLSX(r *http.Request) bool {
	return r.URL.Query().Get("format") == "xlsx"
}

// writeXLSX renders into a buffer first so failures still produce a JSON error.
func writeXLSX(w http.ResponseWriter, filename string, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
