// Package ai provides a provider-agnostic AI gateway with fallback routing.
package ai

import (
	"context"
	"encoding/json"
)

// TaskType defines the kind of content an AI request produces.
type TaskType int

const (
	TaskQuiz TaskType = iota
	TaskWorksheet
	TaskLessonPlan
	TaskLearningModule
	TaskIAHelp
)

func (t TaskType) String() string {
	switch t {
	case TaskQuiz:
		return "quiz"
	case TaskWorksheet:
		return "worksheet"
	case TaskLessonPlan:
		return "lesson_plan"
	case TaskLearningModule:
		return "learning_module"
	case TaskIAHelp:
		return "ia_help"
	default:
		return "unknown"
	}
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Schema asks a provider for JSON output conforming to a JSON Schema document.
type Schema struct {
	Name       string          `json:"name"`
	Definition json.RawMessage `json:"definition"`
}

// CompletionRequest is the input to an AI completion.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Task        TaskType  `json:"task,omitempty"`
	// Schema, when set, requests structured JSON output.
	Schema *Schema `json:"schema,omitempty"`
}

// CompletionResponse is the output from an AI completion.
type CompletionResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// TotalTokens returns the sum of input and output tokens.
func (r CompletionResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// ModelInfo describes an available model.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxTokens   int    `json:"max_tokens"`
	Description string `json:"description"`
}

// Completer produces a single completion.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// Provider is the interface all AI providers must implement.
type Provider interface {
	Completer
	Models() []ModelInfo
	HealthCheck(ctx context.Context) error
}

// schemaInstruction is appended to the system prompt for providers without a
// native structured output mode.
func schemaInstruction(s *Schema) string {
	return "Respond with a single JSON object only, no prose and no code fences. " +
		"It must validate against this JSON Schema:\n" + string(s.Definition)
}
