package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/p-n-ai/ibcs-hub/internal/ai"
	"github.com/p-n-ai/ibcs-hub/internal/platform/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantDebug bool
		wantWarn  bool
		wantJSON  bool
	}{
		{"info json", config.LogConfig{Level: "info", Format: "json"}, false, true, true},
		{"debug text", config.LogConfig{Level: "DEBUG", Format: "text"}, true, true, false},
		{"error", config.LogConfig{Level: "error", Format: "json"}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.cfg)
			ctx := context.Background()

			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := logger.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("warn enabled = %v, want %v", got, tt.wantWarn)
			}

			logger.Error("boom")
			if got := strings.HasPrefix(buf.String(), "{"); got != tt.wantJSON {
				t.Errorf("json output = %v, want %v: %q", got, tt.wantJSON, buf.String())
			}
		})
	}
}

func TestNewAIRouter(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AIConfig
		want []string
	}{
		{"none", config.AIConfig{}, nil},
		{"openai and ollama", config.AIConfig{
			OpenAI: config.OpenAIConfig{APIKey: "sk-test"},
			Ollama: config.OllamaConfig{Enabled: true, URL: "http://localhost:11434"},
		}, []string{"openai", "ollama"}},
		{"all keyed providers", config.AIConfig{
			OpenAI:     config.OpenAIConfig{APIKey: "a"},
			Anthropic:  config.AnthropicConfig{APIKey: "b"},
			Google:     config.GoogleConfig{APIKey: "c"},
			DeepSeek:   config.DeepSeekConfig{APIKey: "d"},
			OpenRouter: config.OpenRouterConfig{APIKey: "e"},
		}, []string{"openai", "anthropic", "google", "deepseek", "openrouter"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAIRouter(tt.cfg)
			got := router.Names()
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Names() = %v, want %v", got, tt.want)
			}
			if router.HasProvider() != (len(tt.want) > 0) {
				t.Errorf("HasProvider() = %v", router.HasProvider())
			}
		})
	}
}

func TestNewBudget(t *testing.T) {
	budget := newBudget(100)
	if err := budget.Record("quiz", 100); err != nil {
		t.Fatal(err)
	}
	if ok, _ := budget.Check("quiz"); ok {
		t.Error("Check(quiz) = true, want exhausted")
	}
	if ok, _ := budget.Check("worksheet"); !ok {
		t.Error("Check(worksheet) = false, want independent scope")
	}

	unlimited := newBudget(0)
	_ = unlimited.Record("quiz", 1_000_000)
	if ok, _ := unlimited.Check("quiz"); !ok {
		t.Error("Check(quiz) = false, want unlimited")
	}
}

func TestNewBudget_FromEnv(t *testing.T) {
	tests := []struct {
		env       string
		wantLimit bool
	}{
		{"", false},
		{"0", false},
		{"250", true},
	}
	for _, tt := range tests {
		t.Run("budget="+tt.env, func(t *testing.T) {
			t.Setenv("IBCS_AI_TOKEN_BUDGET", tt.env)
			cfg, err := config.Load()
			if err != nil {
				t.Fatal(err)
			}
			budget := newBudget(cfg.AI.TokenBudget)
			scope := ai.TaskLessonPlan.String()
			_ = budget.Record(scope, 300)
			if ok, _ := budget.Check(scope); ok == tt.wantLimit {
				t.Errorf("Check(%s) = %v with IBCS_AI_TOKEN_BUDGET=%q, want limited %v", scope, ok, tt.env, tt.wantLimit)
			}
		})
	}
}

func TestNewApp_InMemory(t *testing.T) {
	cfg := &config.Config{
		Server:       config.ServerConfig{Port: 8080, Host: "127.0.0.1"},
		Cache:        config.CacheConfig{TTL: time.Hour},
		Activity:     config.ActivityConfig{AdvanceDelay: 0, SessionTTL: time.Hour},
		Log:          config.LogConfig{Level: "info", Format: "json"},
		SyllabusPath: "../../content/syllabus",
	}

	a, err := newApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", "", http.StatusOK},
		{"topics", http.MethodGet, "/api/topics", "", http.StatusOK},
		{"bubble sort from shipped syllabus", http.MethodGet, "/api/subtopics/b2-4-3", "", http.StatusOK},
		{"create session", http.MethodPost, "/api/activities/binary-search-tree/sessions", "", http.StatusCreated},
		{"content disabled without provider", http.MethodPost, "/api/content/quiz", `{"topic":"Sorting"}`, http.StatusServiceUnavailable},
		{"resources start empty", http.MethodGet, "/api/resources/export", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			a.handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
