package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/p-n-ai/ibcs-hub/internal/activity"
	"github.com/p-n-ai/ibcs-hub/internal/ai"
	"github.com/p-n-ai/ibcs-hub/internal/api"
	"github.com/p-n-ai/ibcs-hub/internal/content"
	"github.com/p-n-ai/ibcs-hub/internal/events"
	"github.com/p-n-ai/ibcs-hub/internal/platform/cache"
	"github.com/p-n-ai/ibcs-hub/internal/platform/config"
	"github.com/p-n-ai/ibcs-hub/internal/platform/database"
	"github.com/p-n-ai/ibcs-hub/internal/resources"
	"github.com/p-n-ai/ibcs-hub/internal/syllabus"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func run(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	go a.hub.Run(ctx, sweepInterval)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	return nil
}

// app is the wired server with everything that needs closing on exit.
type app struct {
	handler http.Handler
	hub     *activity.Hub
	closers []func()
}

func (a *app) close() {
	a.hub.Close()
	a.closeAll()
}

// newApp connects the optional backends and builds the HTTP handler. Without a
// database, resources live in memory and activity events are dropped; without
// Redis, generated content is cached in memory.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	var (
		store        resources.Store = resources.NewMemoryStore()
		eventLog     events.Logger   = events.Nop{}
		contentCache cache.Store     = cache.NewMemory()
		checks       []api.Check
	)

	if cfg.Database.Enabled {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := db.Migrate(ctx); err != nil {
			a.closeAll()
			return nil, err
		}
		pgStore, err := resources.NewPostgresStore(db.Pool)
		if err != nil {
			a.closeAll()
			return nil, err
		}
		store = pgStore
		eventLog = events.NewPostgres(db.Pool)
		checks = append(checks, api.Check{Name: "database", Fn: db.HealthCheck})
		slog.Info("database connected")
	}

	if cfg.Cache.Enabled {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			a.closeAll()
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		a.closers = append(a.closers, func() { _ = c.Close() })
		contentCache = c
		checks = append(checks, api.Check{Name: "cache", Fn: c.HealthCheck})
		slog.Info("cache connected")
	}

	loader, err := syllabus.NewLoader(cfg.SyllabusPath)
	if err != nil {
		a.closeAll()
		return nil, fmt.Errorf("load syllabus: %w", err)
	}

	var gen *content.Generator
	router := newAIRouter(cfg.AI)
	if router.HasProvider() {
		gen = content.NewGenerator(router,
			content.WithCache(contentCache, cfg.Cache.TTL),
			content.WithBudget(newBudget(cfg.AI.TokenBudget)),
		)
		slog.Info("content generation enabled", "providers", router.Names())
	} else {
		slog.Warn("no AI provider configured, content generation disabled")
	}

	a.hub = activity.NewHub(activity.Config{
		AdvanceDelay: cfg.Activity.AdvanceDelay,
		SessionTTL:   cfg.Activity.SessionTTL,
		Events:       eventLog,
	})

	a.handler = api.New(api.Deps{
		Hub:       a.hub,
		Syllabus:  loader,
		Content:   gen,
		Resources: store,
		Ready:     checks,
	}).Handler()
	return a, nil
}

func (a *app) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// newAIRouter registers every configured provider in fallback order.
func newAIRouter(cfg config.AIConfig) *ai.Router {
	router := ai.NewRouter()
	if cfg.OpenAI.APIKey != "" {
		router.Register("openai", ai.NewOpenAIProvider(cfg.OpenAI.APIKey))
	}
	if cfg.Anthropic.APIKey != "" {
		p, err := ai.NewAnthropicProvider(cfg.Anthropic.APIKey)
		if err != nil {
			slog.Warn("skipping anthropic provider", "error", err)
		} else {
			router.Register("anthropic", p)
		}
	}
	if cfg.Google.APIKey != "" {
		router.Register("google", ai.NewGoogleProvider(cfg.Google.APIKey))
	}
	if cfg.DeepSeek.APIKey != "" {
		router.Register("deepseek", ai.NewDeepSeekProvider(cfg.DeepSeek.APIKey))
	}
	if cfg.OpenRouter.APIKey != "" {
		router.Register("openrouter", ai.NewOpenRouterProvider(cfg.OpenRouter.APIKey))
	}
	if cfg.Ollama.Enabled {
		router.Register("ollama", ai.NewOllamaProvider(cfg.Ollama.URL))
	}
	return router
}

// newBudget applies the same token cap to every content kind; 0 is unlimited.
func newBudget(tokens int) *ai.InMemoryBudget {
	budget := ai.NewInMemoryBudget()
	for _, t := range []ai.TaskType{ai.TaskQuiz, ai.TaskWorksheet, ai.TaskLessonPlan, ai.TaskLearningModule, ai.TaskIAHelp} {
		budget.SetBudget(t.String(), int64(tokens))
	}
	return budget
}
