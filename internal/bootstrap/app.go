package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"summarizer-backend/internal/acquire"
	"summarizer-backend/internal/extract"
	"summarizer-backend/internal/llm"
	openai "summarizer-backend/internal/llm/openai"
	"summarizer-backend/internal/services/health"
	"summarizer-backend/internal/shared/auth"
	"summarizer-backend/internal/shared/config"
	"summarizer-backend/internal/shared/server"
	"summarizer-backend/internal/shared/server/middleware"
	"summarizer-backend/internal/shared/storage/db"
	"summarizer-backend/internal/shared/telemetry"
	"summarizer-backend/internal/summaries"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Provider       llm.Provider
	LLM            llm.Completer
	SummariesRepo  summaries.Repo
	SummariesSvc   *summaries.Service
	SummaryHandler *summaries.Handler
}

// Options lets callers replace dependencies, mainly for tests.
type Options struct {
	// Lookup resolves provider credentials. Defaults to os.Getenv.
	Lookup func(string) string
	// LLM, when set, skips provider selection.
	LLM llm.Completer
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Options{})
}

// BuildWith is Build with overridable dependencies.
func BuildWith(cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if opts.Lookup == nil {
		opts.Lookup = os.Getenv
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := auth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTAudience, cfg.Env)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	if err := buildLLM(app, opts); err != nil {
		return nil, err
	}
	buildServices(app)

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		Verifier:       verifier,
		Health:         health.NewService(pinger),
		SummaryHandler: app.SummaryHandler,
		RateLimiter:    middleware.NewRateLimiter(nil),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildLLM(app *App, opts Options) error {
	if opts.LLM != nil {
		app.LLM = opts.LLM
		return nil
	}
	provider, err := llm.SelectProvider(llm.WithModel(opts.Lookup, app.Config.LLMModel))
	if errors.Is(err, llm.ErrNotConfigured) {
		telemetry.Warn("bootstrap.llm_not_configured", map[string]any{
			"hint": "set GROQ_API_KEY, OPENROUTER_API_KEY or OPENAI_API_KEY",
		})
		app.LLM = llm.PlaceholderClient{}
		return nil
	}
	if err != nil {
		return err
	}
	client, err := openai.NewClient(provider, app.Config.LLMTimeout)
	if err != nil {
		return err
	}
	telemetry.Info("bootstrap.llm_provider", map[string]any{"provider": provider.Name, "model": provider.Model})
	app.Provider = provider
	app.LLM = client
	return nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.SummariesRepo = &summaries.PGRepo{DB: app.DB}
	} else {
		app.SummariesRepo = summaries.NewMemoryRepo()
	}
	app.SummariesSvc = &summaries.Service{
		Repo:      app.SummariesRepo,
		Acquirer:  acquire.New(app.Config.FetchTimeout, app.Config.FetchMaxBytes),
		Extractor: &extract.Extractor{LLM: app.LLM},
		SiteURL:   app.Config.SiteURL,
	}
	app.SummaryHandler = summaries.NewHandler(app.SummariesSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
