package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/events"
	"resume-optimizer/internal/jobs"
	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/llm/gemini"
	"resume-optimizer/internal/llm/openai"
	"resume-optimizer/internal/optimizer"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/services/health"
	"resume-optimizer/internal/shared/auth"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/server"
	"resume-optimizer/internal/shared/storage/db"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Events    events.Publisher
	Verifier  *auth.Verifier
	Optimizer *optimizer.Client

	UsersRepo      users.Repo
	ResumesRepo    resumes.Repo
	UsersService   *users.Service
	ResumesService *resumes.Service
	HealthService  *health.Service

	closers []func() error
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB.Close)
	}

	verifier, err := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, cfg.IsProduction())
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Verifier = verifier

	completer, err := buildCompleter(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Optimizer = optimizer.NewClient(completer, cfg.LLMTimeout, cfg.LLMTemperature)

	app.Events = buildEvents(cfg)
	if closer, ok := app.Events.(interface{ Close() error }); ok {
		app.closers = append(app.closers, closer.Close)
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		Verifier:      verifier,
		Health:        app.HealthService,
		UserHandler:   users.NewHandler(app.UsersService),
		ResumeHandler: resumes.NewHandler(app.ResumesService),
		JobHandler:    jobs.NewHandler(app.Optimizer),
	})

	return app, nil
}

// Close releases the database and broker connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsProduction() {
			return nil, errors.New("DATABASE_URL is required")
		}
		telemetry.Info("bootstrap.memory_store", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if !cfg.IsProduction() {
			telemetry.Error("bootstrap.memory_store", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildCompleter selects the LLM provider. A missing key downgrades to the
// placeholder so every AI operation answers with its fallback payload.
func buildCompleter(ctx context.Context, cfg config.Config) (llm.Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	switch provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			break
		}
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.OpenAIBaseURL, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			break
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "", "none":
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
	telemetry.Info("bootstrap.llm_placeholder", map[string]any{"provider": provider})
	return llm.PlaceholderClient{}, nil
}

func buildEvents(cfg config.Config) events.Publisher {
	if strings.TrimSpace(cfg.AMQPURL) == "" {
		return events.Nop{}
	}
	pub, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		telemetry.Error("bootstrap.events_disabled", map[string]any{"error": err.Error()})
		return events.Nop{}
	}
	return pub
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Verifier)
	app.ResumesService = resumes.NewService(app.ResumesRepo, app.Optimizer, app.Events)
	app.HealthService = health.NewService(app.DB)
}
