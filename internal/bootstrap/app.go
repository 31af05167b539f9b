package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "outreach-backend/internal/auth"
	"outreach-backend/internal/emails"
	"outreach-backend/internal/history"
	"outreach-backend/internal/jobs"
	"outreach-backend/internal/llm"
	"outreach-backend/internal/llm/gemini"
	openai "outreach-backend/internal/llm/openai"
	"outreach-backend/internal/outreach"
	"outreach-backend/internal/portfolio"
	"outreach-backend/internal/services/health"
	sharedauth "outreach-backend/internal/shared/auth"
	"outreach-backend/internal/shared/config"
	"outreach-backend/internal/shared/server"
	"outreach-backend/internal/shared/server/middleware"
	"outreach-backend/internal/shared/storage/db"
	"outreach-backend/internal/shared/storage/object"
	localstore "outreach-backend/internal/shared/storage/object/local"
	s3store "outreach-backend/internal/shared/storage/object/s3"
	"outreach-backend/internal/shared/telemetry"
	"outreach-backend/internal/users"
	"outreach-backend/internal/webfetch"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	PageCache    *webfetch.RedisCache
	Fetcher      *webfetch.Fetcher
	Extractor    *jobs.Extractor
	Matcher      *portfolio.Matcher
	Composer     *emails.Composer
	HistoryRepo  history.Repo
	UsersRepo    users.Repo
	UsersService *users.Service
	Orchestrator *outreach.Orchestrator
	Signer       *sharedauth.Signer

	closers []io.Closer
}

// Pipeline is the set of components the outreach pipeline runs on. The CLI
// builds it without the HTTP layer.
type Pipeline struct {
	Fetcher   *webfetch.Fetcher
	PageCache *webfetch.RedisCache
	Extractor *jobs.Extractor
	Matcher   *portfolio.Matcher
	Composer  *emails.Composer
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	signer, err := sharedauth.NewSigner(cfg.JWTSecret, cfg.JWTTTL, cfg.Env)
	if err != nil {
		return nil, err
	}

	pipeline, err := BuildPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Store:     store,
		PageCache: pipeline.PageCache,
		Fetcher:   pipeline.Fetcher,
		Extractor: pipeline.Extractor,
		Matcher:   pipeline.Matcher,
		Composer:  pipeline.Composer,
		Signer:    signer,
	}
	if pipeline.PageCache != nil {
		app.closers = append(app.closers, pipeline.PageCache)
	}

	if sqlDB != nil {
		app.HistoryRepo = &history.PGRepo{DB: sqlDB}
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		app.HistoryRepo = history.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo, signer)
	app.Orchestrator = outreach.NewOrchestrator(outreach.Deps{
		Extractor: app.Extractor,
		Matcher:   app.Matcher,
		Composer:  app.Composer,
		History:   app.HistoryRepo,
		Styles:    outreach.UserStyles{Users: app.UsersService},
	})

	checks := map[string]health.Pinger{}
	if sqlDB != nil {
		checks["database"] = sqlDB
	}
	if pipeline.PageCache != nil {
		checks["pageCache"] = pipeline.PageCache
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Verifier:        signer,
		Limiter:         middleware.NewRateLimiter(nil),
		Health:          health.NewService(checks),
		UserHandler:     users.NewHandler(app.UsersService),
		OutreachHandler: outreach.NewHandler(app.Orchestrator, history.NewExporter(store)),
		GoogleAuth: googleauth.NewGoogleService(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			cfg.UIRedirectURL,
			app.UsersService,
		),
	})

	return app, nil
}

// Close releases connections held by the app.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// BuildPipeline wires the fetcher, model clients and portfolio index from cfg.
func BuildPipeline(ctx context.Context, cfg config.Config) (*Pipeline, error) {
	var cache webfetch.Cache
	var redisCache *webfetch.RedisCache
	if strings.TrimSpace(cfg.RedisURL) != "" {
		rc, err := webfetch.NewRedisCache(ctx, cfg.RedisURL, cfg.PageCacheTTL)
		if err != nil {
			if !config.IsDevLike(cfg.Env) {
				return nil, err
			}
			telemetry.Warn("bootstrap.page_cache.disabled", map[string]any{"error": err.Error()})
		} else {
			redisCache = rc
			cache = rc
		}
	}

	fetcher := webfetch.New(&http.Client{}, cache, webfetch.Options{
		Timeout:  cfg.FetchTimeout,
		MaxChars: cfg.FetchMaxChars,
	})

	extractModel, emailModel, err := buildModels(ctx, cfg)
	if err != nil {
		return nil, err
	}

	embedder, err := buildEmbedder(ctx, cfg)
	if err != nil {
		return nil, err
	}
	index := portfolio.NewIndex(embedder)
	index.Add(portfolio.SeedCatalog()...)

	return &Pipeline{
		Fetcher:   fetcher,
		PageCache: redisCache,
		Extractor: jobs.NewExtractor(fetcher, extractModel, cfg.LLMTimeout),
		Matcher:   portfolio.NewMatcher(index, cfg.SearchTimeout),
		Composer:  emails.NewComposer(emailModel, cfg.LLMTimeout),
	}, nil
}

// buildModels returns the extraction model (JSON output) and the email model (plain text).
func buildModels(ctx context.Context, cfg config.Config) (llm.Completer, llm.Completer, error) {
	switch cfg.LLMProvider {
	case "openai":
		extract, err := openai.NewPromptClient(cfg.OpenAIAPIKey, cfg.LLMModel, openai.WithJSONOutput())
		if err != nil {
			return nil, nil, err
		}
		email, err := openai.NewPromptClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, nil, err
		}
		return extract, email, nil
	case "gemini":
		extract, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, gemini.WithJSONOutput())
		if err != nil {
			return nil, nil, err
		}
		email, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, nil, err
		}
		return extract, email, nil
	default:
		telemetry.Info("bootstrap.llm.disabled", map[string]any{"reason": "LLM_PROVIDER=none; using fallback templates"})
		return llm.PlaceholderClient{}, llm.PlaceholderClient{}, nil
	}
}

func buildEmbedder(ctx context.Context, cfg config.Config) (portfolio.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		return openai.NewEmbeddingClient(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
	case "gemini":
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, gemini.WithEmbeddingModel(cfg.EmbeddingModel))
	default:
		return portfolio.HashEmbedder{}, nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Info("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty; using in-memory repositories"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}
