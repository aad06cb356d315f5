// Package bootstrap wires configuration into the analysis service and its
// HTTP host.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/analysis"
	"ats-checker/internal/audit"
	"ats-checker/internal/enhance"
	"ats-checker/internal/enhance/gemini"
	"ats-checker/internal/enhance/openai"
	"ats-checker/internal/extract"
	"ats-checker/internal/keywords"
	"ats-checker/internal/matching"
	"ats-checker/internal/scoring"
	"ats-checker/internal/shared/config"
	"ats-checker/internal/shared/server"
	"ats-checker/internal/shared/storage/db"
	"ats-checker/internal/shared/storage/object"
	localstore "ats-checker/internal/shared/storage/object/local"
	s3store "ats-checker/internal/shared/storage/object/s3"
	"ats-checker/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Registry *keywords.Registry
	Store    object.Reader
	Service  *analysis.Service
	Handler  *analysis.Handler

	closers []func() error
}

// Build prepares every dependency and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	if err := app.buildRegistry(ctx); err != nil {
		app.Close()
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	enh, err := app.buildEnhancer(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	svc, err := newService(cfg, app.Registry, enh)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Service = svc
	app.Handler = analysis.NewHandler(svc, store, cfg.MaxUploadBytes, cfg.AllowedExtensions)
	app.Router = server.NewRouter(cfg, app.Handler)
	return app, nil
}

// Close releases the database and provider clients.
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

func (a *App) buildRegistry(ctx context.Context) error {
	source := a.Config.KeywordSource
	if source == "postgres" {
		reg, err := a.loadRegistryFromDB(ctx)
		if err == nil {
			a.Registry = reg
			logRegistry(reg, source)
			return nil
		}
		if !isDevLike(a.Config.Env) {
			return err
		}
		log.Printf("bootstrap: postgres keyword catalog unavailable; using embedded catalog: %v", err)
		source = "embedded"
	}

	reg, err := keywords.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load embedded catalog: %w", err)
	}
	a.Registry = reg
	logRegistry(reg, source)
	return nil
}

func (a *App) loadRegistryFromDB(ctx context.Context) (*keywords.Registry, error) {
	if a.DB == nil {
		sqlDB, err := db.Connect(ctx, a.Config.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, err
		}
		a.DB = sqlDB
		a.closers = append(a.closers, sqlDB.Close)
	}
	if err := db.RunMigrations(ctx, a.DB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return keywords.LoadFromDB(ctx, a.DB)
}

func logRegistry(reg *keywords.Registry, source string) {
	telemetry.Info("registry.loaded", map[string]any{
		"source":   source,
		"version":  reg.Version(),
		"profiles": len(reg.Profiles()),
	})
}

func (a *App) buildEnhancer(ctx context.Context) (*enhance.Enhancer, error) {
	provider, closer, err := buildProvider(ctx, a.Config)
	if err != nil {
		if errors.Is(err, enhance.ErrAIServiceUnavailable) {
			log.Printf("bootstrap: AI suggestions disabled: %v", err)
			return enhance.New(nil, a.Config.AITimeout), nil
		}
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	return enhance.New(provider, a.Config.AITimeout), nil
}

func buildProvider(ctx context.Context, cfg config.Config) (enhance.SuggestionProvider, func() error, error) {
	switch cfg.AIProvider {
	case "openai":
		c, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.AIModel)
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case "gemini":
		c, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.AIModel)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, nil
	}
}

func buildStore(ctx context.Context, cfg config.Config) (object.Reader, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Config{
			Region:    cfg.AWSRegion,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, nil
	}
}

func newService(cfg config.Config, reg *keywords.Registry, enh *enhance.Enhancer) (*analysis.Service, error) {
	match := matching.DefaultPolicy()
	if cfg.StemFactor > 0 {
		match.StemFactor = cfg.StemFactor
	}
	if err := match.Validate(); err != nil {
		return nil, err
	}

	score := scoring.DefaultPolicy()
	if cfg.KeywordWeight > 0 || cfg.FormattingWeight > 0 {
		score.KeywordWeight = cfg.KeywordWeight
		score.FormattingWeight = cfg.FormattingWeight
	}
	if err := score.Validate(); err != nil {
		return nil, err
	}

	minWords := cfg.MinWords
	if minWords <= 0 {
		minWords = extract.DefaultMinWords
	}
	return &analysis.Service{
		Extractor: extract.New(minWords),
		Registry:  reg,
		Matcher:   matching.NewEngine(match),
		Auditor:   audit.New(audit.Config{}),
		Scoring:   score,
		Enhancer:  enh,
		MaxBytes:  cfg.MaxUploadBytes,
	}, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
