package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/genoslab/docregress/internal/config"
	"github.com/genoslab/docregress/internal/core/ports"
	"github.com/genoslab/docregress/internal/core/usecase"
	"github.com/genoslab/docregress/internal/infrastructure/discovery"
	"github.com/genoslab/docregress/internal/infrastructure/extractor/httpsvc"
	"github.com/genoslab/docregress/internal/infrastructure/extractor/markdown"
	"github.com/genoslab/docregress/internal/infrastructure/extractor/pdflocal"
	"github.com/genoslab/docregress/internal/infrastructure/extractor/routing"
	"github.com/genoslab/docregress/internal/infrastructure/queue/nats"
	"github.com/genoslab/docregress/internal/infrastructure/repository/postgres"
	"github.com/genoslab/docregress/internal/infrastructure/resilience"
	"github.com/genoslab/docregress/internal/infrastructure/store/localfs"
)

type App struct {
	Config config.Config

	Store     ports.BaselineStore
	Extractor ports.Extractor
	Scanner   ports.SampleSource
	SampleUC  ports.SampleEvaluator
	BatchUC   ports.BatchEvaluator

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	store, err := localfs.New(cfg.BaselineDir, cfg.RebaseDir)
	if err != nil {
		return nil, fmt.Errorf("init baseline store: %w", err)
	}

	extractor, err := buildExtractor(cfg)
	if err != nil {
		return nil, err
	}

	var history ports.RunHistory
	closeFn := func() {}
	if cfg.PostgresDSN != "" {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewRunRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		history = repo
		closeFn = func() { _ = db.Close() }
	}

	policies, err := config.LoadPolicies(cfg.ChecksConfigPath)
	if err != nil {
		return nil, err
	}

	evaluator := usecase.NewEvaluateUseCase(store, extractor, history, policies, logger)

	return &App{
		Config:    cfg,
		Store:     store,
		Extractor: extractor,
		Scanner:   discovery.New(),
		SampleUC:  evaluator,
		BatchUC:   evaluator,
		closeFn:   closeFn,
	}, nil
}

// NewWorker wires the CLI dependencies plus the evaluation queue.
func NewWorker(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, ports.EvaluationQueue, error) {
	app, err := New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		app.Close()
		return nil, nil, fmt.Errorf("init evaluation queue: %w", err)
	}

	prev := app.closeFn
	app.closeFn = func() {
		queue.Close()
		prev()
	}
	return app, queue, nil
}

func buildExtractor(cfg config.Config) (ports.Extractor, error) {
	local := map[string]ports.Extractor{
		"md": markdown.New(),
	}

	switch cfg.ExtractorMode {
	case "local":
		local["pdf"] = pdflocal.New()
		return routing.New(local, nil), nil
	case "remote":
		executor := resilience.NewExecutor(resilience.Config{
			RateLimitPerSecond: 4,
			RateLimitBurst:     2,
		})
		remote := httpsvc.New(cfg.ExtractorURL, httpsvc.Options{
			Timeout:  time.Duration(cfg.ExtractorTimeoutSeconds) * time.Second,
			Executor: executor,
		})
		return routing.New(local, remote), nil
	default:
		return nil, fmt.Errorf("unknown extractor mode %q", cfg.ExtractorMode)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
