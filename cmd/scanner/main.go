package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dharmasatrya/flightscanner/internal/cache"
	"github.com/dharmasatrya/flightscanner/internal/config"
	"github.com/dharmasatrya/flightscanner/internal/fallback"
	"github.com/dharmasatrya/flightscanner/internal/history"
	"github.com/dharmasatrya/flightscanner/internal/models"
	"github.com/dharmasatrya/flightscanner/internal/orchestrator"
	"github.com/dharmasatrya/flightscanner/internal/output"
	"github.com/dharmasatrya/flightscanner/internal/ratelimit"
	"github.com/dharmasatrya/flightscanner/internal/server"
	"github.com/dharmasatrya/flightscanner/internal/sources"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot search")
	demoMode := flag.Bool("demo", false, "use the synthetic data source for every site")
	outPath := flag.String("out", "", "where to save the result JSON (default: timestamped file)")
	showHistory := flag.Int("history", 0, "print the N most recent saved reports and exit")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *demoMode {
		cfg.Sources.DemoMode = true
	}

	if *showHistory > 0 {
		printHistory(cfg, *showHistory)
		return
	}

	orch, err := buildOrchestrator(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize sources: %v", err)
	}

	if *serve {
		runServer(cfg, orch, logger)
		return
	}

	runSearch(cfg, orch, logger, *outPath)
}

func buildOrchestrator(cfg *config.Config, logger *zap.Logger) (*orchestrator.Orchestrator, error) {
	registry := sources.DefaultRegistry()
	if cfg.Sources.DemoMode {
		registry = sources.DemoRegistry()
		logger.Info("demo mode: all sources served by the synthetic generator")
	}

	srcCfg := sources.Config{
		Headless:   cfg.Browser.Headless,
		UserAgent:  cfg.Browser.UserAgent,
		MaxResults: cfg.Search.MaxResults,
		Logger:     logger,
	}

	var chain []sources.Source
	for _, name := range cfg.Chain() {
		src, err := registry.New(name, srcCfg)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
		chain = append(chain, src)
	}
	logger.Info("initialized source chain", zap.Int("sources", len(chain)))

	limiter := ratelimit.NewSourceLimiterWithDefaults()
	limiter.SetSourceLimit("kayak", 0.5, 2)
	limiter.SetSourceLimit("expedia", 0.5, 2)
	limiter.SetSourceLimit("booking", 1, 3)

	return orchestrator.New(orchestrator.Config{
		Chain: chain,
		Controller: fallback.Config{
			MaxAttempts:    cfg.Settings.MaxAttempts,
			AttemptTimeout: cfg.Settings.AttemptTimeout.Std(),
			Backoff:        fallback.BackoffPolicy(cfg.Settings.Backoff),
			BackoffDelay:   cfg.Settings.BackoffDelay.Std(),
			Limiter:        limiter,
		},
		Policy: orchestrator.FallbackPolicy(cfg.Settings.FallbackPolicy),
	}, logger), nil
}

func runSearch(cfg *config.Config, orch *orchestrator.Orchestrator, logger *zap.Logger, outPath string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := orch.Search(ctx, cfg.Search)
	if err != nil {
		log.Fatalf("Invalid search request: %v", err)
	}

	output.Render(os.Stdout, report)

	if report.Status != models.StatusCompleted {
		return
	}

	saved, err := output.SaveJSON(report, outPath)
	if err != nil {
		logger.Error("failed to save results", zap.Error(err))
	} else {
		fmt.Printf("\nResults saved to: %s\n", saved)
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Error("failed to open history store", zap.Error(err))
			return
		}
		defer store.Close()
		if err := store.Put(report); err != nil {
			logger.Error("failed to record history", zap.Error(err))
		}
	}
}

func runServer(cfg *config.Config, orch *orchestrator.Orchestrator, logger *zap.Logger) {
	var reportCache cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.Cache.RedisHost,
			Port: cfg.Cache.RedisPort,
			TTL:  cfg.Cache.TTL.Std(),
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		reportCache = redisCache
		logger.Info("redis cache enabled",
			zap.String("host", cfg.Cache.RedisHost),
			zap.String("port", cfg.Cache.RedisPort))
	} else {
		reportCache = cache.NewNoOpCache()
		logger.Info("cache disabled")
	}
	defer reportCache.Close()

	srv := server.New(orch, reportCache, logger)
	logger.Info("starting flight scanner server", zap.String("port", cfg.Server.Port))
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func printHistory(cfg *config.Config, limit int) {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	reports, err := store.List(limit)
	if err != nil {
		log.Fatalf("Failed to list history: %v", err)
	}
	if len(reports) == 0 {
		fmt.Println("No saved searches.")
		return
	}
	for _, r := range reports {
		winner := r.WinningSource
		if winner == "" {
			winner = "none"
		}
		fmt.Printf("%s  %s -> %s  %d offers  via %s\n",
			r.SearchedAt.Format("2006-01-02 15:04:05"),
			r.Request.Origin, r.Request.Destination, len(r.Offers), winner)
	}
}
