package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/lootpool/internal/adapters/http/api"
	"github.com/okian/lootpool/internal/adapters/prefetch"
	"github.com/okian/lootpool/internal/adapters/upstream"
	app "github.com/okian/lootpool/internal/app"
	"github.com/okian/lootpool/internal/config"
	"github.com/okian/lootpool/internal/domain/scoring"
	"github.com/okian/lootpool/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Upstream clients share the base URLs from configuration.
	pools := upstream.NewPoolClient(cfg.PoolBaseURL)
	categories := upstream.NewCategoryClient(cfg.CategoryBaseURL)
	progress := upstream.NewProgressClient(cfg.PoolBaseURL)
	gambits := upstream.NewGambitClient(cfg.PoolBaseURL)

	// Wire the service with the configured scoring engine and caches.
	svc := app.New(pools, categories, progress, gambits,
		app.WithLogger(loggerInstance.Named("service")),
		app.WithEngine(buildEngine(cfg)),
		app.WithPoolTTL(cfg.PoolTTL()),
		app.WithMappingTTL(cfg.MappingTTL()),
		app.WithPoolTypes(cfg.PoolTypes),
		app.WithCategories(cfg.Categories),
		app.WithResetAnchor(time.Weekday(cfg.ResetWeekday), cfg.ResetHour, cfg.ResetUTCOffsetHours),
	)

	// Background cache warmer; zero interval disables it.
	if cfg.PrefetchIntervalSeconds > 0 {
		warmer := prefetch.New(svc,
			prefetch.WithInterval(cfg.PrefetchInterval()),
			prefetch.WithLogger(loggerInstance.Named("prefetch")),
		)
		go warmer.Run(ctx)
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.RequestIDMiddleware(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildEngine folds the configured tier tables and step weights into a
// scoring engine; malformed entries are skipped.
func buildEngine(cfg *config.Config) *scoring.Engine {
	opts := make([]scoring.Option, 0, len(cfg.TierThresholds)+len(cfg.TierWeights))

	for rarity, thresholds := range cfg.TierThresholds {
		opts = append(opts, scoring.WithTierTable(rarity, thresholds))
	}
	for rarity, steps := range cfg.TierWeights {
		for step, weight := range steps {
			from, to, err := scoring.ParseStep(step)
			if err != nil {
				continue
			}
			opts = append(opts, scoring.WithWeight(rarity, from, to, weight))
		}
	}

	return scoring.New(opts...)
}
