package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/yourusername/aoc-web/internal/api"
	"github.com/yourusername/aoc-web/internal/auth"
	"github.com/yourusername/aoc-web/internal/database"
	"github.com/yourusername/aoc-web/internal/health"
	"github.com/yourusername/aoc-web/internal/metrics"
	"github.com/yourusername/aoc-web/internal/repository"
	"github.com/yourusername/aoc-web/internal/scheduler"
	"github.com/yourusername/aoc-web/internal/service"
)

var summarizeOnStart bool

func init() {
	serveCmd.Flags().BoolVar(&summarizeOnStart, "summarize-on-start", false, "Regenerate summaries.years once before the first scheduled run")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Long:  `Serves the benchmark, participant and summary endpoints and, when a schedule is configured, regenerates summaries periodically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLog, err := loadServerConfig(ctx)
	if err != nil {
		return err
	}
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("aoc-web starting")

	verifier, err := auth.NewVerifier(cfg.Auth.TokenHash)
	if err != nil {
		return fmt.Errorf("invalid auth.token_hash: %w", err)
	}

	db, err := database.Initialize(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	summaries := service.NewSummaryService(repos.Benchmark, repos.Summary, cfg.Summaries.CacheTTL(), appLog)

	sched := scheduler.NewScheduler(summaries, appLog)
	if cfg.Summaries.Schedule != "" {
		if err := sched.ScheduleSummaries(cfg.Summaries.Schedule, cfg.Summaries.Years); err != nil {
			return fmt.Errorf("failed to schedule summaries: %w", err)
		}
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
		appLog.WithField("next_run", sched.GetNextRun()).Info("Summary generation scheduled")
	}
	if summarizeOnStart {
		go sched.RunNow(cfg.Summaries.Years)
	}

	healthHandler := health.NewHandler(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Logger:      appLog,
		DB:          db,
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	server := api.NewServer(api.Dependencies{
		Benchmarks:   repos.Benchmark,
		Participants: repos.Participant,
		Summaries:    summaries,
		Auth:         verifier,
		Health:       healthHandler,
		Logger:       appLog,
		Limiter:      limiter,
		MetricsPath:  metricsPath,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.WithField("address", httpServer.Addr).Info("API server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	healthHandler.SetReady(true)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info("Shutdown signal received")
	healthHandler.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Graceful shutdown failed")
		return err
	}

	hits, misses := summaries.CacheStats()
	appLog.WithFields(logrus.Fields{"cache_hits": hits, "cache_misses": misses}).Info("aoc-web stopped")
	return nil
}
