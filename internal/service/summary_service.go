// Package service holds the workflows that combine repositories.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/aoc-web/internal/logger"
	"github.com/yourusername/aoc-web/internal/metrics"
	"github.com/yourusername/aoc-web/internal/models"
	"github.com/yourusername/aoc-web/internal/repository"
)

// SummaryService generates leaderboard summaries and serves cached reads of them.
//
// Generate flushes the read cache of this process only. Summaries written by
// `aoc-web summarize` or by another replica become visible here once the
// cached entries expire, so reads can lag by up to the cache TTL.
type SummaryService struct {
	benchmarks repository.BenchmarkRepository
	summaries  repository.SummaryRepository
	cache      *SummaryCache
	audit      *logger.AuditLogger
	logger     logrus.FieldLogger
	mu         sync.Mutex
}

// NewSummaryService creates a new summary service. A zero cacheTTL disables the read cache.
func NewSummaryService(
	benchmarks repository.BenchmarkRepository,
	summaries repository.SummaryRepository,
	cacheTTL time.Duration,
	log logrus.FieldLogger,
) *SummaryService {
	s := &SummaryService{
		benchmarks: benchmarks,
		summaries:  summaries,
		audit:      logger.NewAuditLogger(log),
		logger:     log.WithField("component", "summaries"),
	}
	if cacheTTL > 0 {
		s.cache = NewSummaryCache(cacheTTL)
	}
	return s
}

// Generate rebuilds every summary of year from the year's complete benchmark
// set and returns the written keys. A year without benchmarks writes nothing.
// Runs are serialized so two regenerations never interleave their upserts.
func (s *SummaryService) Generate(ctx context.Context, year int, trigger string) ([]models.SummaryKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	log := s.logger.WithFields(logrus.Fields{"year": year, "trigger": trigger})

	benchmarks, err := s.benchmarks.List(ctx, models.BenchmarkFilter{Year: &year})
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmarks for %d: %w", year, err)
	}

	if len(benchmarks) == 0 {
		log.Info("No benchmarks found, nothing to summarize")
		return []models.SummaryKey{}, nil
	}

	summaries, err := models.SummariesFromBenchmarks(benchmarks)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize benchmarks for %d: %w", year, err)
	}

	keys, err := s.summaries.BatchCreateOrUpdate(ctx, summaries)
	if err != nil {
		return nil, fmt.Errorf("failed to store summaries for %d: %w", year, err)
	}

	if s.cache != nil {
		s.cache.Flush()
	}

	duration := time.Since(start)
	metrics.RecordSummaryGeneration(len(keys), duration.Seconds())
	s.audit.LogSummariesGenerated(year, len(benchmarks), len(keys), trigger)
	log.WithFields(logrus.Fields{
		"benchmarks":  len(benchmarks),
		"summaries":   len(keys),
		"duration_ms": duration.Milliseconds(),
	}).Debug("Summary generation complete")

	return keys, nil
}

// List returns the summaries matching filter
func (s *SummaryService) List(ctx context.Context, filter models.SummaryFilter) ([]*models.Summary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetList(filter); ok {
			return cached, nil
		}
	}

	summaries, err := s.summaries.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetList(filter, summaries)
	}
	return summaries, nil
}

// Get returns the summary of participant for year
func (s *SummaryService) Get(ctx context.Context, year int, participant string) (*models.Summary, error) {
	key := models.SummaryKey{Year: year, Participant: participant}
	if s.cache != nil {
		if cached, ok := s.cache.GetOne(key); ok {
			return cached, nil
		}
	}

	summary, err := s.summaries.Get(ctx, year, participant)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetOne(key, summary)
	}
	return summary, nil
}

// CacheStats returns the read cache hit and miss counts
func (s *SummaryService) CacheStats() (hits, misses uint64) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}
