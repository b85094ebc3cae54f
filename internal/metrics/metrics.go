// Package metrics provides the centralized Prometheus metrics registry for the benchmark tracker.
package metrics

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourusername/aoc-web/internal/models"
)

const namespace = "aoc"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Store metrics
var (
	StoreQueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_queries_total",
		Help:      "Total number of store queries by table, operation and status",
	}, []string{"table", "operation", "status"})

	StoreQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_query_duration_seconds",
		Help:      "Duration of store queries in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"table", "operation"})

	UpsertBatchRows = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upsert_batch_rows",
		Help:      "Number of rows written per batch upsert",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"table"})
)

// Summary generation metrics
var (
	SummariesGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summaries_generated_total",
		Help:      "Total number of summaries written by generation runs",
	})

	SummaryGenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summary_generation_duration_seconds",
		Help:      "Duration of summary generation runs in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})

	SummaryCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "summary_cache_hit_ratio",
		Help:      "Hit ratio of the summary read cache",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(StoreQueriesTotal)
		registry.MustRegister(StoreQueryDuration)
		registry.MustRegister(UpsertBatchRows)

		registry.MustRegister(SummariesGeneratedTotal)
		registry.MustRegister(SummaryGenerationDuration)
		registry.MustRegister(SummaryCacheHitRatio)

		registry.MustRegister(HTTPRequestsTotal)
		registry.MustRegister(HTTPRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// queryStatus classifies a store error for the status label.
func queryStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// ObserveStoreQuery records a finished store query. It is meant to be
// deferred with a pointer to the caller's named error result.
func ObserveStoreQuery(table, operation string, start time.Time, err *error) {
	var e error
	if err != nil {
		e = *err
	}
	StoreQueriesTotal.WithLabelValues(table, operation, queryStatus(e)).Inc()
	StoreQueryDuration.WithLabelValues(table, operation).Observe(time.Since(start).Seconds())
}

// ObserveUpsertBatch records the size of a batch upsert.
func ObserveUpsertBatch(table string, rows int) {
	UpsertBatchRows.WithLabelValues(table).Observe(float64(rows))
}

// RecordSummaryGeneration records a generation run that wrote count summaries.
func RecordSummaryGeneration(count int, durationSeconds float64) {
	SummariesGeneratedTotal.Add(float64(count))
	SummaryGenerationDuration.Observe(durationSeconds)
}

// UpdateSummaryCacheHitRatio sets the cache hit ratio gauge from raw counts.
func UpdateSummaryCacheHitRatio(hits, misses uint64) {
	total := hits + misses
	if total == 0 {
		SummaryCacheHitRatio.Set(0)
		return
	}
	SummaryCacheHitRatio.Set(float64(hits) / float64(total))
}
