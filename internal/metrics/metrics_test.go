package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/aoc-web/internal/models"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry(), "registry is initialised once")
}

func TestObserveStoreQuery(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		err    error
		status string
	}{
		{name: "success", err: nil, status: "success"},
		{name: "not found", err: &models.EntityNotFoundError{Table: "t_obs", Key: "1"}, status: "not_found"},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", models.ErrNotFound), status: "not_found"},
		{name: "store error", err: errors.New("connection reset"), status: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := StoreQueriesTotal.WithLabelValues("t_obs", "get", tt.status)
			before := testutil.ToFloat64(counter)

			err := tt.err
			ObserveStoreQuery("t_obs", "get", time.Now(), &err)

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestObserveStoreQueryNilPointer(t *testing.T) {
	InitRegistry()
	counter := StoreQueriesTotal.WithLabelValues("t_nil", "list", "success")
	before := testutil.ToFloat64(counter)

	assert.NotPanics(t, func() {
		ObserveStoreQuery("t_nil", "list", time.Now(), nil)
	})
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestObserveUpsertBatch(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		ObserveUpsertBatch("benchmarks", 25)
	})
	assert.Equal(t, 1, testutil.CollectAndCount(UpsertBatchRows, "aoc_upsert_batch_rows"))
}

func TestRecordSummaryGeneration(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(SummariesGeneratedTotal)

	RecordSummaryGeneration(3, 0.02)

	assert.Equal(t, before+3, testutil.ToFloat64(SummariesGeneratedTotal))
}

func TestUpdateSummaryCacheHitRatio(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		hits   uint64
		misses uint64
		ratio  float64
	}{
		{name: "no lookups", hits: 0, misses: 0, ratio: 0},
		{name: "all hits", hits: 4, misses: 0, ratio: 1},
		{name: "mixed", hits: 3, misses: 1, ratio: 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			UpdateSummaryCacheHitRatio(tt.hits, tt.misses)
			assert.Equal(t, tt.ratio, testutil.ToFloat64(SummaryCacheHitRatio))
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	InitRegistry()
	counter := HTTPRequestsTotal.WithLabelValues("/api/v1/benchmarks", http.MethodPost, "201")
	before := testutil.ToFloat64(counter)

	RecordHTTPRequest("/api/v1/benchmarks", http.MethodPost, http.StatusCreated, 0.003)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHandlerServesRegistry(t *testing.T) {
	InitRegistry()
	RecordSummaryGeneration(0, 0.001)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aoc_summaries_generated_total")
}
