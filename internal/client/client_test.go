package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/aoc-web/internal/models"
)

func testHTTPConfig() HTTPConfig {
	cfg := DefaultHTTPConfig()
	cfg.Timeout = 2 * time.Second
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	cfg.RateLimit = 0
	return cfg
}

func newTestClient(t *testing.T, url string, cfg HTTPConfig) *Client {
	t.Helper()
	log, _ := test.NewNullLogger()
	c, err := New(url, "sandcastle", cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("localhost:3000", "", DefaultHTTPConfig(), nil)
	assert.Error(t, err)

	_, err = New("ftp://example.com", "", DefaultHTTPConfig(), nil)
	assert.Error(t, err)
}

func TestSubmitBenchmarks(t *testing.T) {
	var received []models.BenchmarkCreate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/benchmarks", r.URL.Path)
		assert.Equal(t, "Bearer sandcastle", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = io.WriteString(w, "[1000,1002]")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/", testHTTPConfig())
	ids, err := c.SubmitBenchmarks(context.Background(), []models.BenchmarkCreate{
		{Year: 2023, Day: 1, Input: "a", Participant: "foo", Language: "go"},
		{Year: 2023, Day: 2, Input: "a", Participant: "foo", Language: "go"},
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1000, 1002}, ids)
	assert.Len(t, received, 2)
}

func TestGenerateSummariesSendsYear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/summaries/generate", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "2023", string(body))
		_, _ = io.WriteString(w, `[{"year":2023,"participant":"foo"}]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testHTTPConfig())
	keys, err := c.GenerateSummaries(context.Background(), 2023)

	require.NoError(t, err)
	assert.Equal(t, []models.SummaryKey{{Year: 2023, Participant: "foo"}}, keys)
}

func TestListSummariesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2022", r.URL.Query().Get("year"))
		assert.Equal(t, "rust", r.URL.Query().Get("language"))
		assert.False(t, r.URL.Query().Has("participant"))
		_, _ = io.WriteString(w, `[{"year":2022,"participant":"foo","language":"rust","day_1":0.5,"total":0.5}]`)
	}))
	defer srv.Close()

	year, lang := 2022, "rust"
	c := newTestClient(t, srv.URL, testHTTPConfig())
	summaries, err := c.ListSummaries(context.Background(), models.SummaryFilter{Year: &year, Language: &lang})

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].Day(1))
	assert.Equal(t, 0.5, *summaries[0].Day(1))
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"version":"1.0.0","status":"ok"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testHTTPConfig())
	resp, err := c.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"empty_batch","message":"Empty batch"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testHTTPConfig())
	_, err := c.SubmitParticipants(context.Background(), nil)

	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "empty_batch", statusErr.Code)
	assert.Equal(t, "Empty batch", statusErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStatusErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, "gone")
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"code":"unauthorized","message":"Unauthorized"}`)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testHTTPConfig())

	_, err := c.Health(context.Background())
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "gone")

	_, err = c.GenerateSummaries(context.Background(), 2023)
	assert.True(t, IsUnauthorized(err))
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestExhaustedRetriesReturnStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"code":"internal","message":"Internal server error"}`)
	}))
	defer srv.Close()

	cfg := testHTTPConfig()
	cfg.MaxRetries = 1
	c := newTestClient(t, srv.URL, cfg)
	_, err := c.GenerateSummaries(context.Background(), 2023)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestCircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testHTTPConfig()
	cfg.MaxRetries = 0
	cfg.CircuitBreakerMax = 2
	cfg.CircuitCooldown = time.Hour
	c := newTestClient(t, srv.URL, cfg)
	ctx := context.Background()

	_, err := c.Health(ctx)
	require.Error(t, err)
	_, err = c.Health(ctx)
	require.Error(t, err)

	_, err = c.Health(ctx)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCircuitBreakerHalfOpen(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"version":"1.0.0","status":"ok"}`)
	}))
	defer srv.Close()

	cfg := testHTTPConfig()
	cfg.MaxRetries = 0
	cfg.CircuitBreakerMax = 1
	cfg.CircuitCooldown = 10 * time.Millisecond
	c := newTestClient(t, srv.URL, cfg)
	ctx := context.Background()

	_, err := c.Health(ctx)
	require.Error(t, err)
	_, err = c.Health(ctx)
	require.ErrorIs(t, err, ErrCircuitOpen)

	healthy.Store(true)
	time.Sleep(20 * time.Millisecond)

	_, err = c.Health(ctx)
	require.NoError(t, err)
	_, err = c.Health(ctx)
	assert.NoError(t, err)
}

func TestContextCancellationStopsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, srv.URL, testHTTPConfig())
	_, err := c.Health(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
