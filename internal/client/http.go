package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrCircuitOpen is returned while the circuit breaker rejects requests.
var ErrCircuitOpen = errors.New("circuit breaker open")

// HTTPConfig holds transport settings for the API client.
type HTTPConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second, 0 disables
	CircuitBreakerMax int     // consecutive failures before the circuit opens
	CircuitCooldown   time.Duration
}

// DefaultHTTPConfig returns recommended defaults
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         10.0,
		CircuitBreakerMax: 5,
		CircuitCooldown:   30 * time.Second,
	}
}

// transport wraps retryablehttp.Client with rate limiting and a circuit breaker.
type transport struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  logrus.FieldLogger

	mu                sync.Mutex
	circuitBreakerMax int
	cooldown          time.Duration
	consecutiveErrors int
	openedAt          time.Time
	lastError         error
}

func newTransport(cfg HTTPConfig, log logrus.FieldLogger) *transport {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy
	// hand the final response back so error bodies can be decoded
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = leveledLogger{log}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &transport{
		client:            retryClient,
		limiter:           rate.NewLimiter(limit, 1),
		logger:            log,
		circuitBreakerMax: cfg.CircuitBreakerMax,
		cooldown:          cfg.CircuitCooldown,
	}
}

// do executes req once the limiter and circuit breaker allow it. Every
// endpoint is an idempotent upsert or read, so retrying a POST is safe.
func (t *transport) do(ctx context.Context, req *retryablehttp.Request) (*http.Response, error) {
	if err := t.allow(); err != nil {
		return nil, err
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := t.client.Do(req.WithContext(ctx))
	t.record(resp, err)
	return resp, err
}

func (t *transport) allow() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.openedAt.IsZero() {
		return nil
	}
	if time.Since(t.openedAt) < t.cooldown {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, t.lastError)
	}
	// half-open: let one request through, a failure reopens immediately
	t.openedAt = time.Time{}
	t.consecutiveErrors = t.circuitBreakerMax - 1
	return nil
}

func (t *transport) record(resp *http.Response, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err == nil && resp.StatusCode < 500 {
		t.consecutiveErrors = 0
		return
	}

	if err == nil {
		err = fmt.Errorf("server returned %d", resp.StatusCode)
	}
	t.consecutiveErrors++
	t.lastError = err
	if t.circuitBreakerMax > 0 && t.consecutiveErrors >= t.circuitBreakerMax && t.openedAt.IsZero() {
		t.openedAt = time.Now()
		t.logger.WithError(err).WithField("consecutive_errors", t.consecutiveErrors).Warn("Circuit breaker opened")
	}
}

func (t *transport) close() {
	t.client.HTTPClient.CloseIdleConnections()
}

// retryPolicy retries network errors, 429 and gateway-class 5xx responses.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger.
type leveledLogger struct {
	log logrus.FieldLogger
}

func (l leveledLogger) entry(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.log.WithFields(fields)
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Error(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Warn(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Debug(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Debug(msg)
}
