// Package client talks to the aoc-web API: submitting benchmarks and
// participants, and triggering summary generation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/aoc-web/internal/health"
	"github.com/yourusername/aoc-web/internal/models"
)

// StatusError is a non-2xx API response.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// Is maps 404 responses onto models.ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == models.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is an authenticated API client.
type Client struct {
	baseURL   *url.URL
	token     string
	transport *transport
	logger    logrus.FieldLogger
}

// New creates a client for the API at baseURL. token may be empty for
// read-only use.
func New(baseURL, token string, cfg HTTPConfig, log logrus.FieldLogger) (*Client, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	return &Client{
		baseURL:   u,
		token:     token,
		transport: newTransport(cfg, log),
		logger:    log,
	}, nil
}

// SubmitBenchmarks upserts benchmarks and returns their ids in input order.
func (c *Client) SubmitBenchmarks(ctx context.Context, benchmarks []models.BenchmarkCreate) ([]int, error) {
	var ids []int
	if err := c.call(ctx, http.MethodPost, "/api/v1/benchmarks", nil, benchmarks, &ids); err != nil {
		return nil, fmt.Errorf("failed to submit benchmarks: %w", err)
	}
	return ids, nil
}

// SubmitParticipants upserts participants and returns their keys.
func (c *Client) SubmitParticipants(ctx context.Context, participants []models.Participant) ([]models.ParticipantKey, error) {
	var keys []models.ParticipantKey
	if err := c.call(ctx, http.MethodPost, "/api/v1/participants", nil, participants, &keys); err != nil {
		return nil, fmt.Errorf("failed to submit participants: %w", err)
	}
	return keys, nil
}

// GenerateSummaries asks the server to rebuild the leaderboard for year.
func (c *Client) GenerateSummaries(ctx context.Context, year int) ([]models.SummaryKey, error) {
	var keys []models.SummaryKey
	if err := c.call(ctx, http.MethodPost, "/api/v1/summaries/generate", nil, year, &keys); err != nil {
		return nil, fmt.Errorf("failed to generate summaries for %d: %w", year, err)
	}
	return keys, nil
}

// ListSummaries fetches leaderboard rows matching filter.
func (c *Client) ListSummaries(ctx context.Context, filter models.SummaryFilter) ([]*models.Summary, error) {
	q := url.Values{}
	if filter.Year != nil {
		q.Set("year", strconv.Itoa(*filter.Year))
	}
	if filter.Participant != nil {
		q.Set("participant", *filter.Participant)
	}
	if filter.Language != nil {
		q.Set("language", *filter.Language)
	}

	var summaries []*models.Summary
	if err := c.call(ctx, http.MethodGet, "/api/v1/summaries", q, nil, &summaries); err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return summaries, nil
}

// Health returns the server's /health report.
func (c *Client) Health(ctx context.Context) (*health.HealthResponse, error) {
	var resp health.HealthResponse
	if err := c.call(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return &resp, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.transport.close()
	return nil
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.transport.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeStatusError(resp *http.Response) error {
	statusErr := &StatusError{StatusCode: resp.StatusCode}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &payload); err == nil {
		statusErr.Code = payload.Code
		statusErr.Message = payload.Message
	} else if len(data) > 0 {
		statusErr.Message = strings.TrimSpace(string(data))
	}
	return statusErr
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized
}
