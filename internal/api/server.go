// Package api serves the benchmark, participant and summary endpoints over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/aoc-web/internal/health"
	"github.com/yourusername/aoc-web/internal/logger"
	"github.com/yourusername/aoc-web/internal/metrics"
	"github.com/yourusername/aoc-web/internal/models"
	"github.com/yourusername/aoc-web/internal/repository"
	"golang.org/x/time/rate"
)

// SummaryService is what the summary endpoints need from the service layer.
type SummaryService interface {
	Generate(ctx context.Context, year int, trigger string) ([]models.SummaryKey, error)
	List(ctx context.Context, filter models.SummaryFilter) ([]*models.Summary, error)
	Get(ctx context.Context, year int, participant string) (*models.Summary, error)
}

// Authenticator checks write requests.
type Authenticator interface {
	Authenticate(r *http.Request) error
}

// Dependencies wires the server to its collaborators.
type Dependencies struct {
	Benchmarks   repository.BenchmarkRepository
	Participants repository.ParticipantRepository
	Summaries    SummaryService
	Auth         Authenticator
	Health       *health.Handler
	Logger       logrus.FieldLogger

	// Limiter throttles write endpoints; nil disables throttling.
	Limiter *rate.Limiter
	// MetricsPath mounts the Prometheus handler when non-empty.
	MetricsPath string
}

// Server wires HTTP routes for the API.
type Server struct {
	benchmarks   repository.BenchmarkRepository
	participants repository.ParticipantRepository
	summaries    SummaryService
	auth         Authenticator
	health       *health.Handler
	limiter      *rate.Limiter
	metricsPath  string
	validate     *validator.Validate
	logger       logrus.FieldLogger
	audit        *logger.AuditLogger
}

// NewServer creates a new API server.
func NewServer(deps Dependencies) *Server {
	return &Server{
		benchmarks:   deps.Benchmarks,
		participants: deps.Participants,
		summaries:    deps.Summaries,
		auth:         deps.Auth,
		health:       deps.Health,
		limiter:      deps.Limiter,
		metricsPath:  deps.MetricsPath,
		validate:     validator.New(),
		logger:       deps.Logger,
		audit:        logger.NewAuditLogger(deps.Logger),
	}
}

// Handler returns the root handler with every route and middleware attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return s.requestID(s.logRequests(mux))
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/benchmarks", MetricsMiddleware(s.handleListBenchmarks, "benchmarks"))
	mux.HandleFunc("GET /api/v1/benchmarks/{id}", MetricsMiddleware(s.handleGetBenchmark, "benchmark"))
	mux.HandleFunc("POST /api/v1/benchmarks", MetricsMiddleware(s.write(s.handleCreateBenchmarks), "benchmarks"))

	mux.HandleFunc("GET /api/v1/participants", MetricsMiddleware(s.handleListParticipants, "participants"))
	mux.HandleFunc("GET /api/v1/participants/{year}/{name}", MetricsMiddleware(s.handleGetParticipant, "participant"))
	mux.HandleFunc("POST /api/v1/participants", MetricsMiddleware(s.write(s.handleCreateParticipants), "participants"))

	mux.HandleFunc("GET /api/v1/summaries", MetricsMiddleware(s.handleListSummaries, "summaries"))
	mux.HandleFunc("GET /api/v1/summaries/{year}/{participant}", MetricsMiddleware(s.handleGetSummary, "summary"))
	mux.HandleFunc("POST /api/v1/summaries/generate", MetricsMiddleware(s.write(s.handleGenerateSummaries), "summaries_generate"))

	if s.health != nil {
		s.health.Register(mux)
	}
	if s.metricsPath != "" {
		mux.Handle("GET "+s.metricsPath, metrics.Handler())
	}
}

// write guards a mutating handler with authentication, then rate limiting.
// Rejected credentials never spend the write budget.
func (s *Server) write(next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(s.rateLimit(next))
}
