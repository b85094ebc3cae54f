package repository

import (
	"context"

	"github.com/yourusername/aoc-web/internal/models"
)

// BenchmarkRepository defines the interface for benchmark data access
type BenchmarkRepository interface {
	List(ctx context.Context, filter models.BenchmarkFilter) ([]*models.Benchmark, error)
	GetByID(ctx context.Context, id int) (*models.Benchmark, error)
	CreateOrUpdate(ctx context.Context, benchmark models.BenchmarkCreate) (int, error)
	BatchCreateOrUpdate(ctx context.Context, benchmarks []models.BenchmarkCreate) ([]int, error)
}

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	List(ctx context.Context, filter models.ParticipantFilter) ([]*models.Participant, error)
	Get(ctx context.Context, year int, name string) (*models.Participant, error)
	BatchCreateOrUpdate(ctx context.Context, participants []models.Participant) ([]models.ParticipantKey, error)
}

// SummaryRepository defines the interface for leaderboard summary data access
type SummaryRepository interface {
	List(ctx context.Context, filter models.SummaryFilter) ([]*models.Summary, error)
	Get(ctx context.Context, year int, participant string) (*models.Summary, error)
	BatchCreateOrUpdate(ctx context.Context, summaries []*models.Summary) ([]models.SummaryKey, error)
}
