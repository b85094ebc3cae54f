// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yourusername/aoc-web/internal/models"
	"github.com/yourusername/aoc-web/internal/repository"
)

var (
	_ repository.BenchmarkRepository   = (*BenchmarkRepository)(nil)
	_ repository.ParticipantRepository = (*ParticipantRepository)(nil)
	_ repository.SummaryRepository     = (*SummaryRepository)(nil)
)

// BenchmarkRepository mocks repository.BenchmarkRepository
type BenchmarkRepository struct {
	mock.Mock
}

func (m *BenchmarkRepository) List(ctx context.Context, filter models.BenchmarkFilter) ([]*models.Benchmark, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Benchmark), args.Error(1)
}

func (m *BenchmarkRepository) GetByID(ctx context.Context, id int) (*models.Benchmark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Benchmark), args.Error(1)
}

func (m *BenchmarkRepository) CreateOrUpdate(ctx context.Context, benchmark models.BenchmarkCreate) (int, error) {
	args := m.Called(ctx, benchmark)
	return args.Int(0), args.Error(1)
}

func (m *BenchmarkRepository) BatchCreateOrUpdate(ctx context.Context, benchmarks []models.BenchmarkCreate) ([]int, error) {
	args := m.Called(ctx, benchmarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// ParticipantRepository mocks repository.ParticipantRepository
type ParticipantRepository struct {
	mock.Mock
}

func (m *ParticipantRepository) List(ctx context.Context, filter models.ParticipantFilter) ([]*models.Participant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participant), args.Error(1)
}

func (m *ParticipantRepository) Get(ctx context.Context, year int, name string) (*models.Participant, error) {
	args := m.Called(ctx, year, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}

func (m *ParticipantRepository) BatchCreateOrUpdate(ctx context.Context, participants []models.Participant) ([]models.ParticipantKey, error) {
	args := m.Called(ctx, participants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipantKey), args.Error(1)
}

// SummaryRepository mocks repository.SummaryRepository
type SummaryRepository struct {
	mock.Mock
}

func (m *SummaryRepository) List(ctx context.Context, filter models.SummaryFilter) ([]*models.Summary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Summary), args.Error(1)
}

func (m *SummaryRepository) Get(ctx context.Context, year int, participant string) (*models.Summary, error) {
	args := m.Called(ctx, year, participant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Summary), args.Error(1)
}

func (m *SummaryRepository) BatchCreateOrUpdate(ctx context.Context, summaries []*models.Summary) ([]models.SummaryKey, error) {
	args := m.Called(ctx, summaries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SummaryKey), args.Error(1)
}
