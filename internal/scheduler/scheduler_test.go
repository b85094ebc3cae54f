package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/aoc-web/internal/models"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, year int, trigger string) ([]models.SummaryKey, error) {
	args := m.Called(ctx, year, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SummaryKey), args.Error(1)
}

func TestScheduleSummariesOneJobPerYear(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewScheduler(&mockGenerator{}, log)

	require.NoError(t, s.ScheduleSummaries("*/15 * * * *", []int{2022, 2023}))
	assert.Len(t, s.entries(), 2)
	assert.True(t, s.GetNextRun().IsZero(), "no next run before start")

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.running())
	assert.False(t, s.GetNextRun().IsZero())
	assert.Error(t, s.Start(), "double start")
	assert.Error(t, s.ScheduleSummaries("@hourly", []int{2021}), "schedule while running")
}

func TestScheduleSummariesInvalidExpression(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewScheduler(&mockGenerator{}, log)

	err := s.ScheduleSummaries("every tuesday", []int{2023})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add job for 2023")
}

func TestStartWithoutJobs(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewScheduler(&mockGenerator{}, log)

	assert.Error(t, s.Start())
	assert.NotPanics(t, s.Stop)
}

func TestRunNowLogsOutcome(t *testing.T) {
	log, hook := test.NewNullLogger()
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, 2022, "schedule").Return([]models.SummaryKey{{Year: 2022, Participant: "foo"}}, nil)
	gen.On("Generate", mock.Anything, 2023, "schedule").Return(nil, errors.New("database unavailable"))

	s := NewScheduler(gen, log)
	s.RunNow([]int{2022, 2023})

	gen.AssertExpectations(t)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Scheduled summary generation completed", entries[0].Message)
	assert.Equal(t, 1, entries[0].Data["summaries"])
	assert.Equal(t, "Scheduled summary generation failed", entries[1].Message)
	assert.Equal(t, 2023, entries[1].Data["year"])
}
