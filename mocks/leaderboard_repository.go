package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
)

type LeaderboardRepository struct {
	mock.Mock
}

func (m *LeaderboardRepository) CreateSnapshot(ctx context.Context, exec repositories.Executor, snapshot models.LeaderboardSnapshot) error {
	args := m.Called(ctx, exec, snapshot)
	return args.Error(0)
}

func (m *LeaderboardRepository) InsertEntries(ctx context.Context, exec repositories.Executor, entries []models.LeaderboardEntry) error {
	args := m.Called(ctx, exec, entries)
	return args.Error(0)
}

func (m *LeaderboardRepository) PublishSnapshot(ctx context.Context, exec repositories.Executor, snapshotId uuid.UUID) error {
	args := m.Called(ctx, exec, snapshotId)
	return args.Error(0)
}

func (m *LeaderboardRepository) CurrentSnapshot(ctx context.Context, exec repositories.Executor) (*models.LeaderboardSnapshot, error) {
	args := m.Called(ctx, exec)
	return args.Get(0).(*models.LeaderboardSnapshot), args.Error(1)
}

func (m *LeaderboardRepository) DeleteStaleSnapshots(ctx context.Context, exec repositories.Executor, keepSnapshotId uuid.UUID) error {
	args := m.Called(ctx, exec, keepSnapshotId)
	return args.Error(0)
}

func (m *LeaderboardRepository) EntriesOfBenchmark(ctx context.Context, exec repositories.Executor,
	snapshotId, benchmarkId uuid.UUID, limit int,
) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, exec, snapshotId, benchmarkId, limit)
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

func (m *LeaderboardRepository) BenchmarkStatisticsFromSnapshot(ctx context.Context, exec repositories.Executor,
	snapshotId, benchmarkId uuid.UUID,
) (models.BenchmarkStatistics, error) {
	args := m.Called(ctx, exec, snapshotId, benchmarkId)
	return args.Get(0).(models.BenchmarkStatistics), args.Error(1)
}

func (m *LeaderboardRepository) ModelStatisticsFromSnapshot(ctx context.Context, exec repositories.Executor,
	snapshotId uuid.UUID, provider, modelName string,
) (models.ModelStatistics, error) {
	args := m.Called(ctx, exec, snapshotId, provider, modelName)
	return args.Get(0).(models.ModelStatistics), args.Error(1)
}
