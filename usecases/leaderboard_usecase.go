package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/pure_utils"
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type LeaderboardUseCaseRepository interface {
	CreateSnapshot(ctx context.Context, exec repositories.Executor, snapshot models.LeaderboardSnapshot) error
	InsertEntries(ctx context.Context, exec repositories.Executor, entries []models.LeaderboardEntry) error
	PublishSnapshot(ctx context.Context, exec repositories.Executor, snapshotId uuid.UUID) error
	CurrentSnapshot(ctx context.Context, exec repositories.Executor) (*models.LeaderboardSnapshot, error)
	DeleteStaleSnapshots(ctx context.Context, exec repositories.Executor, keepSnapshotId uuid.UUID) error
	EntriesOfBenchmark(ctx context.Context, exec repositories.Executor,
		snapshotId, benchmarkId uuid.UUID, limit int) ([]models.LeaderboardEntry, error)
	BenchmarkStatisticsFromSnapshot(ctx context.Context, exec repositories.Executor,
		snapshotId, benchmarkId uuid.UUID) (models.BenchmarkStatistics, error)
	ModelStatisticsFromSnapshot(ctx context.Context, exec repositories.Executor,
		snapshotId uuid.UUID, provider, modelName string) (models.ModelStatistics, error)
}

type leaderboardSourceRepository interface {
	ListLeaderboardSources(ctx context.Context, exec repositories.Executor) ([]models.LeaderboardSource, error)
}

type LeaderboardUseCase struct {
	transactionFactory   executor_factory.TransactionFactory
	executorFactory      executor_factory.ExecutorFactory
	repository           LeaderboardUseCaseRepository
	submissionRepository leaderboardSourceRepository
}

// RefreshLeaderboard recomputes all rankings into a fresh snapshot, swaps the
// current-snapshot pointer and drops superseded snapshots. Readers are never
// blocked: they keep resolving the old pointer until the swap commits.
func (usecase *LeaderboardUseCase) RefreshLeaderboard(ctx context.Context) (models.LeaderboardSnapshot, error) {
	start := time.Now()

	sources, err := usecase.submissionRepository.ListLeaderboardSources(
		ctx, usecase.executorFactory.NewExecutor())
	if err != nil {
		return models.LeaderboardSnapshot{}, err
	}

	snapshot := models.LeaderboardSnapshot{
		Id:          uuid.New(),
		RefreshedAt: time.Now().UTC(),
		EntryCount:  len(sources),
	}
	entries := ComputeRankings(snapshot.Id, sources)

	err = usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		if err := usecase.repository.CreateSnapshot(ctx, tx, snapshot); err != nil {
			return err
		}
		if err := usecase.repository.InsertEntries(ctx, tx, entries); err != nil {
			return err
		}
		if err := usecase.repository.PublishSnapshot(ctx, tx, snapshot.Id); err != nil {
			return err
		}
		return usecase.repository.DeleteStaleSnapshots(ctx, tx, snapshot.Id)
	})
	if err != nil {
		return models.LeaderboardSnapshot{}, err
	}

	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "leaderboard refreshed",
		"snapshot_id", snapshot.Id,
		"entries", len(entries),
		"duration", time.Since(start))

	return snapshot, nil
}

func (usecase *LeaderboardUseCase) GetLeaderboard(
	ctx context.Context,
	benchmarkId uuid.UUID,
	limit int,
) ([]models.LeaderboardEntry, error) {
	exec := usecase.executorFactory.NewExecutor()
	snapshot, err := usecase.repository.CurrentSnapshot(ctx, exec)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, errors.Wrap(models.NotFoundError, "no leaderboard snapshot published yet")
	}
	return usecase.repository.EntriesOfBenchmark(ctx, exec, snapshot.Id, benchmarkId, limit)
}

func (usecase *LeaderboardUseCase) GetBenchmarkStatistics(
	ctx context.Context,
	benchmarkId uuid.UUID,
) (models.BenchmarkStatistics, error) {
	exec := usecase.executorFactory.NewExecutor()
	snapshot, err := usecase.repository.CurrentSnapshot(ctx, exec)
	if err != nil {
		return models.BenchmarkStatistics{}, err
	}
	if snapshot == nil {
		return models.BenchmarkStatistics{}, errors.Wrap(models.NotFoundError,
			"no leaderboard snapshot published yet")
	}
	return usecase.repository.BenchmarkStatisticsFromSnapshot(ctx, exec, snapshot.Id, benchmarkId)
}

func (usecase *LeaderboardUseCase) GetModelStatistics(
	ctx context.Context,
	provider, modelName string,
) (models.ModelStatistics, error) {
	exec := usecase.executorFactory.NewExecutor()
	snapshot, err := usecase.repository.CurrentSnapshot(ctx, exec)
	if err != nil {
		return models.ModelStatistics{}, err
	}
	if snapshot == nil {
		return models.ModelStatistics{}, errors.Wrap(models.NotFoundError,
			"no leaderboard snapshot published yet")
	}
	return usecase.repository.ModelStatisticsFromSnapshot(ctx, exec, snapshot.Id, provider, modelName)
}

// ComputeRankings is a pure function from rankable submissions to ranked
// leaderboard entries. Per benchmark it assigns three dense rankings: overall,
// verified submissions only, and official submissions only. Ties break by
// score descending, then submission age ascending, then id, so two refreshes
// over the same data always produce the same order.
func ComputeRankings(snapshotId uuid.UUID, sources []models.LeaderboardSource) []models.LeaderboardEntry {
	byBenchmark := make(map[uuid.UUID][]models.LeaderboardSource)
	for _, source := range sources {
		byBenchmark[source.BenchmarkId] = append(byBenchmark[source.BenchmarkId], source)
	}

	entries := make([]models.LeaderboardEntry, 0, len(sources))
	for _, group := range byBenchmark {
		sort.Slice(group, func(i, j int) bool {
			if group[i].AggregateScore != group[j].AggregateScore {
				return group[i].AggregateScore > group[j].AggregateScore
			}
			if !group[i].SubmissionCreatedAt.Equal(group[j].SubmissionCreatedAt) {
				return group[i].SubmissionCreatedAt.Before(group[j].SubmissionCreatedAt)
			}
			return group[i].SubmissionId.String() < group[j].SubmissionId.String()
		})

		verifiedRank := 0
		officialRank := 0
		for i, source := range group {
			entry := models.LeaderboardEntry{
				SnapshotId:          snapshotId,
				BenchmarkId:         source.BenchmarkId,
				BenchmarkSlug:       source.BenchmarkSlug,
				SubmissionId:        source.SubmissionId,
				SubmittedBy:         source.SubmittedBy,
				SubmitterName:       source.SubmitterName,
				OrganizationName:    source.OrganizationName,
				ModelProvider:       source.ModelProvider,
				ModelName:           source.ModelName,
				ModelVersion:        source.ModelVersion,
				IsOfficial:          source.IsOfficial,
				AggregateScore:      source.AggregateScore,
				VerificationLevel:   source.VerificationLevel,
				SubmissionCreatedAt: source.SubmissionCreatedAt,
				RankOverall:         i + 1,
			}

			if source.VerificationLevel.QualifiesAsVerified() {
				verifiedRank++
				entry.RankVerified = pure_utils.Ptr(verifiedRank)
			}
			if source.IsOfficial {
				officialRank++
				entry.RankOfficial = pure_utils.Ptr(officialRank)
			}

			entries = append(entries, entry)
		}
	}

	return entries
}
