package repositories

import (
	"context"
	"fmt"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type LeaderboardRepository struct{}

func (repo *LeaderboardRepository) CreateSnapshot(
	ctx context.Context,
	exec Executor,
	snapshot models.LeaderboardSnapshot,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_LEADERBOARD_SNAPSHOTS).
			Columns("id", "refreshed_at", "entry_count").
			Values(snapshot.Id, snapshot.RefreshedAt, snapshot.EntryCount),
	)
}

func (repo *LeaderboardRepository) InsertEntries(
	ctx context.Context,
	exec Executor,
	entries []models.LeaderboardEntry,
) error {
	if len(entries) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_LEADERBOARD_ENTRIES).
		Columns(
			"snapshot_id",
			"benchmark_id",
			"benchmark_slug",
			"submission_id",
			"submitted_by",
			"submitter_name",
			"organization_name",
			"model_provider",
			"model_name",
			"model_version",
			"is_official",
			"aggregate_score",
			"verification_level",
			"submission_created_at",
			"rank_overall",
			"rank_verified",
			"rank_official",
		)
	for _, entry := range entries {
		query = query.Values(
			entry.SnapshotId,
			entry.BenchmarkId,
			entry.BenchmarkSlug,
			entry.SubmissionId,
			entry.SubmittedBy,
			entry.SubmitterName,
			entry.OrganizationName,
			entry.ModelProvider,
			entry.ModelName,
			entry.ModelVersion,
			entry.IsOfficial,
			entry.AggregateScore,
			entry.VerificationLevel,
			entry.SubmissionCreatedAt,
			entry.RankOverall,
			entry.RankVerified,
			entry.RankOfficial,
		)
	}

	return ExecBuilder(ctx, exec, query)
}

// PublishSnapshot swaps the singleton current-snapshot pointer. Readers that
// resolve the pointer before the swap keep a consistent view of the old
// snapshot; new readers see the new one. The swap is a single-row update, so
// publication is atomic and never blocks reads.
func (repo *LeaderboardRepository) PublishSnapshot(
	ctx context.Context,
	exec Executor,
	snapshotId uuid.UUID,
) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s (singleton, snapshot_id, published_at)
		VALUES (TRUE, $1, NOW())
		ON CONFLICT (singleton)
		DO UPDATE SET snapshot_id = EXCLUDED.snapshot_id, published_at = NOW()`,
		dbmodels.TABLE_LEADERBOARD_CURRENT,
	)

	_, err := exec.Exec(ctx, sql, snapshotId)
	return err
}

// CurrentSnapshot resolves the published pointer, or returns nil before the
// first refresh.
func (repo *LeaderboardRepository) CurrentSnapshot(
	ctx context.Context,
	exec Executor,
) (*models.LeaderboardSnapshot, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select("s.id", "s.refreshed_at", "s.entry_count").
			From(dbmodels.TABLE_LEADERBOARD_SNAPSHOTS+" AS s").
			Join(dbmodels.TABLE_LEADERBOARD_CURRENT+" AS c ON c.snapshot_id = s.id"),
		dbmodels.AdaptLeaderboardSnapshot,
	)
}

// DeleteStaleSnapshots removes every snapshot except the published one and
// its entries. Run after a successful publish.
func (repo *LeaderboardRepository) DeleteStaleSnapshots(
	ctx context.Context,
	exec Executor,
	keepSnapshotId uuid.UUID,
) error {
	if err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Delete(dbmodels.TABLE_LEADERBOARD_ENTRIES).
			Where(squirrel.NotEq{"snapshot_id": keepSnapshotId}),
	); err != nil {
		return err
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Delete(dbmodels.TABLE_LEADERBOARD_SNAPSHOTS).
			Where(squirrel.NotEq{"id": keepSnapshotId}),
	)
}

func (repo *LeaderboardRepository) EntriesOfBenchmark(
	ctx context.Context,
	exec Executor,
	snapshotId, benchmarkId uuid.UUID,
	limit int,
) ([]models.LeaderboardEntry, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectLeaderboardEntryColumns...).
		From(dbmodels.TABLE_LEADERBOARD_ENTRIES).
		Where(squirrel.Eq{
			"snapshot_id":  snapshotId,
			"benchmark_id": benchmarkId,
		}).
		OrderBy("rank_overall")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptLeaderboardEntry)
}

// BenchmarkStatisticsFromSnapshot aggregates over the given snapshot's
// entries, so statistics and rankings always describe the same submission
// set.
func (repo *LeaderboardRepository) BenchmarkStatisticsFromSnapshot(
	ctx context.Context,
	exec Executor,
	snapshotId, benchmarkId uuid.UUID,
) (models.BenchmarkStatistics, error) {
	query := NewQueryBuilder().
		Select(
			"benchmark_id",
			"COUNT(*)::int AS submission_count",
			"MIN(aggregate_score) AS min_score",
			"MAX(aggregate_score) AS max_score",
			"AVG(aggregate_score) AS mean_score",
			"PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY aggregate_score) AS median_score",
			"PERCENTILE_CONT(0.75) WITHIN GROUP (ORDER BY aggregate_score) AS p75_score",
			"PERCENTILE_CONT(0.95) WITHIN GROUP (ORDER BY aggregate_score) AS p95_score",
			"COALESCE(STDDEV_POP(aggregate_score), 0) AS stddev_score",
		).
		From(dbmodels.TABLE_LEADERBOARD_ENTRIES).
		Where(squirrel.Eq{
			"snapshot_id":  snapshotId,
			"benchmark_id": benchmarkId,
		}).
		GroupBy("benchmark_id")

	return SqlToModel(ctx, exec, query, dbmodels.AdaptBenchmarkStatistics)
}

func (repo *LeaderboardRepository) ModelStatisticsFromSnapshot(
	ctx context.Context,
	exec Executor,
	snapshotId uuid.UUID,
	provider, modelName string,
) (models.ModelStatistics, error) {
	query := NewQueryBuilder().
		Select(
			"model_provider",
			"model_name",
			"COUNT(*)::int AS submission_count",
			"COUNT(DISTINCT benchmark_id)::int AS benchmark_count",
			"AVG(aggregate_score) AS mean_score",
			"MAX(aggregate_score) AS best_score",
		).
		From(dbmodels.TABLE_LEADERBOARD_ENTRIES).
		Where(squirrel.Eq{
			"snapshot_id":    snapshotId,
			"model_provider": provider,
			"model_name":     modelName,
		}).
		GroupBy("model_provider", "model_name")

	return SqlToModel(ctx, exec, query, dbmodels.AdaptModelStatistics)
}
