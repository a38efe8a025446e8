package repositories

import (
	"context"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type SubmissionRepository struct{}

func (repo *SubmissionRepository) SubmissionById(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
) (models.Submission, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectSubmissionColumns...).
			From(dbmodels.TABLE_SUBMISSIONS).
			Where(squirrel.Eq{"id": submissionId}),
		dbmodels.AdaptSubmission,
	)
}

func (repo *SubmissionRepository) ListSubmissions(
	ctx context.Context,
	exec Executor,
	filters models.SubmissionFilters,
) ([]models.Submission, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectSubmissionColumns...).
		From(dbmodels.TABLE_SUBMISSIONS).
		Where("deleted_at IS NULL").
		OrderBy("created_at DESC")

	if filters.BenchmarkId != nil {
		query = query.Where(squirrel.Eq{"benchmark_id": *filters.BenchmarkId})
	}
	if filters.BenchmarkVersionId != nil {
		query = query.Where(squirrel.Eq{"benchmark_version_id": *filters.BenchmarkVersionId})
	}
	if filters.SubmittedBy != nil {
		query = query.Where(squirrel.Eq{"submitted_by": *filters.SubmittedBy})
	}
	if filters.VerificationLevel != nil {
		query = query.Where(squirrel.Eq{"verification_level": *filters.VerificationLevel})
	}
	if filters.Limit > 0 {
		query = query.Limit(uint64(filters.Limit))
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptSubmission)
}

// ListLeaderboardSources returns every row the leaderboard refresh ranks:
// public, non-deleted submissions joined with their benchmark, submitter and
// organization display data.
func (repo *SubmissionRepository) ListLeaderboardSources(
	ctx context.Context,
	exec Executor,
) ([]models.LeaderboardSource, error) {
	query := NewQueryBuilder().
		Select(
			"s.id AS submission_id",
			"s.benchmark_id",
			"b.slug AS benchmark_slug",
			"s.submitted_by",
			"u.display_name AS submitter_name",
			"o.name AS organization_name",
			"s.model_provider",
			"s.model_name",
			"s.model_version",
			"s.is_official",
			"s.aggregate_score",
			"s.verification_level",
			"s.created_at AS submission_created_at",
		).
		From(dbmodels.TABLE_SUBMISSIONS+" AS s").
		Join(dbmodels.TABLE_BENCHMARKS+" AS b ON b.id = s.benchmark_id").
		Join(dbmodels.TABLE_USERS+" AS u ON u.id = s.submitted_by").
		LeftJoin(dbmodels.TABLE_ORGANIZATIONS+" AS o ON o.id = s.organization_id").
		Where("s.deleted_at IS NULL").
		Where(squirrel.Eq{"s.visibility": models.VisibilityPublic})

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptLeaderboardSource)
}

func (repo *SubmissionRepository) CreateSubmission(
	ctx context.Context,
	exec Executor,
	submission models.Submission,
) error {
	var ciLower, ciUpper, ciLevel *float64
	if ci := submission.ConfidenceInterval; ci != nil {
		ciLower = &ci.Lower
		ciUpper = &ci.Upper
		ciLevel = &ci.ConfidenceLevel
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_SUBMISSIONS).
			Columns(
				"id",
				"benchmark_id",
				"benchmark_version_id",
				"submitted_by",
				"organization_id",
				"model_provider",
				"model_name",
				"model_version",
				"is_official",
				"execution_id",
				"aggregate_score",
				"ci_lower",
				"ci_upper",
				"ci_confidence_level",
				"verification_level",
				"visibility",
			).
			Values(
				submission.Id,
				submission.BenchmarkId,
				submission.BenchmarkVersionId,
				submission.SubmittedBy,
				submission.OrganizationId,
				submission.ModelInfo.Provider,
				submission.ModelInfo.ModelName,
				submission.ModelInfo.ModelVersion,
				submission.ModelInfo.IsOfficial,
				submission.ExecutionId,
				submission.AggregateScore,
				ciLower,
				ciUpper,
				ciLevel,
				submission.VerificationLevel,
				submission.Visibility,
			),
	)
}

func (repo *SubmissionRepository) CreateTestCaseResults(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
	results []models.SubmitTestCaseResult,
) error {
	if len(results) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_TEST_CASE_RESULTS).
		Columns(
			"id",
			"submission_id",
			"test_case_id",
			"passed",
			"score",
			"latency_ms",
			"actual_output",
		)
	for _, result := range results {
		query = query.Values(
			uuid.New(),
			submissionId,
			result.TestCaseId,
			result.Passed,
			result.Score,
			result.LatencyMs,
			result.ActualOutput,
		)
	}

	return ExecBuilder(ctx, exec, query)
}

func (repo *SubmissionRepository) CreateMetricScores(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
	scores []models.MetricScore,
) error {
	if len(scores) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_METRIC_SCORES).
		Columns("id", "submission_id", "name", "value", "unit", "std_dev")
	for _, score := range scores {
		query = query.Values(
			uuid.New(),
			submissionId,
			score.Name,
			score.Value,
			score.Unit,
			score.StdDev,
		)
	}

	return ExecBuilder(ctx, exec, query)
}

func (repo *SubmissionRepository) TestCaseResultsOfSubmission(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
) ([]models.TestCaseResult, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestCaseResultColumns...).
			From(dbmodels.TABLE_TEST_CASE_RESULTS).
			Where(squirrel.Eq{"submission_id": submissionId}).
			OrderBy("test_case_id"),
		dbmodels.AdaptTestCaseResult,
	)
}

func (repo *SubmissionRepository) MetricScoresOfSubmission(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
) ([]models.MetricScore, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectMetricScoreColumns...).
			From(dbmodels.TABLE_METRIC_SCORES).
			Where(squirrel.Eq{"submission_id": submissionId}).
			OrderBy("name"),
		dbmodels.AdaptMetricScore,
	)
}

func (repo *SubmissionRepository) UpdateSubmissionVerificationLevel(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
	level models.VerificationLevel,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_SUBMISSIONS).
			Set("verification_level", level).
			Set("verified_at", squirrel.Expr("NOW()")).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": submissionId}),
	)
}

func (repo *SubmissionRepository) SoftDeleteSubmission(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_SUBMISSIONS).
			Set("deleted_at", squirrel.Expr("NOW()")).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": submissionId}).
			Where("deleted_at IS NULL"),
	)
}
