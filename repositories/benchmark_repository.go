package repositories

import (
	"context"
	"encoding/json"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type BenchmarkRepository struct{}

func (repo *BenchmarkRepository) BenchmarkById(
	ctx context.Context,
	exec Executor,
	benchmarkId uuid.UUID,
) (models.Benchmark, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectBenchmarkColumns...).
			From(dbmodels.TABLE_BENCHMARKS).
			Where(squirrel.Eq{"id": benchmarkId}),
		dbmodels.AdaptBenchmark,
	)
}

func (repo *BenchmarkRepository) BenchmarkBySlug(
	ctx context.Context,
	exec Executor,
	slug string,
) (*models.Benchmark, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectBenchmarkColumns...).
			From(dbmodels.TABLE_BENCHMARKS).
			Where(squirrel.Eq{"slug": slug}),
		dbmodels.AdaptBenchmark,
	)
}

func (repo *BenchmarkRepository) ListBenchmarks(
	ctx context.Context,
	exec Executor,
	filters models.BenchmarkFilters,
) ([]models.Benchmark, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectBenchmarkColumns...).
		From(dbmodels.TABLE_BENCHMARKS).
		OrderBy("created_at DESC")

	if filters.Status != nil {
		query = query.Where(squirrel.Eq{"status": *filters.Status})
	}
	if filters.Category != nil {
		query = query.Where(squirrel.Eq{"category": *filters.Category})
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptBenchmark)
}

func (repo *BenchmarkRepository) CreateBenchmark(
	ctx context.Context,
	exec Executor,
	input models.CreateBenchmarkInput,
	newBenchmarkId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_BENCHMARKS).
			Columns(
				"id",
				"slug",
				"name",
				"description",
				"category",
				"license",
				"status",
				"created_by",
			).
			Values(
				newBenchmarkId,
				input.Slug,
				input.Name,
				input.Description,
				input.Category,
				input.License,
				models.BenchmarkStatusDraft,
				input.CreatedBy,
			),
	)
}

func (repo *BenchmarkRepository) UpdateBenchmarkStatus(
	ctx context.Context,
	exec Executor,
	benchmarkId uuid.UUID,
	status models.BenchmarkStatus,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_BENCHMARKS).
			Set("status", status).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": benchmarkId}),
	)
}

// SearchBenchmarks ranks by the best trigram similarity across slug, name and
// description. Requires the pg_trgm extension.
func (repo *BenchmarkRepository) SearchBenchmarks(
	ctx context.Context,
	exec Executor,
	term string,
	limit int,
) ([]models.BenchmarkSearchResult, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectBenchmarkColumns...).
		Column(
			"GREATEST(similarity(slug, ?), similarity(name, ?), similarity(description, ?)) AS similarity",
			term, term, term,
		).
		From(dbmodels.TABLE_BENCHMARKS).
		Where(
			"(slug % ? OR name % ? OR description % ?)",
			term, term, term,
		).
		OrderBy("similarity DESC").
		Limit(uint64(limit))

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptBenchmarkWithSimilarity)
}

func (repo *BenchmarkRepository) BenchmarkVersionById(
	ctx context.Context,
	exec Executor,
	versionId uuid.UUID,
) (models.BenchmarkVersion, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectBenchmarkVersionColumns...).
			From(dbmodels.TABLE_BENCHMARK_VERSIONS).
			Where(squirrel.Eq{"id": versionId}),
		dbmodels.AdaptBenchmarkVersion,
	)
}

func (repo *BenchmarkRepository) ListBenchmarkVersions(
	ctx context.Context,
	exec Executor,
	benchmarkId uuid.UUID,
) ([]models.BenchmarkVersion, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectBenchmarkVersionColumns...).
			From(dbmodels.TABLE_BENCHMARK_VERSIONS).
			Where(squirrel.Eq{"benchmark_id": benchmarkId}).
			OrderBy("major DESC", "minor DESC", "patch DESC"),
		dbmodels.AdaptBenchmarkVersion,
	)
}

func (repo *BenchmarkRepository) BenchmarkVersionByNumber(
	ctx context.Context,
	exec Executor,
	benchmarkId uuid.UUID,
	version models.SemanticVersion,
) (models.BenchmarkVersion, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectBenchmarkVersionColumns...).
			From(dbmodels.TABLE_BENCHMARK_VERSIONS).
			Where(squirrel.Eq{
				"benchmark_id": benchmarkId,
				"major":        version.Major,
				"minor":        version.Minor,
				"patch":        version.Patch,
				"prerelease":   version.Prerelease,
			}),
		dbmodels.AdaptBenchmarkVersion,
	)
}

// HighestBenchmarkVersion returns the latest version of a benchmark, or nil
// when none has been published yet. Locks the row so concurrent publications
// of the same benchmark serialize.
func (repo *BenchmarkRepository) HighestBenchmarkVersion(
	ctx context.Context,
	exec Executor,
	benchmarkId uuid.UUID,
) (*models.BenchmarkVersion, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectBenchmarkVersionColumns...).
			From(dbmodels.TABLE_BENCHMARK_VERSIONS).
			Where(squirrel.Eq{"benchmark_id": benchmarkId}).
			OrderBy("major DESC", "minor DESC", "patch DESC").
			Limit(1).
			Suffix("FOR UPDATE"),
		dbmodels.AdaptBenchmarkVersion,
	)
}

func (repo *BenchmarkRepository) CreateBenchmarkVersion(
	ctx context.Context,
	exec Executor,
	version models.BenchmarkVersion,
) error {
	datasets, err := json.Marshal(version.Datasets)
	if err != nil {
		return errors.Wrap(err, "can't marshal benchmark version datasets")
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_BENCHMARK_VERSIONS).
			Columns(
				"id",
				"benchmark_id",
				"major",
				"minor",
				"patch",
				"prerelease",
				"parent_version_id",
				"changelog",
				"primary_metric",
				"aggregation_method",
				"normalization",
				"timeout_per_test_ms",
				"max_retries",
				"max_concurrent_requests",
				"datasets",
				"created_by",
			).
			Values(
				version.Id,
				version.BenchmarkId,
				version.Version.Major,
				version.Version.Minor,
				version.Version.Patch,
				version.Version.Prerelease,
				version.ParentVersionId,
				version.Changelog,
				version.PrimaryMetric,
				version.AggregationMethod,
				version.Normalization,
				version.ExecutionLimits.TimeoutPerTestMs,
				version.ExecutionLimits.MaxRetries,
				version.ExecutionLimits.MaxConcurrentRequests,
				datasets,
				version.CreatedBy,
			),
	)
}

func (repo *BenchmarkRepository) TestCasesOfVersion(
	ctx context.Context,
	exec Executor,
	versionId uuid.UUID,
) ([]models.TestCase, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestCaseColumns...).
			From(dbmodels.TABLE_TEST_CASES).
			Where(squirrel.Eq{"benchmark_version_id": versionId}).
			OrderBy("test_case_id"),
		dbmodels.AdaptTestCase,
	)
}

func (repo *BenchmarkRepository) CreateTestCase(
	ctx context.Context,
	exec Executor,
	input models.CreateTestCaseInput,
	newTestCaseId uuid.UUID,
) error {
	method, err := json.Marshal(input.EvaluationMethod)
	if err != nil {
		return errors.Wrap(err, "can't marshal test case evaluation method")
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_TEST_CASES).
			Columns(
				"id",
				"benchmark_version_id",
				"test_case_id",
				"name",
				"prompt_template",
				"variables",
				"evaluation_method",
				"weight",
			).
			Values(
				newTestCaseId,
				input.BenchmarkVersionId,
				input.TestCaseId,
				input.Name,
				input.PromptTemplate,
				[]byte(input.Variables),
				method,
				input.Weight,
			),
	)
}

// CountSubmissionsOfVersion backs the version immutability rule: a version
// with at least one submission can no longer change its test cases.
func (repo *BenchmarkRepository) CountSubmissionsOfVersion(
	ctx context.Context,
	exec Executor,
	versionId uuid.UUID,
) (int, error) {
	query := NewQueryBuilder().
		Select("COUNT(*)").
		From(dbmodels.TABLE_SUBMISSIONS).
		Where(squirrel.Eq{"benchmark_version_id": versionId})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
