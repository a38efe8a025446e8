package usecases

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/pure_utils"
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

const defaultSearchLimit = 20

type BenchmarkUseCaseRepository interface {
	BenchmarkById(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID) (models.Benchmark, error)
	BenchmarkBySlug(ctx context.Context, exec repositories.Executor, slug string) (*models.Benchmark, error)
	ListBenchmarks(ctx context.Context, exec repositories.Executor, filters models.BenchmarkFilters) ([]models.Benchmark, error)
	CreateBenchmark(ctx context.Context, exec repositories.Executor, input models.CreateBenchmarkInput, newBenchmarkId uuid.UUID) error
	UpdateBenchmarkStatus(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID, status models.BenchmarkStatus) error
	SearchBenchmarks(ctx context.Context, exec repositories.Executor, term string, limit int) ([]models.BenchmarkSearchResult, error)
	BenchmarkVersionById(ctx context.Context, exec repositories.Executor, versionId uuid.UUID) (models.BenchmarkVersion, error)
	BenchmarkVersionByNumber(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID,
		version models.SemanticVersion) (models.BenchmarkVersion, error)
	ListBenchmarkVersions(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID) ([]models.BenchmarkVersion, error)
	HighestBenchmarkVersion(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID) (*models.BenchmarkVersion, error)
	CreateBenchmarkVersion(ctx context.Context, exec repositories.Executor, version models.BenchmarkVersion) error
	TestCasesOfVersion(ctx context.Context, exec repositories.Executor, versionId uuid.UUID) ([]models.TestCase, error)
	CreateTestCase(ctx context.Context, exec repositories.Executor, input models.CreateTestCaseInput, newTestCaseId uuid.UUID) error
	CountSubmissionsOfVersion(ctx context.Context, exec repositories.Executor, versionId uuid.UUID) (int, error)
}

type benchmarkEventRepository interface {
	CreateDomainEvent(ctx context.Context, exec repositories.Executor, event models.CreateDomainEvent) error
}

type benchmarkAuditRepository interface {
	CreateAuditEntry(ctx context.Context, exec repositories.Executor, entry models.CreateAuditEntry) error
}

type BenchmarkUseCase struct {
	transactionFactory executor_factory.TransactionFactory
	executorFactory    executor_factory.ExecutorFactory
	repository         BenchmarkUseCaseRepository
	eventRepository    benchmarkEventRepository
	auditRepository    benchmarkAuditRepository
}

func (usecase *BenchmarkUseCase) GetBenchmark(ctx context.Context, benchmarkId uuid.UUID) (models.Benchmark, error) {
	return usecase.repository.BenchmarkById(ctx, usecase.executorFactory.NewExecutor(), benchmarkId)
}

func (usecase *BenchmarkUseCase) GetBenchmarkBySlug(ctx context.Context, slug string) (models.Benchmark, error) {
	benchmark, err := usecase.repository.BenchmarkBySlug(ctx, usecase.executorFactory.NewExecutor(), slug)
	if err != nil {
		return models.Benchmark{}, err
	}
	if benchmark == nil {
		return models.Benchmark{}, errors.Wrap(models.NotFoundError,
			fmt.Sprintf("no benchmark with slug %q", slug))
	}
	return *benchmark, nil
}

func (usecase *BenchmarkUseCase) ListBenchmarks(
	ctx context.Context,
	filters models.BenchmarkFilters,
) ([]models.Benchmark, error) {
	return usecase.repository.ListBenchmarks(ctx, usecase.executorFactory.NewExecutor(), filters)
}

func (usecase *BenchmarkUseCase) CreateBenchmark(
	ctx context.Context,
	input models.CreateBenchmarkInput,
) (models.Benchmark, error) {
	if err := validateStruct(input); err != nil {
		return models.Benchmark{}, err
	}
	if !models.IsValidSlug(input.Slug) {
		return models.Benchmark{}, errors.Wrap(models.ErrInvalidSlug,
			fmt.Sprintf("slug %q", input.Slug))
	}
	if len(input.Description) < models.MinBenchmarkDescriptionLength {
		return models.Benchmark{}, errors.Wrap(models.ErrDescriptionTooShort,
			fmt.Sprintf("description has %d characters, minimum is %d",
				len(input.Description), models.MinBenchmarkDescriptionLength))
	}
	if !input.Category.IsValid() {
		return models.Benchmark{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown category %q", input.Category))
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.Benchmark, error) {
			newBenchmarkId := uuid.New()
			if err := usecase.repository.CreateBenchmark(ctx, tx, input, newBenchmarkId); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.Benchmark{}, errors.Wrap(models.ConflictError,
						fmt.Sprintf("a benchmark with slug %q already exists", input.Slug))
				}
				return models.Benchmark{}, err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventBenchmarkCreated,
				AggregateType: models.AggregateBenchmark,
				AggregateId:   newBenchmarkId,
				ActorId:       &input.CreatedBy,
			}); err != nil {
				return models.Benchmark{}, err
			}

			return usecase.repository.BenchmarkById(ctx, tx, newBenchmarkId)
		})
}

func (usecase *BenchmarkUseCase) TransitionBenchmarkStatus(
	ctx context.Context,
	benchmarkId uuid.UUID,
	target models.BenchmarkStatus,
	actorId uuid.UUID,
) (models.Benchmark, error) {
	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.Benchmark, error) {
			benchmark, err := usecase.repository.BenchmarkById(ctx, tx, benchmarkId)
			if err != nil {
				return models.Benchmark{}, err
			}

			if !benchmark.Status.CanTransitionTo(target) {
				return models.Benchmark{}, errors.Wrap(models.InvalidTransitionError,
					fmt.Sprintf("benchmark status %q cannot move to %q", benchmark.Status, target))
			}

			if err := usecase.repository.UpdateBenchmarkStatus(ctx, tx, benchmarkId, target); err != nil {
				return models.Benchmark{}, err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventBenchmarkStatusChanged,
				AggregateType: models.AggregateBenchmark,
				AggregateId:   benchmarkId,
				Payload:       statusChangePayload(benchmark.Status, target),
				ActorId:       &actorId,
			}); err != nil {
				return models.Benchmark{}, err
			}

			if err := usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
				Action:       "benchmark.status_changed",
				ResourceType: models.AggregateBenchmark,
				ResourceId:   benchmarkId,
				ActorId:      &actorId,
				OldValues:    statusPayload(benchmark.Status),
				NewValues:    statusPayload(target),
			}); err != nil {
				return models.Benchmark{}, err
			}

			return usecase.repository.BenchmarkById(ctx, tx, benchmarkId)
		})
}

func (usecase *BenchmarkUseCase) SearchBenchmarks(
	ctx context.Context,
	term string,
	limit int,
) ([]models.BenchmarkSearchResult, error) {
	if term == "" {
		return nil, errors.Wrap(models.BadParameterError, "empty search term")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	results, err := usecase.repository.SearchBenchmarks(ctx, usecase.executorFactory.NewExecutor(), term, limit)
	if err != nil {
		return nil, err
	}

	// Trigram similarity is blind to transpositions in short queries, so
	// name and slug matches get a second pass with Jaro-Winkler and keep
	// whichever score is higher.
	for i := range results {
		jw := pure_utils.BestSimilarity(term, results[i].Benchmark.Name, results[i].Benchmark.Slug)
		if jw > results[i].Similarity {
			results[i].Similarity = jw
		}
	}
	slices.SortStableFunc(results, func(a, b models.BenchmarkSearchResult) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
	return results, nil
}

func (usecase *BenchmarkUseCase) GetBenchmarkVersion(
	ctx context.Context,
	versionId uuid.UUID,
) (models.BenchmarkVersion, error) {
	return usecase.repository.BenchmarkVersionById(ctx, usecase.executorFactory.NewExecutor(), versionId)
}

// GetBenchmarkVersionByString resolves a version from its string form, e.g.
// "1.2.0" or "2.0.0-rc.1".
func (usecase *BenchmarkUseCase) GetBenchmarkVersionByString(
	ctx context.Context,
	benchmarkId uuid.UUID,
	version string,
) (models.BenchmarkVersion, error) {
	parsed, err := models.ParseSemanticVersion(version)
	if err != nil {
		return models.BenchmarkVersion{}, err
	}
	return usecase.repository.BenchmarkVersionByNumber(ctx, usecase.executorFactory.NewExecutor(),
		benchmarkId, parsed)
}

func (usecase *BenchmarkUseCase) ListBenchmarkVersions(
	ctx context.Context,
	benchmarkId uuid.UUID,
) ([]models.BenchmarkVersion, error) {
	return usecase.repository.ListBenchmarkVersions(ctx, usecase.executorFactory.NewExecutor(), benchmarkId)
}

// PublishBenchmarkVersion computes the next semantic version from the highest
// existing one (an unversioned benchmark starts from 0.0.0) and publishes the
// evaluation configuration under it.
func (usecase *BenchmarkUseCase) PublishBenchmarkVersion(
	ctx context.Context,
	input models.CreateBenchmarkVersionInput,
) (models.BenchmarkVersion, error) {
	if err := validateStruct(input); err != nil {
		return models.BenchmarkVersion{}, err
	}
	if !input.AggregationMethod.IsValid() {
		return models.BenchmarkVersion{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown aggregation method %q", input.AggregationMethod))
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.BenchmarkVersion, error) {
			if _, err := usecase.repository.BenchmarkById(ctx, tx, input.BenchmarkId); err != nil {
				return models.BenchmarkVersion{}, err
			}

			highest, err := usecase.repository.HighestBenchmarkVersion(ctx, tx, input.BenchmarkId)
			if err != nil {
				return models.BenchmarkVersion{}, err
			}

			baseline := models.SemanticVersion{}
			var parentVersionId *uuid.UUID
			if highest != nil {
				baseline = highest.Version
				parentVersionId = &highest.Id
			}

			next, err := baseline.Bump(input.Bump)
			if err != nil {
				return models.BenchmarkVersion{}, err
			}

			version := models.BenchmarkVersion{
				Id:                uuid.New(),
				BenchmarkId:       input.BenchmarkId,
				Version:           next,
				ParentVersionId:   parentVersionId,
				Changelog:         input.Changelog,
				PrimaryMetric:     input.PrimaryMetric,
				AggregationMethod: input.AggregationMethod,
				Normalization:     input.Normalization,
				ExecutionLimits:   input.ExecutionLimits,
				Datasets:          input.Datasets,
				CreatedBy:         input.CreatedBy,
			}

			if err := usecase.repository.CreateBenchmarkVersion(ctx, tx, version); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.BenchmarkVersion{}, errors.Wrap(models.ConflictError,
						fmt.Sprintf("version %s of benchmark %s already exists", next, input.BenchmarkId))
				}
				return models.BenchmarkVersion{}, err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventBenchmarkVersionCreated,
				AggregateType: models.AggregateBenchmark,
				AggregateId:   input.BenchmarkId,
				ActorId:       &input.CreatedBy,
			}); err != nil {
				return models.BenchmarkVersion{}, err
			}

			return usecase.repository.BenchmarkVersionById(ctx, tx, version.Id)
		})
}

func (usecase *BenchmarkUseCase) ListTestCases(
	ctx context.Context,
	versionId uuid.UUID,
) ([]models.TestCase, error) {
	return usecase.repository.TestCasesOfVersion(ctx, usecase.executorFactory.NewExecutor(), versionId)
}

// AddTestCase attaches a test case to a version. Versions referenced by at
// least one submission are frozen: their test cases can no longer change.
func (usecase *BenchmarkUseCase) AddTestCase(
	ctx context.Context,
	input models.CreateTestCaseInput,
) (uuid.UUID, error) {
	if err := validateStruct(input); err != nil {
		return uuid.Nil, err
	}
	if !input.EvaluationMethod.Type.IsValid() {
		return uuid.Nil, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown evaluation method %q", input.EvaluationMethod.Type))
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (uuid.UUID, error) {
			if _, err := usecase.repository.BenchmarkVersionById(ctx, tx, input.BenchmarkVersionId); err != nil {
				return uuid.Nil, err
			}

			submissionCount, err := usecase.repository.CountSubmissionsOfVersion(ctx, tx, input.BenchmarkVersionId)
			if err != nil {
				return uuid.Nil, err
			}
			if submissionCount > 0 {
				return uuid.Nil, errors.Wrap(models.ErrVersionImmutable,
					fmt.Sprintf("version %s has %d submissions", input.BenchmarkVersionId, submissionCount))
			}

			newTestCaseId := uuid.New()
			if err := usecase.repository.CreateTestCase(ctx, tx, input, newTestCaseId); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return uuid.Nil, errors.Wrap(models.ConflictError,
						fmt.Sprintf("test case %q already exists on this version", input.TestCaseId))
				}
				return uuid.Nil, err
			}
			return newTestCaseId, nil
		})
}

func statusPayload(status any) []byte {
	return fmt.Appendf(nil, `{"status":%q}`, status)
}

func statusChangePayload(from, to any) []byte {
	return fmt.Appendf(nil, `{"from":%q,"to":%q}`, from, to)
}
