package usecases

import (
	"context"
	"fmt"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"
	"github.com/benchlooms/exchange-backend/usecases/scoring"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v2"
)

type SubmissionUseCaseRepository interface {
	SubmissionById(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID) (models.Submission, error)
	ListSubmissions(ctx context.Context, exec repositories.Executor, filters models.SubmissionFilters) ([]models.Submission, error)
	CreateSubmission(ctx context.Context, exec repositories.Executor, submission models.Submission) error
	CreateTestCaseResults(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID,
		results []models.SubmitTestCaseResult) error
	CreateMetricScores(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID,
		scores []models.MetricScore) error
	TestCaseResultsOfSubmission(ctx context.Context, exec repositories.Executor,
		submissionId uuid.UUID) ([]models.TestCaseResult, error)
	MetricScoresOfSubmission(ctx context.Context, exec repositories.Executor,
		submissionId uuid.UUID) ([]models.MetricScore, error)
	SoftDeleteSubmission(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID) error
}

type submissionBenchmarkRepository interface {
	BenchmarkById(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID) (models.Benchmark, error)
	BenchmarkVersionById(ctx context.Context, exec repositories.Executor, versionId uuid.UUID) (models.BenchmarkVersion, error)
	TestCasesOfVersion(ctx context.Context, exec repositories.Executor, versionId uuid.UUID) ([]models.TestCase, error)
}

type submissionVerificationRepository interface {
	PendingVerificationOfSubmission(ctx context.Context, exec repositories.Executor,
		submissionId uuid.UUID, verifierType models.VerifierType) (*models.Verification, error)
	CreateVerification(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID,
		verifierType models.VerifierType, newVerificationId uuid.UUID) error
}

type SubmissionUseCase struct {
	transactionFactory     executor_factory.TransactionFactory
	executorFactory        executor_factory.ExecutorFactory
	repository             SubmissionUseCaseRepository
	benchmarkRepository    submissionBenchmarkRepository
	verificationRepository submissionVerificationRepository
	eventRepository        benchmarkEventRepository
	auditRepository        benchmarkAuditRepository
	taskQueueRepository    repositories.TaskQueueRepository
}

func (usecase *SubmissionUseCase) GetSubmission(ctx context.Context, submissionId uuid.UUID) (models.Submission, error) {
	submission, err := usecase.repository.SubmissionById(ctx, usecase.executorFactory.NewExecutor(), submissionId)
	if err != nil {
		return models.Submission{}, err
	}
	if submission.IsDeleted() {
		return models.Submission{}, errors.Wrap(models.NotFoundError,
			fmt.Sprintf("submission %s is deleted", submissionId))
	}
	return submission, nil
}

func (usecase *SubmissionUseCase) ListSubmissions(
	ctx context.Context,
	filters models.SubmissionFilters,
) ([]models.Submission, error) {
	return usecase.repository.ListSubmissions(ctx, usecase.executorFactory.NewExecutor(), filters)
}

func (usecase *SubmissionUseCase) GetSubmissionResults(
	ctx context.Context,
	submissionId uuid.UUID,
) ([]models.TestCaseResult, error) {
	if _, err := usecase.GetSubmission(ctx, submissionId); err != nil {
		return nil, err
	}
	return usecase.repository.TestCaseResultsOfSubmission(ctx, usecase.executorFactory.NewExecutor(), submissionId)
}

// Submit validates the result set against the benchmark version's test cases,
// computes the aggregate score and persists everything atomically with the
// outbox event.
func (usecase *SubmissionUseCase) Submit(ctx context.Context, input models.SubmitInput) (models.Submission, error) {
	if err := validateStruct(input); err != nil {
		return models.Submission{}, err
	}
	if input.Visibility == "" {
		input.Visibility = models.VisibilityPublic
	}
	if !input.Visibility.IsValid() {
		return models.Submission{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown visibility %q", input.Visibility))
	}

	submission, err := executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.Submission, error) {
			version, err := usecase.benchmarkRepository.BenchmarkVersionById(ctx, tx, input.BenchmarkVersionId)
			if err != nil {
				return models.Submission{}, err
			}

			benchmark, err := usecase.benchmarkRepository.BenchmarkById(ctx, tx, version.BenchmarkId)
			if err != nil {
				return models.Submission{}, err
			}
			if !benchmark.Status.AcceptsSubmissions() {
				return models.Submission{}, errors.Wrap(models.InvalidTransitionError,
					fmt.Sprintf("benchmark %q does not accept submissions in status %q",
						benchmark.Slug, benchmark.Status))
			}

			testCases, err := usecase.benchmarkRepository.TestCasesOfVersion(ctx, tx, version.Id)
			if err != nil {
				return models.Submission{}, err
			}

			scored, err := matchResultsToTestCases(input.Results, testCases)
			if err != nil {
				return models.Submission{}, err
			}

			aggregate, err := scoring.AggregateScores(version.AggregationMethod, scored)
			if err != nil {
				return models.Submission{}, err
			}

			if ci := input.ConfidenceInterval; ci != nil && !ci.Brackets(aggregate) {
				return models.Submission{}, errors.Wrap(models.ErrConfidenceIntervalMismatch,
					fmt.Sprintf("aggregate score %.4f outside [%.4f, %.4f]",
						aggregate, ci.Lower, ci.Upper))
			}

			submission := models.Submission{
				Id:                 uuid.New(),
				BenchmarkId:        benchmark.Id,
				BenchmarkVersionId: version.Id,
				SubmittedBy:        input.SubmittedBy,
				OrganizationId:     input.OrganizationId,
				ModelInfo:          input.ModelInfo,
				ExecutionId:        input.ExecutionId,
				AggregateScore:     aggregate,
				ConfidenceInterval: input.ConfidenceInterval,
				VerificationLevel:  models.VerificationLevelUnverified,
				Visibility:         input.Visibility,
			}

			if err := usecase.repository.CreateSubmission(ctx, tx, submission); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.Submission{}, errors.Wrap(models.ErrDuplicateSubmission,
						fmt.Sprintf("execution %q of %s/%s already submitted on this version",
							input.ExecutionId, input.ModelInfo.Provider, input.ModelInfo.ModelName))
				}
				return models.Submission{}, err
			}

			if err := usecase.repository.CreateTestCaseResults(ctx, tx, submission.Id, input.Results); err != nil {
				return models.Submission{}, err
			}

			metricScores := make([]models.MetricScore, 0, len(input.MetricScores))
			for name, value := range input.MetricScores {
				metricScores = append(metricScores, models.MetricScore{
					SubmissionId: submission.Id,
					Name:         name,
					Value:        value,
				})
			}
			if err := usecase.repository.CreateMetricScores(ctx, tx, submission.Id, metricScores); err != nil {
				return models.Submission{}, err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventSubmissionCreated,
				AggregateType: models.AggregateSubmission,
				AggregateId:   submission.Id,
				ActorId:       &input.SubmittedBy,
			}); err != nil {
				return models.Submission{}, err
			}

			if err := usecase.taskQueueRepository.EnqueueLeaderboardRefreshTask(
				ctx, tx, "submission.created"); err != nil {
				return models.Submission{}, err
			}

			return usecase.repository.SubmissionById(ctx, tx, submission.Id)
		})
	if err != nil {
		return models.Submission{}, err
	}

	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "submission created",
		"submission_id", submission.Id,
		"benchmark_id", submission.BenchmarkId,
		"aggregate_score", submission.AggregateScore)

	return submission, nil
}

// RequestVerification opens a platform or auditor verification and enqueues
// the run in the same transaction, so the job exists iff the row does.
func (usecase *SubmissionUseCase) RequestVerification(
	ctx context.Context,
	submissionId uuid.UUID,
	verifierType models.VerifierType,
	actorId uuid.UUID,
) (uuid.UUID, error) {
	if !verifierType.IsValid() {
		return uuid.Nil, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown verifier type %q", verifierType))
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (uuid.UUID, error) {
			submission, err := usecase.repository.SubmissionById(ctx, tx, submissionId)
			if err != nil {
				return uuid.Nil, err
			}
			if submission.IsDeleted() {
				return uuid.Nil, errors.Wrap(models.NotFoundError,
					fmt.Sprintf("submission %s is deleted", submissionId))
			}

			pending, err := usecase.verificationRepository.PendingVerificationOfSubmission(
				ctx, tx, submissionId, verifierType)
			if err != nil {
				return uuid.Nil, err
			}
			if pending != nil {
				return uuid.Nil, errors.Wrap(models.ConflictError,
					fmt.Sprintf("a %s verification is already running for submission %s",
						verifierType, submissionId))
			}

			newVerificationId := uuid.New()
			if err := usecase.verificationRepository.CreateVerification(
				ctx, tx, submissionId, verifierType, newVerificationId); err != nil {
				return uuid.Nil, err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventVerificationRequested,
				AggregateType: models.AggregateVerification,
				AggregateId:   newVerificationId,
				ActorId:       &actorId,
			}); err != nil {
				return uuid.Nil, err
			}

			if err := usecase.taskQueueRepository.EnqueueVerificationRunTask(
				ctx, tx, newVerificationId, submissionId); err != nil {
				return uuid.Nil, err
			}

			return newVerificationId, nil
		})
}

// DeleteSubmission soft-deletes: the row stays for audit but disappears from
// listings and the next leaderboard refresh.
func (usecase *SubmissionUseCase) DeleteSubmission(
	ctx context.Context,
	submissionId uuid.UUID,
	actorId uuid.UUID,
) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		submission, err := usecase.repository.SubmissionById(ctx, tx, submissionId)
		if err != nil {
			return err
		}
		if submission.IsDeleted() {
			return errors.Wrap(models.NotFoundError,
				fmt.Sprintf("submission %s is already deleted", submissionId))
		}

		if err := usecase.repository.SoftDeleteSubmission(ctx, tx, submissionId); err != nil {
			return err
		}

		if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
			EventType:     models.EventSubmissionDeleted,
			AggregateType: models.AggregateSubmission,
			AggregateId:   submissionId,
			ActorId:       &actorId,
		}); err != nil {
			return err
		}

		if err := usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
			Action:       "submission.deleted",
			ResourceType: models.AggregateSubmission,
			ResourceId:   submissionId,
			ActorId:      &actorId,
		}); err != nil {
			return err
		}

		return usecase.taskQueueRepository.EnqueueLeaderboardRefreshTask(
			ctx, tx, "submission.deleted")
	})
}

// matchResultsToTestCases enforces a bijection between submitted results and
// the version's test cases: no unknown ids, no duplicates, no missing ones.
func matchResultsToTestCases(
	results []models.SubmitTestCaseResult,
	testCases []models.TestCase,
) ([]scoring.ScoredResult, error) {
	weightsByTestCase := make(map[string]float64, len(testCases))
	for _, tc := range testCases {
		weightsByTestCase[tc.TestCaseId] = tc.Weight
	}

	seen := set.New[string](len(results))
	scored := make([]scoring.ScoredResult, 0, len(results))
	for _, result := range results {
		weight, ok := weightsByTestCase[result.TestCaseId]
		if !ok {
			return nil, errors.Wrap(models.ErrUnknownTestCase,
				fmt.Sprintf("test case %q does not belong to this version", result.TestCaseId))
		}
		if !seen.Insert(result.TestCaseId) {
			return nil, errors.Wrap(models.BadParameterError,
				fmt.Sprintf("duplicate result for test case %q", result.TestCaseId))
		}
		scored = append(scored, scoring.ScoredResult{Score: result.Score, Weight: weight})
	}

	if seen.Size() != len(testCases) {
		return nil, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("expected results for %d test cases, got %d", len(testCases), seen.Size()))
	}

	return scored, nil
}
