package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/benchlooms/exchange-backend/mocks"
	"github.com/benchlooms/exchange-backend/models"
)

type SubmissionUsecaseTestSuite struct {
	suite.Suite
	transaction            *mocks.Transaction
	transactionFactory     *mocks.TransactionFactory
	executorFactory        *mocks.ExecutorFactory
	repository             *mocks.SubmissionRepository
	benchmarkRepository    *mocks.BenchmarkRepository
	verificationRepository *mocks.VerificationRepository
	eventRepository        *mocks.EventRepository
	auditRepository        *mocks.AuditRepository
	taskQueueRepository    *mocks.TaskQueueRepository

	ctx          context.Context
	benchmarkId  uuid.UUID
	versionId    uuid.UUID
	submissionId uuid.UUID
	submitterId  uuid.UUID
	benchmark    models.Benchmark
	version      models.BenchmarkVersion
	testCases    []models.TestCase
}

func (suite *SubmissionUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.repository = new(mocks.SubmissionRepository)
	suite.benchmarkRepository = new(mocks.BenchmarkRepository)
	suite.verificationRepository = new(mocks.VerificationRepository)
	suite.eventRepository = new(mocks.EventRepository)
	suite.auditRepository = new(mocks.AuditRepository)
	suite.taskQueueRepository = new(mocks.TaskQueueRepository)

	suite.ctx = context.Background()
	suite.benchmarkId = uuid.MustParse("3d1a9c7e-6b5f-4d2a-8e0c-1f9b8a7d6c01")
	suite.versionId = uuid.MustParse("9e8d7c6b-5a4f-4e3d-2c1b-0a9f8e7d6c02")
	suite.submissionId = uuid.MustParse("5b4a3f2e-1d0c-4b9a-8f7e-6d5c4b3a2f03")
	suite.submitterId = uuid.MustParse("1f2e3d4c-5b6a-4f8e-9d0c-a1b2c3d4e504")

	suite.benchmark = models.Benchmark{
		Id:     suite.benchmarkId,
		Slug:   "mmlu-pro",
		Status: models.BenchmarkStatusActive,
	}
	suite.version = models.BenchmarkVersion{
		Id:                suite.versionId,
		BenchmarkId:       suite.benchmarkId,
		Version:           models.SemanticVersion{Major: 1},
		AggregationMethod: models.AggregationWeightedAverage,
	}
	suite.testCases = []models.TestCase{
		{TestCaseId: "reasoning-01", Weight: 0.7},
		{TestCaseId: "recall-01", Weight: 0.3},
	}
}

func (suite *SubmissionUsecaseTestSuite) makeUsecase() *SubmissionUseCase {
	return &SubmissionUseCase{
		transactionFactory:     suite.transactionFactory,
		executorFactory:        suite.executorFactory,
		repository:             suite.repository,
		benchmarkRepository:    suite.benchmarkRepository,
		verificationRepository: suite.verificationRepository,
		eventRepository:        suite.eventRepository,
		auditRepository:        suite.auditRepository,
		taskQueueRepository:    suite.taskQueueRepository,
	}
}

func (suite *SubmissionUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.transactionFactory.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.benchmarkRepository.AssertExpectations(t)
	suite.verificationRepository.AssertExpectations(t)
	suite.eventRepository.AssertExpectations(t)
	suite.auditRepository.AssertExpectations(t)
	suite.taskQueueRepository.AssertExpectations(t)
}

func (suite *SubmissionUsecaseTestSuite) validSubmitInput() models.SubmitInput {
	return models.SubmitInput{
		BenchmarkVersionId: suite.versionId,
		SubmittedBy:        suite.submitterId,
		ModelInfo: models.ModelInfo{
			Provider:  "acme",
			ModelName: "acme-large",
		},
		ExecutionId: "run-2026-001",
		Results: []models.SubmitTestCaseResult{
			{TestCaseId: "reasoning-01", Passed: true, Score: 1.0},
			{TestCaseId: "recall-01", Passed: false, Score: 0.5},
		},
	}
}

func (suite *SubmissionUsecaseTestSuite) expectVersionLookup() {
	suite.benchmarkRepository.On("BenchmarkVersionById", suite.ctx, suite.transaction, suite.versionId).
		Return(suite.version, nil)
	suite.benchmarkRepository.On("BenchmarkById", suite.ctx, suite.transaction, suite.benchmarkId).
		Return(suite.benchmark, nil)
	suite.benchmarkRepository.On("TestCasesOfVersion", suite.ctx, suite.transaction, suite.versionId).
		Return(suite.testCases, nil)
}

// Weighted aggregation over weights 0.7/0.3 and scores 1.0/0.5 yields 0.85.
func (suite *SubmissionUsecaseTestSuite) TestSubmit() {
	input := suite.validSubmitInput()

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.expectVersionLookup()
	suite.repository.On("CreateSubmission", suite.ctx, suite.transaction,
		mock.MatchedBy(func(submission models.Submission) bool {
			return submission.AggregateScore == 0.85 &&
				submission.VerificationLevel == models.VerificationLevelUnverified &&
				submission.Visibility == models.VisibilityPublic
		})).Return(nil)
	suite.repository.On("CreateTestCaseResults", suite.ctx, suite.transaction,
		mock.Anything, input.Results).Return(nil)
	suite.repository.On("CreateMetricScores", suite.ctx, suite.transaction,
		mock.Anything, mock.Anything).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventSubmissionCreated
		})).Return(nil)
	suite.taskQueueRepository.On("EnqueueLeaderboardRefreshTask", suite.ctx, suite.transaction,
		"submission.created").Return(nil)
	suite.repository.On("SubmissionById", suite.ctx, suite.transaction, mock.Anything).
		Return(models.Submission{Id: suite.submissionId, AggregateScore: 0.85}, nil)

	submission, err := suite.makeUsecase().Submit(suite.ctx, input)

	suite.NoError(err)
	suite.Equal(0.85, submission.AggregateScore)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestSubmit_confidence_interval_mismatch() {
	input := suite.validSubmitInput()
	input.ConfidenceInterval = &models.ConfidenceInterval{
		Lower: 0.9, Upper: 0.95, ConfidenceLevel: 0.95,
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.expectVersionLookup()

	_, err := suite.makeUsecase().Submit(suite.ctx, input)

	suite.ErrorIs(err, models.ErrConfidenceIntervalMismatch)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestSubmit_bracketing_confidence_interval() {
	input := suite.validSubmitInput()
	input.ConfidenceInterval = &models.ConfidenceInterval{
		Lower: 0.8, Upper: 0.9, ConfidenceLevel: 0.95,
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.expectVersionLookup()
	suite.repository.On("CreateSubmission", suite.ctx, suite.transaction, mock.Anything).Return(nil)
	suite.repository.On("CreateTestCaseResults", suite.ctx, suite.transaction,
		mock.Anything, input.Results).Return(nil)
	suite.repository.On("CreateMetricScores", suite.ctx, suite.transaction,
		mock.Anything, mock.Anything).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction, mock.Anything).Return(nil)
	suite.taskQueueRepository.On("EnqueueLeaderboardRefreshTask", suite.ctx, suite.transaction,
		"submission.created").Return(nil)
	suite.repository.On("SubmissionById", suite.ctx, suite.transaction, mock.Anything).
		Return(models.Submission{Id: suite.submissionId}, nil)

	_, err := suite.makeUsecase().Submit(suite.ctx, input)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestSubmit_unknown_test_case() {
	input := suite.validSubmitInput()
	input.Results[1].TestCaseId = "no-such-case"

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.expectVersionLookup()

	_, err := suite.makeUsecase().Submit(suite.ctx, input)

	suite.ErrorIs(err, models.ErrUnknownTestCase)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestSubmit_incomplete_results() {
	input := suite.validSubmitInput()
	input.Results = input.Results[:1]

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.expectVersionLookup()

	_, err := suite.makeUsecase().Submit(suite.ctx, input)

	suite.ErrorIs(err, models.BadParameterError)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestSubmit_duplicate_execution() {
	input := suite.validSubmitInput()

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.expectVersionLookup()
	suite.repository.On("CreateSubmission", suite.ctx, suite.transaction, mock.Anything).
		Return(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := suite.makeUsecase().Submit(suite.ctx, input)

	suite.ErrorIs(err, models.ErrDuplicateSubmission)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestSubmit_benchmark_not_accepting() {
	input := suite.validSubmitInput()
	suite.benchmark.Status = models.BenchmarkStatusDraft

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.benchmarkRepository.On("BenchmarkVersionById", suite.ctx, suite.transaction, suite.versionId).
		Return(suite.version, nil)
	suite.benchmarkRepository.On("BenchmarkById", suite.ctx, suite.transaction, suite.benchmarkId).
		Return(suite.benchmark, nil)

	_, err := suite.makeUsecase().Submit(suite.ctx, input)

	suite.ErrorIs(err, models.InvalidTransitionError)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestGetSubmission_deleted() {
	deleted := models.Submission{Id: suite.submissionId}
	deletedAt := deleted.CreatedAt
	deleted.DeletedAt = &deletedAt

	suite.executorFactory.On("NewExecutor").Return(nil)
	suite.repository.On("SubmissionById", suite.ctx, nil, suite.submissionId).
		Return(deleted, nil)

	_, err := suite.makeUsecase().GetSubmission(suite.ctx, suite.submissionId)

	suite.ErrorIs(err, models.NotFoundError)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestRequestVerification() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("SubmissionById", suite.ctx, suite.transaction, suite.submissionId).
		Return(models.Submission{Id: suite.submissionId}, nil)
	suite.verificationRepository.On("PendingVerificationOfSubmission", suite.ctx, suite.transaction,
		suite.submissionId, models.VerifierTypePlatform).
		Return((*models.Verification)(nil), nil)
	suite.verificationRepository.On("CreateVerification", suite.ctx, suite.transaction,
		suite.submissionId, models.VerifierTypePlatform, mock.Anything).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventVerificationRequested
		})).Return(nil)
	suite.taskQueueRepository.On("EnqueueVerificationRunTask", suite.ctx, suite.transaction,
		mock.Anything, suite.submissionId).Return(nil)

	verificationId, err := suite.makeUsecase().RequestVerification(
		suite.ctx, suite.submissionId, models.VerifierTypePlatform, suite.submitterId)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, verificationId)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestRequestVerification_already_pending() {
	pending := models.Verification{Id: uuid.New(), Status: models.VerificationStatusPending}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("SubmissionById", suite.ctx, suite.transaction, suite.submissionId).
		Return(models.Submission{Id: suite.submissionId}, nil)
	suite.verificationRepository.On("PendingVerificationOfSubmission", suite.ctx, suite.transaction,
		suite.submissionId, models.VerifierTypePlatform).
		Return(&pending, nil)

	_, err := suite.makeUsecase().RequestVerification(
		suite.ctx, suite.submissionId, models.VerifierTypePlatform, suite.submitterId)

	suite.ErrorIs(err, models.ConflictError)
	suite.AssertExpectations()
}

func (suite *SubmissionUsecaseTestSuite) TestDeleteSubmission() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("SubmissionById", suite.ctx, suite.transaction, suite.submissionId).
		Return(models.Submission{Id: suite.submissionId}, nil)
	suite.repository.On("SoftDeleteSubmission", suite.ctx, suite.transaction, suite.submissionId).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventSubmissionDeleted
		})).Return(nil)
	suite.auditRepository.On("CreateAuditEntry", suite.ctx, suite.transaction,
		mock.MatchedBy(func(entry models.CreateAuditEntry) bool {
			return entry.Action == "submission.deleted"
		})).Return(nil)
	suite.taskQueueRepository.On("EnqueueLeaderboardRefreshTask", suite.ctx, suite.transaction,
		"submission.deleted").Return(nil)

	err := suite.makeUsecase().DeleteSubmission(suite.ctx, suite.submissionId, suite.submitterId)

	suite.NoError(err)
	suite.AssertExpectations()
}

func TestSubmissionUsecase(t *testing.T) {
	suite.Run(t, new(SubmissionUsecaseTestSuite))
}
