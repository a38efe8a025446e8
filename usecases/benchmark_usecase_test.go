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

type BenchmarkUsecaseTestSuite struct {
	suite.Suite
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory
	repository         *mocks.BenchmarkRepository
	eventRepository    *mocks.EventRepository
	auditRepository    *mocks.AuditRepository

	ctx         context.Context
	benchmarkId uuid.UUID
	versionId   uuid.UUID
	actorId     uuid.UUID
	benchmark   models.Benchmark
}

func (suite *BenchmarkUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.repository = new(mocks.BenchmarkRepository)
	suite.eventRepository = new(mocks.EventRepository)
	suite.auditRepository = new(mocks.AuditRepository)

	suite.ctx = context.Background()
	suite.benchmarkId = uuid.MustParse("0c1b0d8a-8b5e-4a0f-9d2c-2e6d9c1f4a01")
	suite.versionId = uuid.MustParse("7f3e2a1b-5c4d-4e6f-8a9b-0c1d2e3f4a02")
	suite.actorId = uuid.MustParse("d4c3b2a1-0f9e-4d7c-b6a5-948372615a03")
	suite.benchmark = models.Benchmark{
		Id:       suite.benchmarkId,
		Slug:     "mmlu-pro",
		Name:     "MMLU Pro",
		Status:   models.BenchmarkStatusDraft,
		Category: models.CategoryAccuracy,
	}
}

func (suite *BenchmarkUsecaseTestSuite) makeUsecase() *BenchmarkUseCase {
	return &BenchmarkUseCase{
		transactionFactory: suite.transactionFactory,
		executorFactory:    suite.executorFactory,
		repository:         suite.repository,
		eventRepository:    suite.eventRepository,
		auditRepository:    suite.auditRepository,
	}
}

func (suite *BenchmarkUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.transactionFactory.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.eventRepository.AssertExpectations(t)
	suite.auditRepository.AssertExpectations(t)
}

func validCreateBenchmarkInput(createdBy uuid.UUID) models.CreateBenchmarkInput {
	return models.CreateBenchmarkInput{
		Slug: "mmlu-pro",
		Name: "MMLU Pro",
		Description: "A harder multi-task language understanding benchmark with " +
			"reasoning-focused questions across many domains.",
		Category:  models.CategoryAccuracy,
		License:   "MIT",
		CreatedBy: createdBy,
	}
}

func (suite *BenchmarkUsecaseTestSuite) TestCreateBenchmark() {
	input := validCreateBenchmarkInput(suite.actorId)

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("CreateBenchmark", suite.ctx, suite.transaction, input, mock.Anything).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventBenchmarkCreated
		})).Return(nil)
	suite.repository.On("BenchmarkById", suite.ctx, suite.transaction, mock.Anything).
		Return(suite.benchmark, nil)

	result, err := suite.makeUsecase().CreateBenchmark(suite.ctx, input)

	suite.NoError(err)
	suite.Equal(suite.benchmark, result)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestCreateBenchmark_invalid_slug() {
	input := validCreateBenchmarkInput(suite.actorId)
	input.Slug = "MMLU--Pro"

	_, err := suite.makeUsecase().CreateBenchmark(suite.ctx, input)

	suite.ErrorIs(err, models.ErrInvalidSlug)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestCreateBenchmark_short_description() {
	input := validCreateBenchmarkInput(suite.actorId)
	input.Description = "too short"

	_, err := suite.makeUsecase().CreateBenchmark(suite.ctx, input)

	suite.ErrorIs(err, models.ErrDescriptionTooShort)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestCreateBenchmark_duplicate_slug() {
	input := validCreateBenchmarkInput(suite.actorId)

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("CreateBenchmark", suite.ctx, suite.transaction, input, mock.Anything).
		Return(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := suite.makeUsecase().CreateBenchmark(suite.ctx, input)

	suite.ErrorIs(err, models.ConflictError)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestTransitionBenchmarkStatus() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("BenchmarkById", suite.ctx, suite.transaction, suite.benchmarkId).
		Return(suite.benchmark, nil)
	suite.repository.On("UpdateBenchmarkStatus", suite.ctx, suite.transaction,
		suite.benchmarkId, models.BenchmarkStatusUnderReview).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventBenchmarkStatusChanged
		})).Return(nil)
	suite.auditRepository.On("CreateAuditEntry", suite.ctx, suite.transaction,
		mock.MatchedBy(func(entry models.CreateAuditEntry) bool {
			return entry.Action == "benchmark.status_changed"
		})).Return(nil)

	_, err := suite.makeUsecase().TransitionBenchmarkStatus(
		suite.ctx, suite.benchmarkId, models.BenchmarkStatusUnderReview, suite.actorId)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestTransitionBenchmarkStatus_invalid() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("BenchmarkById", suite.ctx, suite.transaction, suite.benchmarkId).
		Return(suite.benchmark, nil)

	_, err := suite.makeUsecase().TransitionBenchmarkStatus(
		suite.ctx, suite.benchmarkId, models.BenchmarkStatusArchived, suite.actorId)

	suite.ErrorIs(err, models.InvalidTransitionError)
	suite.AssertExpectations()
}

func validVersionInput(benchmarkId, createdBy uuid.UUID) models.CreateBenchmarkVersionInput {
	return models.CreateBenchmarkVersionInput{
		BenchmarkId:       benchmarkId,
		Bump:              models.BumpMajor,
		Changelog:         "Initial release",
		PrimaryMetric:     "accuracy",
		AggregationMethod: models.AggregationWeightedAverage,
		Normalization:     models.NormalizationNone,
		ExecutionLimits: models.ExecutionLimits{
			TimeoutPerTestMs:      30000,
			MaxConcurrentRequests: 4,
		},
		CreatedBy: createdBy,
	}
}

// A benchmark without versions starts from the implicit baseline 0.0.0, so
// the first major bump lands on 1.0.0 with no parent.
func (suite *BenchmarkUsecaseTestSuite) TestPublishBenchmarkVersion_first_version() {
	input := validVersionInput(suite.benchmarkId, suite.actorId)

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("BenchmarkById", suite.ctx, suite.transaction, suite.benchmarkId).
		Return(suite.benchmark, nil)
	suite.repository.On("HighestBenchmarkVersion", suite.ctx, suite.transaction, suite.benchmarkId).
		Return((*models.BenchmarkVersion)(nil), nil)
	suite.repository.On("CreateBenchmarkVersion", suite.ctx, suite.transaction,
		mock.MatchedBy(func(version models.BenchmarkVersion) bool {
			return version.Version == models.SemanticVersion{Major: 1} &&
				version.ParentVersionId == nil
		})).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventBenchmarkVersionCreated
		})).Return(nil)
	suite.repository.On("BenchmarkVersionById", suite.ctx, suite.transaction, mock.Anything).
		Return(models.BenchmarkVersion{Version: models.SemanticVersion{Major: 1}}, nil)

	version, err := suite.makeUsecase().PublishBenchmarkVersion(suite.ctx, input)

	suite.NoError(err)
	suite.Equal("1.0.0", version.Version.String())
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestPublishBenchmarkVersion_minor_bump() {
	input := validVersionInput(suite.benchmarkId, suite.actorId)
	input.Bump = models.BumpMinor

	highest := models.BenchmarkVersion{
		Id:          suite.versionId,
		BenchmarkId: suite.benchmarkId,
		Version:     models.SemanticVersion{Major: 2, Minor: 1, Patch: 3},
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("BenchmarkById", suite.ctx, suite.transaction, suite.benchmarkId).
		Return(suite.benchmark, nil)
	suite.repository.On("HighestBenchmarkVersion", suite.ctx, suite.transaction, suite.benchmarkId).
		Return(&highest, nil)
	suite.repository.On("CreateBenchmarkVersion", suite.ctx, suite.transaction,
		mock.MatchedBy(func(version models.BenchmarkVersion) bool {
			return version.Version == models.SemanticVersion{Major: 2, Minor: 2} &&
				version.ParentVersionId != nil && *version.ParentVersionId == suite.versionId
		})).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction, mock.Anything).Return(nil)
	suite.repository.On("BenchmarkVersionById", suite.ctx, suite.transaction, mock.Anything).
		Return(models.BenchmarkVersion{Version: models.SemanticVersion{Major: 2, Minor: 2}}, nil)

	version, err := suite.makeUsecase().PublishBenchmarkVersion(suite.ctx, input)

	suite.NoError(err)
	suite.Equal("2.2.0", version.Version.String())
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestAddTestCase_frozen_version() {
	input := models.CreateTestCaseInput{
		BenchmarkVersionId: suite.versionId,
		TestCaseId:         "reasoning-01",
		Name:               "Chained deduction",
		PromptTemplate:     "Given {{premise}}, what follows?",
		EvaluationMethod:   models.EvaluationMethod{Type: models.EvaluationExactMatch},
		Weight:             0.5,
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("BenchmarkVersionById", suite.ctx, suite.transaction, suite.versionId).
		Return(models.BenchmarkVersion{Id: suite.versionId}, nil)
	suite.repository.On("CountSubmissionsOfVersion", suite.ctx, suite.transaction, suite.versionId).
		Return(3, nil)

	_, err := suite.makeUsecase().AddTestCase(suite.ctx, input)

	suite.ErrorIs(err, models.ErrVersionImmutable)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestGetBenchmarkVersionByString() {
	expected := models.SemanticVersion{Major: 2, Minor: 0, Patch: 0, Prerelease: "rc.1"}
	suite.executorFactory.On("NewExecutor").Return(nil)
	suite.repository.On("BenchmarkVersionByNumber", suite.ctx, nil, suite.benchmarkId, expected).
		Return(models.BenchmarkVersion{BenchmarkId: suite.benchmarkId, Version: expected}, nil)

	version, err := suite.makeUsecase().GetBenchmarkVersionByString(
		suite.ctx, suite.benchmarkId, "2.0.0-rc.1")

	suite.NoError(err)
	suite.Equal(expected, version.Version)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestGetBenchmarkVersionByString_invalid() {
	_, err := suite.makeUsecase().GetBenchmarkVersionByString(
		suite.ctx, suite.benchmarkId, "not-a-version")

	suite.ErrorIs(err, models.BadParameterError)
	suite.repository.AssertNotCalled(suite.T(), "BenchmarkVersionByNumber",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestSearchBenchmarks_empty_term() {
	_, err := suite.makeUsecase().SearchBenchmarks(suite.ctx, "", 10)

	suite.ErrorIs(err, models.BadParameterError)
	suite.AssertExpectations()
}

func (suite *BenchmarkUsecaseTestSuite) TestSearchBenchmarks_reranks_close_name_matches() {
	suite.executorFactory.On("NewExecutor").Return(nil)
	suite.repository.On("SearchBenchmarks", suite.ctx, nil, "helaswag", 10).Return(
		[]models.BenchmarkSearchResult{
			{Benchmark: models.Benchmark{Name: "GSM8K", Slug: "gsm8k"}, Similarity: 0.35},
			{Benchmark: models.Benchmark{Name: "HellaSwag", Slug: "hellaswag"}, Similarity: 0.30},
		}, nil)

	results, err := suite.makeUsecase().SearchBenchmarks(suite.ctx, "helaswag", 10)

	suite.NoError(err)
	suite.Require().Len(results, 2)
	suite.Equal("HellaSwag", results[0].Benchmark.Name)
	suite.Greater(results[0].Similarity, 0.9)
	suite.AssertExpectations()
}

func TestBenchmarkUsecase(t *testing.T) {
	suite.Run(t, new(BenchmarkUsecaseTestSuite))
}
