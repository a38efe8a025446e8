package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
)

type BenchmarkRepository struct {
	mock.Mock
}

func (m *BenchmarkRepository) BenchmarkById(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID) (models.Benchmark, error) {
	args := m.Called(ctx, exec, benchmarkId)
	return args.Get(0).(models.Benchmark), args.Error(1)
}

func (m *BenchmarkRepository) BenchmarkBySlug(ctx context.Context, exec repositories.Executor, slug string) (*models.Benchmark, error) {
	args := m.Called(ctx, exec, slug)
	return args.Get(0).(*models.Benchmark), args.Error(1)
}

func (m *BenchmarkRepository) ListBenchmarks(ctx context.Context, exec repositories.Executor, filters models.BenchmarkFilters) ([]models.Benchmark, error) {
	args := m.Called(ctx, exec, filters)
	return args.Get(0).([]models.Benchmark), args.Error(1)
}

func (m *BenchmarkRepository) CreateBenchmark(ctx context.Context, exec repositories.Executor, input models.CreateBenchmarkInput, newBenchmarkId uuid.UUID) error {
	args := m.Called(ctx, exec, input, newBenchmarkId)
	return args.Error(0)
}

func (m *BenchmarkRepository) UpdateBenchmarkStatus(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID, status models.BenchmarkStatus) error {
	args := m.Called(ctx, exec, benchmarkId, status)
	return args.Error(0)
}

func (m *BenchmarkRepository) SearchBenchmarks(ctx context.Context, exec repositories.Executor, term string, limit int) ([]models.BenchmarkSearchResult, error) {
	args := m.Called(ctx, exec, term, limit)
	return args.Get(0).([]models.BenchmarkSearchResult), args.Error(1)
}

func (m *BenchmarkRepository) BenchmarkVersionById(ctx context.Context, exec repositories.Executor, versionId uuid.UUID) (models.BenchmarkVersion, error) {
	args := m.Called(ctx, exec, versionId)
	return args.Get(0).(models.BenchmarkVersion), args.Error(1)
}

func (m *BenchmarkRepository) BenchmarkVersionByNumber(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID, version models.SemanticVersion) (models.BenchmarkVersion, error) {
	args := m.Called(ctx, exec, benchmarkId, version)
	return args.Get(0).(models.BenchmarkVersion), args.Error(1)
}

func (m *BenchmarkRepository) ListBenchmarkVersions(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID) ([]models.BenchmarkVersion, error) {
	args := m.Called(ctx, exec, benchmarkId)
	return args.Get(0).([]models.BenchmarkVersion), args.Error(1)
}

func (m *BenchmarkRepository) HighestBenchmarkVersion(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID) (*models.BenchmarkVersion, error) {
	args := m.Called(ctx, exec, benchmarkId)
	return args.Get(0).(*models.BenchmarkVersion), args.Error(1)
}

func (m *BenchmarkRepository) CreateBenchmarkVersion(ctx context.Context, exec repositories.Executor, version models.BenchmarkVersion) error {
	args := m.Called(ctx, exec, version)
	return args.Error(0)
}

func (m *BenchmarkRepository) TestCasesOfVersion(ctx context.Context, exec repositories.Executor, versionId uuid.UUID) ([]models.TestCase, error) {
	args := m.Called(ctx, exec, versionId)
	return args.Get(0).([]models.TestCase), args.Error(1)
}

func (m *BenchmarkRepository) CreateTestCase(ctx context.Context, exec repositories.Executor, input models.CreateTestCaseInput, newTestCaseId uuid.UUID) error {
	args := m.Called(ctx, exec, input, newTestCaseId)
	return args.Error(0)
}

func (m *BenchmarkRepository) CountSubmissionsOfVersion(ctx context.Context, exec repositories.Executor, versionId uuid.UUID) (int, error) {
	args := m.Called(ctx, exec, versionId)
	return args.Int(0), args.Error(1)
}
