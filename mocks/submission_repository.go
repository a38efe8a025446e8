package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
)

type SubmissionRepository struct {
	mock.Mock
}

func (m *SubmissionRepository) SubmissionById(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID) (models.Submission, error) {
	args := m.Called(ctx, exec, submissionId)
	return args.Get(0).(models.Submission), args.Error(1)
}

func (m *SubmissionRepository) ListSubmissions(ctx context.Context, exec repositories.Executor, filters models.SubmissionFilters) ([]models.Submission, error) {
	args := m.Called(ctx, exec, filters)
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *SubmissionRepository) ListLeaderboardSources(ctx context.Context, exec repositories.Executor) ([]models.LeaderboardSource, error) {
	args := m.Called(ctx, exec)
	return args.Get(0).([]models.LeaderboardSource), args.Error(1)
}

func (m *SubmissionRepository) CreateSubmission(ctx context.Context, exec repositories.Executor, submission models.Submission) error {
	args := m.Called(ctx, exec, submission)
	return args.Error(0)
}

func (m *SubmissionRepository) CreateTestCaseResults(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID,
	results []models.SubmitTestCaseResult,
) error {
	args := m.Called(ctx, exec, submissionId, results)
	return args.Error(0)
}

func (m *SubmissionRepository) CreateMetricScores(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID,
	scores []models.MetricScore,
) error {
	args := m.Called(ctx, exec, submissionId, scores)
	return args.Error(0)
}

func (m *SubmissionRepository) TestCaseResultsOfSubmission(ctx context.Context, exec repositories.Executor,
	submissionId uuid.UUID,
) ([]models.TestCaseResult, error) {
	args := m.Called(ctx, exec, submissionId)
	return args.Get(0).([]models.TestCaseResult), args.Error(1)
}

func (m *SubmissionRepository) MetricScoresOfSubmission(ctx context.Context, exec repositories.Executor,
	submissionId uuid.UUID,
) ([]models.MetricScore, error) {
	args := m.Called(ctx, exec, submissionId)
	return args.Get(0).([]models.MetricScore), args.Error(1)
}

func (m *SubmissionRepository) UpdateSubmissionVerificationLevel(ctx context.Context, exec repositories.Executor,
	submissionId uuid.UUID, level models.VerificationLevel,
) error {
	args := m.Called(ctx, exec, submissionId, level)
	return args.Error(0)
}

func (m *SubmissionRepository) SoftDeleteSubmission(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID) error {
	args := m.Called(ctx, exec, submissionId)
	return args.Error(0)
}
