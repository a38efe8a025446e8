package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
)

type VerificationRepository struct {
	mock.Mock
}

func (m *VerificationRepository) VerificationById(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID) (models.Verification, error) {
	args := m.Called(ctx, exec, verificationId)
	return args.Get(0).(models.Verification), args.Error(1)
}

func (m *VerificationRepository) VerificationsOfSubmission(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID) ([]models.Verification, error) {
	args := m.Called(ctx, exec, submissionId)
	return args.Get(0).([]models.Verification), args.Error(1)
}

func (m *VerificationRepository) PendingVerificationOfSubmission(ctx context.Context, exec repositories.Executor,
	submissionId uuid.UUID, verifierType models.VerifierType,
) (*models.Verification, error) {
	args := m.Called(ctx, exec, submissionId, verifierType)
	return args.Get(0).(*models.Verification), args.Error(1)
}

func (m *VerificationRepository) CreateVerification(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID,
	verifierType models.VerifierType, newVerificationId uuid.UUID,
) error {
	args := m.Called(ctx, exec, submissionId, verifierType, newVerificationId)
	return args.Error(0)
}

func (m *VerificationRepository) UpdateVerificationStatus(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID,
	status models.VerificationStatus,
) error {
	args := m.Called(ctx, exec, verificationId, status)
	return args.Error(0)
}

func (m *VerificationRepository) CompleteVerification(ctx context.Context, exec repositories.Executor, result models.VerificationResult) error {
	args := m.Called(ctx, exec, result)
	return args.Error(0)
}

func (m *VerificationRepository) AttemptsOfVerification(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID) ([]models.VerificationAttempt, error) {
	args := m.Called(ctx, exec, verificationId)
	return args.Get(0).([]models.VerificationAttempt), args.Error(1)
}

func (m *VerificationRepository) HighestAttemptNumber(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID) (int, error) {
	args := m.Called(ctx, exec, verificationId)
	return args.Int(0), args.Error(1)
}

func (m *VerificationRepository) CreateVerificationAttempt(ctx context.Context, exec repositories.Executor, attempt models.VerificationAttempt) error {
	args := m.Called(ctx, exec, attempt)
	return args.Error(0)
}

func (m *VerificationRepository) StepsOfVerification(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID) ([]models.VerificationStep, error) {
	args := m.Called(ctx, exec, verificationId)
	return args.Get(0).([]models.VerificationStep), args.Error(1)
}

func (m *VerificationRepository) CreateVerificationStep(ctx context.Context, exec repositories.Executor, step models.VerificationStep) error {
	args := m.Called(ctx, exec, step)
	return args.Error(0)
}

func (m *VerificationRepository) CommunityVerificationById(ctx context.Context, exec repositories.Executor,
	communityVerificationId uuid.UUID,
) (models.CommunityVerification, error) {
	args := m.Called(ctx, exec, communityVerificationId)
	return args.Get(0).(models.CommunityVerification), args.Error(1)
}

func (m *VerificationRepository) CommunityVerificationsOfSubmission(ctx context.Context, exec repositories.Executor,
	submissionId uuid.UUID,
) ([]models.CommunityVerification, error) {
	args := m.Called(ctx, exec, submissionId)
	return args.Get(0).([]models.CommunityVerification), args.Error(1)
}

func (m *VerificationRepository) CreateCommunityVerification(ctx context.Context, exec repositories.Executor,
	input models.SubmitCommunityVerificationInput, newCommunityVerificationId uuid.UUID,
) error {
	args := m.Called(ctx, exec, input, newCommunityVerificationId)
	return args.Error(0)
}

func (m *VerificationRepository) ReviewCommunityVerification(ctx context.Context, exec repositories.Executor,
	communityVerificationId uuid.UUID, reviewStatus string, reviewedBy uuid.UUID,
) error {
	args := m.Called(ctx, exec, communityVerificationId, reviewStatus, reviewedBy)
	return args.Error(0)
}

func (m *VerificationRepository) UpsertVerificationVote(ctx context.Context, exec repositories.Executor,
	communityVerificationId, userId uuid.UUID, voteType models.VoteType,
) error {
	args := m.Called(ctx, exec, communityVerificationId, userId, voteType)
	return args.Error(0)
}

func (m *VerificationRepository) DeleteVerificationVote(ctx context.Context, exec repositories.Executor,
	communityVerificationId, userId uuid.UUID,
) error {
	args := m.Called(ctx, exec, communityVerificationId, userId)
	return args.Error(0)
}

func (m *VerificationRepository) RecountVerificationVotes(ctx context.Context, exec repositories.Executor,
	communityVerificationId uuid.UUID,
) error {
	args := m.Called(ctx, exec, communityVerificationId)
	return args.Error(0)
}
