package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (m *TaskQueueRepository) EnqueueVerificationRunTask(
	ctx context.Context,
	tx repositories.Transaction,
	verificationId uuid.UUID,
	submissionId uuid.UUID,
) error {
	args := m.Called(ctx, tx, verificationId, submissionId)
	return args.Error(0)
}

func (m *TaskQueueRepository) EnqueueLeaderboardRefreshTask(
	ctx context.Context,
	tx repositories.Transaction,
	reason string,
) error {
	args := m.Called(ctx, tx, reason)
	return args.Error(0)
}
