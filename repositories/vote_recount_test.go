package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchlooms/exchange-backend/models"
)

func newExecutorMock(t *testing.T) (pgxmock.PgxPoolIface, Executor) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &PgExecutor{exec: mock}
}

func TestRecountProposalVotes(t *testing.T) {
	mock, exec := newExecutorMock(t)
	proposalId := uuid.New()

	mock.ExpectExec("UPDATE proposals SET").
		WithArgs(proposalId,
			models.ProposalVoteFor, models.ProposalVoteAgainst, models.ProposalVoteAbstain).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := &ProposalRepository{}
	err := repo.RecountProposalVotes(context.Background(), exec, proposalId)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecountVerificationVotes(t *testing.T) {
	mock, exec := newExecutorMock(t)
	communityVerificationId := uuid.New()

	mock.ExpectExec("UPDATE community_verifications SET").
		WithArgs(communityVerificationId, models.VoteUp, models.VoteDown).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := &VerificationRepository{}
	err := repo.RecountVerificationVotes(context.Background(), exec, communityVerificationId)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishSnapshot(t *testing.T) {
	mock, exec := newExecutorMock(t)
	snapshotId := uuid.New()

	mock.ExpectExec("INSERT INTO leaderboard_current").
		WithArgs(snapshotId).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := &LeaderboardRepository{}
	err := repo.PublishSnapshot(context.Background(), exec, snapshotId)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
