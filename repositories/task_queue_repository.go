package repositories

import (
	"context"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

const (
	nbRetriesVerificationRun = 5
	priorityVerificationRun  = 2
	priorityLeaderboard      = 3
)

type TaskQueueRepository interface {
	EnqueueVerificationRunTask(
		ctx context.Context,
		tx Transaction,
		verificationId uuid.UUID,
		submissionId uuid.UUID,
	) error
	EnqueueLeaderboardRefreshTask(ctx context.Context, tx Transaction, reason string) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

// EnqueueVerificationRunTask inserts in the request's transaction, so the job
// only becomes visible if the verification row commits.
func (r riverRepository) EnqueueVerificationRunTask(
	ctx context.Context,
	tx Transaction,
	verificationId uuid.UUID,
	submissionId uuid.UUID,
) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.VerificationRunArgs{
		VerificationId: verificationId,
		SubmissionId:   submissionId,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesVerificationRun,
		Priority:    priorityVerificationRun,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Enqueued verification run task",
		"verification_id", verificationId, "job_id", res.Job.ID)
	return nil
}

// EnqueueLeaderboardRefreshTask inserts in the caller's transaction, so a
// rolled back write never schedules a refresh. Uniqueness is by state only:
// any number of triggering writes coalesce into one pending refresh.
func (r riverRepository) EnqueueLeaderboardRefreshTask(
	ctx context.Context,
	tx Transaction,
	reason string,
) error {
	_, err := r.client.InsertTx(ctx, tx.RawTx(), models.LeaderboardRefreshArgs{
		Reason: reason,
	}, &river.InsertOpts{
		Priority: priorityLeaderboard,
		UniqueOpts: river.UniqueOpts{
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStateScheduled,
			},
		},
	})
	return err
}
