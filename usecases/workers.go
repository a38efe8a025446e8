package usecases

import (
	"context"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/riverqueue/river"
)

type LeaderboardRefreshWorker struct {
	river.WorkerDefaults[models.LeaderboardRefreshArgs]

	leaderboardUseCase LeaderboardUseCase
}

func NewLeaderboardRefreshWorker(leaderboardUseCase LeaderboardUseCase) LeaderboardRefreshWorker {
	return LeaderboardRefreshWorker{leaderboardUseCase: leaderboardUseCase}
}

func (w *LeaderboardRefreshWorker) Work(ctx context.Context, job *river.Job[models.LeaderboardRefreshArgs]) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "leaderboard refresh requested", "reason", job.Args.Reason)

	_, err := w.leaderboardUseCase.RefreshLeaderboard(ctx)
	return err
}

type VerificationRunWorker struct {
	river.WorkerDefaults[models.VerificationRunArgs]

	verificationUseCase VerificationUseCase
}

func NewVerificationRunWorker(verificationUseCase VerificationUseCase) VerificationRunWorker {
	return VerificationRunWorker{verificationUseCase: verificationUseCase}
}

// Work moves the verification from pending to in progress. The reproduction
// engine records attempts and steps through the verification usecase and
// closes the run with CompleteVerification.
func (w *VerificationRunWorker) Work(ctx context.Context, job *river.Job[models.VerificationRunArgs]) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "starting verification run",
		"verification_id", job.Args.VerificationId,
		"submission_id", job.Args.SubmissionId)

	verification, err := w.verificationUseCase.GetVerification(ctx, job.Args.VerificationId)
	if err != nil {
		return err
	}
	if verification.Status != models.VerificationStatusPending {
		logger.InfoContext(ctx, "verification already picked up, skipping",
			"verification_id", verification.Id, "status", verification.Status)
		return nil
	}

	return w.verificationUseCase.StartVerification(ctx, job.Args.VerificationId)
}

func RegisterWorkers(workers *river.Workers, usecases Usecases) error {
	leaderboardWorker := NewLeaderboardRefreshWorker(usecases.NewLeaderboardUseCase())
	if err := river.AddWorkerSafely(workers, &leaderboardWorker); err != nil {
		return err
	}

	verificationWorker := NewVerificationRunWorker(usecases.NewVerificationUseCase())
	return river.AddWorkerSafely(workers, &verificationWorker)
}
