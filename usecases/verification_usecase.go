package usecases

import (
	"context"
	"fmt"
	"math"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/pure_utils"
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type VerificationUseCaseRepository interface {
	VerificationById(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID) (models.Verification, error)
	VerificationsOfSubmission(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID) ([]models.Verification, error)
	UpdateVerificationStatus(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID,
		status models.VerificationStatus) error
	CompleteVerification(ctx context.Context, exec repositories.Executor, result models.VerificationResult) error
	AttemptsOfVerification(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID) ([]models.VerificationAttempt, error)
	HighestAttemptNumber(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID) (int, error)
	CreateVerificationAttempt(ctx context.Context, exec repositories.Executor, attempt models.VerificationAttempt) error
	StepsOfVerification(ctx context.Context, exec repositories.Executor, verificationId uuid.UUID) ([]models.VerificationStep, error)
	CreateVerificationStep(ctx context.Context, exec repositories.Executor, step models.VerificationStep) error
	CommunityVerificationById(ctx context.Context, exec repositories.Executor,
		communityVerificationId uuid.UUID) (models.CommunityVerification, error)
	CommunityVerificationsOfSubmission(ctx context.Context, exec repositories.Executor,
		submissionId uuid.UUID) ([]models.CommunityVerification, error)
	CreateCommunityVerification(ctx context.Context, exec repositories.Executor,
		input models.SubmitCommunityVerificationInput, newCommunityVerificationId uuid.UUID) error
	ReviewCommunityVerification(ctx context.Context, exec repositories.Executor,
		communityVerificationId uuid.UUID, reviewStatus string, reviewedBy uuid.UUID) error
	UpsertVerificationVote(ctx context.Context, exec repositories.Executor,
		communityVerificationId, userId uuid.UUID, voteType models.VoteType) error
	DeleteVerificationVote(ctx context.Context, exec repositories.Executor,
		communityVerificationId, userId uuid.UUID) error
	RecountVerificationVotes(ctx context.Context, exec repositories.Executor,
		communityVerificationId uuid.UUID) error
}

type verificationSubmissionRepository interface {
	SubmissionById(ctx context.Context, exec repositories.Executor, submissionId uuid.UUID) (models.Submission, error)
	UpdateSubmissionVerificationLevel(ctx context.Context, exec repositories.Executor,
		submissionId uuid.UUID, level models.VerificationLevel) error
}

type VerificationUseCase struct {
	transactionFactory   executor_factory.TransactionFactory
	executorFactory      executor_factory.ExecutorFactory
	repository           VerificationUseCaseRepository
	submissionRepository verificationSubmissionRepository
	eventRepository      benchmarkEventRepository
	auditRepository      benchmarkAuditRepository
	taskQueueRepository  repositories.TaskQueueRepository
}

func (usecase *VerificationUseCase) GetVerification(
	ctx context.Context,
	verificationId uuid.UUID,
) (models.Verification, error) {
	return usecase.repository.VerificationById(ctx, usecase.executorFactory.NewExecutor(), verificationId)
}

func (usecase *VerificationUseCase) ListVerifications(
	ctx context.Context,
	submissionId uuid.UUID,
) ([]models.Verification, error) {
	return usecase.repository.VerificationsOfSubmission(ctx, usecase.executorFactory.NewExecutor(), submissionId)
}

func (usecase *VerificationUseCase) StartVerification(ctx context.Context, verificationId uuid.UUID) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		verification, err := usecase.repository.VerificationById(ctx, tx, verificationId)
		if err != nil {
			return err
		}
		if !verification.Status.CanTransitionTo(models.VerificationStatusInProgress) {
			return errors.Wrap(models.InvalidTransitionError,
				fmt.Sprintf("verification %s is %q", verificationId, verification.Status))
		}
		return usecase.repository.UpdateVerificationStatus(ctx, tx, verificationId,
			models.VerificationStatusInProgress)
	})
}

// RecordAttempt appends a reproduction attempt. Attempt numbers are dense and
// 1-indexed; the caller must pass the next expected number.
func (usecase *VerificationUseCase) RecordAttempt(
	ctx context.Context,
	input models.RecordAttemptInput,
) (models.VerificationAttempt, error) {
	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.VerificationAttempt, error) {
			verification, err := usecase.repository.VerificationById(ctx, tx, input.VerificationId)
			if err != nil {
				return models.VerificationAttempt{}, err
			}
			if verification.Status != models.VerificationStatusInProgress {
				return models.VerificationAttempt{}, errors.Wrap(models.InvalidTransitionError,
					fmt.Sprintf("verification %s is %q, not in progress",
						input.VerificationId, verification.Status))
			}

			highest, err := usecase.repository.HighestAttemptNumber(ctx, tx, input.VerificationId)
			if err != nil {
				return models.VerificationAttempt{}, err
			}
			if input.AttemptNumber != highest+1 {
				return models.VerificationAttempt{}, errors.Wrap(models.ErrAttemptNotSequential,
					fmt.Sprintf("expected attempt %d, got %d", highest+1, input.AttemptNumber))
			}

			attempt := models.VerificationAttempt{
				Id:              uuid.New(),
				VerificationId:  input.VerificationId,
				AttemptNumber:   input.AttemptNumber,
				Score:           input.Score,
				ExecutionMs:     input.ExecutionMs,
				Success:         input.Success,
				EnvironmentHash: input.EnvironmentHash,
			}
			if err := usecase.repository.CreateVerificationAttempt(ctx, tx, attempt); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.VerificationAttempt{}, errors.Wrap(models.ErrDuplicateAttempt,
						fmt.Sprintf("attempt %d already recorded", input.AttemptNumber))
				}
				return models.VerificationAttempt{}, err
			}
			return attempt, nil
		})
}

func (usecase *VerificationUseCase) RecordStep(ctx context.Context, step models.VerificationStep) error {
	step.Id = uuid.New()
	return usecase.repository.CreateVerificationStep(ctx, usecase.executorFactory.NewExecutor(), step)
}

func (usecase *VerificationUseCase) ListAttempts(
	ctx context.Context,
	verificationId uuid.UUID,
) ([]models.VerificationAttempt, error) {
	return usecase.repository.AttemptsOfVerification(ctx, usecase.executorFactory.NewExecutor(), verificationId)
}

func (usecase *VerificationUseCase) ListSteps(
	ctx context.Context,
	verificationId uuid.UUID,
) ([]models.VerificationStep, error) {
	return usecase.repository.StepsOfVerification(ctx, usecase.executorFactory.NewExecutor(), verificationId)
}

// CompleteVerification closes the run, records how far the reproduced score
// landed from the claimed aggregate and, on success, promotes the submission
// to the verifier's target level. A submission never loses a higher level it
// already holds.
func (usecase *VerificationUseCase) CompleteVerification(
	ctx context.Context,
	verificationId uuid.UUID,
	success bool,
	reproducedScore *float64,
) (models.Verification, error) {
	verification, err := executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.Verification, error) {
			verification, err := usecase.repository.VerificationById(ctx, tx, verificationId)
			if err != nil {
				return models.Verification{}, err
			}

			target := models.VerificationStatusCompleted
			if !success {
				target = models.VerificationStatusFailed
			}
			if !verification.Status.CanTransitionTo(target) {
				return models.Verification{}, errors.Wrap(models.InvalidTransitionError,
					fmt.Sprintf("verification %s is %q", verificationId, verification.Status))
			}

			submission, err := usecase.submissionRepository.SubmissionById(ctx, tx, verification.SubmissionId)
			if err != nil {
				return models.Verification{}, err
			}

			// Score variance is the absolute gap between the claimed
			// aggregate and the reproduced score. A run that measured no
			// reproduced score leaves the column null.
			var scoreVariance *float64
			if reproducedScore != nil {
				scoreVariance = pure_utils.Ptr(math.Abs(submission.AggregateScore - *reproducedScore))
			}

			if err := usecase.repository.CompleteVerification(ctx, tx, models.VerificationResult{
				VerificationId:  verificationId,
				Status:          target,
				Success:         success,
				ReproducedScore: reproducedScore,
				ScoreVariance:   scoreVariance,
			}); err != nil {
				return models.Verification{}, err
			}

			if success {
				targetLevel := verification.VerifierType.TargetLevel()
				if targetLevel.Rank() > submission.VerificationLevel.Rank() {
					if err := usecase.submissionRepository.UpdateSubmissionVerificationLevel(
						ctx, tx, submission.Id, targetLevel); err != nil {
						return models.Verification{}, err
					}
					// A level change moves the submission between ranking
					// tiers, the published leaderboard is stale until the
					// next refresh.
					if err := usecase.taskQueueRepository.EnqueueLeaderboardRefreshTask(
						ctx, tx, "verification.completed"); err != nil {
						return models.Verification{}, err
					}
				}
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventVerificationCompleted,
				AggregateType: models.AggregateVerification,
				AggregateId:   verificationId,
				Payload:       fmt.Appendf(nil, `{"success":%t}`, success),
			}); err != nil {
				return models.Verification{}, err
			}

			if err := usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
				Action:       "verification.completed",
				ResourceType: models.AggregateVerification,
				ResourceId:   verificationId,
				NewValues:    fmt.Appendf(nil, `{"status":%q,"success":%t}`, target, success),
			}); err != nil {
				return models.Verification{}, err
			}

			return usecase.repository.VerificationById(ctx, tx, verificationId)
		})
	if err != nil {
		return models.Verification{}, err
	}

	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "verification completed",
		"verification_id", verification.Id,
		"success", success)
	return verification, nil
}

func (usecase *VerificationUseCase) CancelVerification(ctx context.Context, verificationId uuid.UUID) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		verification, err := usecase.repository.VerificationById(ctx, tx, verificationId)
		if err != nil {
			return err
		}
		if !verification.Status.CanTransitionTo(models.VerificationStatusCancelled) {
			return errors.Wrap(models.InvalidTransitionError,
				fmt.Sprintf("verification %s is already %q", verificationId, verification.Status))
		}
		return usecase.repository.UpdateVerificationStatus(ctx, tx, verificationId,
			models.VerificationStatusCancelled)
	})
}

// SubmitCommunityVerification records an independent reproduction claim.
// Notes and environment description are mandatory evidence.
func (usecase *VerificationUseCase) SubmitCommunityVerification(
	ctx context.Context,
	input models.SubmitCommunityVerificationInput,
) (models.CommunityVerification, error) {
	if err := validateStruct(input); err != nil {
		return models.CommunityVerification{}, errors.Wrap(models.ErrMissingReproductionEvidence,
			"reproduction notes and environment description are required")
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.CommunityVerification, error) {
			submission, err := usecase.submissionRepository.SubmissionById(ctx, tx, input.SubmissionId)
			if err != nil {
				return models.CommunityVerification{}, err
			}
			if submission.IsDeleted() {
				return models.CommunityVerification{}, errors.Wrap(models.NotFoundError,
					fmt.Sprintf("submission %s is deleted", input.SubmissionId))
			}

			newId := uuid.New()
			if err := usecase.repository.CreateCommunityVerification(ctx, tx, input, newId); err != nil {
				return models.CommunityVerification{}, err
			}
			return usecase.repository.CommunityVerificationById(ctx, tx, newId)
		})
}

func (usecase *VerificationUseCase) ListCommunityVerifications(
	ctx context.Context,
	submissionId uuid.UUID,
) ([]models.CommunityVerification, error) {
	return usecase.repository.CommunityVerificationsOfSubmission(
		ctx, usecase.executorFactory.NewExecutor(), submissionId)
}

// CastVote upserts the user's vote and recounts the tallies in the same
// transaction. Re-voting replaces the previous vote instead of stacking.
func (usecase *VerificationUseCase) CastVote(
	ctx context.Context,
	communityVerificationId, userId uuid.UUID,
	voteType models.VoteType,
) (models.CommunityVerification, error) {
	if !voteType.IsValid() {
		return models.CommunityVerification{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown vote type %q", voteType))
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.CommunityVerification, error) {
			if _, err := usecase.repository.CommunityVerificationById(ctx, tx, communityVerificationId); err != nil {
				return models.CommunityVerification{}, err
			}

			if err := usecase.repository.UpsertVerificationVote(
				ctx, tx, communityVerificationId, userId, voteType); err != nil {
				return models.CommunityVerification{}, err
			}
			if err := usecase.repository.RecountVerificationVotes(ctx, tx, communityVerificationId); err != nil {
				return models.CommunityVerification{}, err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventVerificationVoteCast,
				AggregateType: models.AggregateCommunityVerification,
				AggregateId:   communityVerificationId,
				ActorId:       &userId,
			}); err != nil {
				return models.CommunityVerification{}, err
			}

			return usecase.repository.CommunityVerificationById(ctx, tx, communityVerificationId)
		})
}

// RetractVote removes the user's vote and recounts. Retracting a vote that
// does not exist is a no-op.
func (usecase *VerificationUseCase) RetractVote(
	ctx context.Context,
	communityVerificationId, userId uuid.UUID,
) (models.CommunityVerification, error) {
	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.CommunityVerification, error) {
			if err := usecase.repository.DeleteVerificationVote(
				ctx, tx, communityVerificationId, userId); err != nil {
				return models.CommunityVerification{}, err
			}
			if err := usecase.repository.RecountVerificationVotes(ctx, tx, communityVerificationId); err != nil {
				return models.CommunityVerification{}, err
			}
			return usecase.repository.CommunityVerificationById(ctx, tx, communityVerificationId)
		})
}

// ReviewCommunityVerification is the moderator acceptance step. Accepting a
// reproduced claim promotes the submission to community verified, unless it
// already holds a higher level.
func (usecase *VerificationUseCase) ReviewCommunityVerification(
	ctx context.Context,
	communityVerificationId uuid.UUID,
	accepted bool,
	reviewedBy uuid.UUID,
) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		communityVerification, err := usecase.repository.CommunityVerificationById(ctx, tx, communityVerificationId)
		if err != nil {
			return err
		}
		if communityVerification.Reviewed {
			return errors.Wrap(models.ConflictError,
				fmt.Sprintf("community verification %s is already reviewed", communityVerificationId))
		}

		reviewStatus := "rejected"
		if accepted {
			reviewStatus = "accepted"
		}
		if err := usecase.repository.ReviewCommunityVerification(
			ctx, tx, communityVerificationId, reviewStatus, reviewedBy); err != nil {
			return err
		}

		if accepted && communityVerification.Reproduced {
			submission, err := usecase.submissionRepository.SubmissionById(
				ctx, tx, communityVerification.SubmissionId)
			if err != nil {
				return err
			}
			if models.VerificationLevelCommunityVerified.Rank() > submission.VerificationLevel.Rank() {
				if err := usecase.submissionRepository.UpdateSubmissionVerificationLevel(
					ctx, tx, submission.Id, models.VerificationLevelCommunityVerified); err != nil {
					return err
				}
			}
		}

		return usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
			Action:       "community_verification.reviewed",
			ResourceType: models.AggregateCommunityVerification,
			ResourceId:   communityVerificationId,
			ActorId:      &reviewedBy,
			NewValues:    fmt.Appendf(nil, `{"review_status":%q}`, reviewStatus),
		})
	})
}
