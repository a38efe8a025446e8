package repositories

import (
	"context"
	"fmt"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type VerificationRepository struct{}

func (repo *VerificationRepository) VerificationById(
	ctx context.Context,
	exec Executor,
	verificationId uuid.UUID,
) (models.Verification, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectVerificationColumns...).
			From(dbmodels.TABLE_VERIFICATIONS).
			Where(squirrel.Eq{"id": verificationId}),
		dbmodels.AdaptVerification,
	)
}

func (repo *VerificationRepository) VerificationsOfSubmission(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
) ([]models.Verification, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectVerificationColumns...).
			From(dbmodels.TABLE_VERIFICATIONS).
			Where(squirrel.Eq{"submission_id": submissionId}).
			OrderBy("created_at DESC"),
		dbmodels.AdaptVerification,
	)
}

func (repo *VerificationRepository) PendingVerificationOfSubmission(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
	verifierType models.VerifierType,
) (*models.Verification, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectVerificationColumns...).
			From(dbmodels.TABLE_VERIFICATIONS).
			Where(squirrel.Eq{
				"submission_id": submissionId,
				"verifier_type": verifierType,
			}).
			Where(squirrel.Eq{"status": []models.VerificationStatus{
				models.VerificationStatusPending,
				models.VerificationStatusInProgress,
			}}),
		dbmodels.AdaptVerification,
	)
}

func (repo *VerificationRepository) CreateVerification(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
	verifierType models.VerifierType,
	newVerificationId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_VERIFICATIONS).
			Columns("id", "submission_id", "verifier_type", "status").
			Values(newVerificationId, submissionId, verifierType, models.VerificationStatusPending),
	)
}

func (repo *VerificationRepository) UpdateVerificationStatus(
	ctx context.Context,
	exec Executor,
	verificationId uuid.UUID,
	status models.VerificationStatus,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_VERIFICATIONS).
		Set("status", status).
		Where(squirrel.Eq{"id": verificationId})

	if status == models.VerificationStatusInProgress {
		query = query.Set("started_at", squirrel.Expr("NOW()"))
	}

	return ExecBuilder(ctx, exec, query)
}

func (repo *VerificationRepository) CompleteVerification(
	ctx context.Context,
	exec Executor,
	result models.VerificationResult,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_VERIFICATIONS).
			Set("status", result.Status).
			Set("success", result.Success).
			Set("reproduced_score", result.ReproducedScore).
			Set("score_variance", result.ScoreVariance).
			Set("completed_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": result.VerificationId}),
	)
}

func (repo *VerificationRepository) AttemptsOfVerification(
	ctx context.Context,
	exec Executor,
	verificationId uuid.UUID,
) ([]models.VerificationAttempt, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectVerificationAttemptColumns...).
			From(dbmodels.TABLE_VERIFICATION_ATTEMPTS).
			Where(squirrel.Eq{"verification_id": verificationId}).
			OrderBy("attempt_number"),
		dbmodels.AdaptVerificationAttempt,
	)
}

// HighestAttemptNumber locks the verification's attempt rows so concurrent
// recordings serialize on the sequential numbering.
func (repo *VerificationRepository) HighestAttemptNumber(
	ctx context.Context,
	exec Executor,
	verificationId uuid.UUID,
) (int, error) {
	query := NewQueryBuilder().
		Select("COALESCE(MAX(attempt_number), 0)").
		From(dbmodels.TABLE_VERIFICATION_ATTEMPTS).
		Where(squirrel.Eq{"verification_id": verificationId})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var highest int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&highest); err != nil {
		return 0, err
	}
	return highest, nil
}

func (repo *VerificationRepository) CreateVerificationAttempt(
	ctx context.Context,
	exec Executor,
	attempt models.VerificationAttempt,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_VERIFICATION_ATTEMPTS).
			Columns(
				"id",
				"verification_id",
				"attempt_number",
				"score",
				"execution_ms",
				"success",
				"environment_hash",
			).
			Values(
				attempt.Id,
				attempt.VerificationId,
				attempt.AttemptNumber,
				attempt.Score,
				attempt.ExecutionMs,
				attempt.Success,
				attempt.EnvironmentHash,
			),
	)
}

func (repo *VerificationRepository) StepsOfVerification(
	ctx context.Context,
	exec Executor,
	verificationId uuid.UUID,
) ([]models.VerificationStep, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectVerificationStepColumns...).
			From(dbmodels.TABLE_VERIFICATION_STEPS).
			Where(squirrel.Eq{"verification_id": verificationId}).
			OrderBy("step_order"),
		dbmodels.AdaptVerificationStep,
	)
}

func (repo *VerificationRepository) CreateVerificationStep(
	ctx context.Context,
	exec Executor,
	step models.VerificationStep,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_VERIFICATION_STEPS).
			Columns("id", "verification_id", "step_order", "name", "success", "detail").
			Values(step.Id, step.VerificationId, step.StepOrder, step.Name, step.Success, step.Detail),
	)
}

func (repo *VerificationRepository) CommunityVerificationById(
	ctx context.Context,
	exec Executor,
	communityVerificationId uuid.UUID,
) (models.CommunityVerification, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectCommunityVerificationColumns...).
			From(dbmodels.TABLE_COMMUNITY_VERIFICATIONS).
			Where(squirrel.Eq{"id": communityVerificationId}),
		dbmodels.AdaptCommunityVerification,
	)
}

func (repo *VerificationRepository) CommunityVerificationsOfSubmission(
	ctx context.Context,
	exec Executor,
	submissionId uuid.UUID,
) ([]models.CommunityVerification, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectCommunityVerificationColumns...).
			From(dbmodels.TABLE_COMMUNITY_VERIFICATIONS).
			Where(squirrel.Eq{"submission_id": submissionId}).
			OrderBy("created_at DESC"),
		dbmodels.AdaptCommunityVerification,
	)
}

func (repo *VerificationRepository) CreateCommunityVerification(
	ctx context.Context,
	exec Executor,
	input models.SubmitCommunityVerificationInput,
	newCommunityVerificationId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_COMMUNITY_VERIFICATIONS).
			Columns(
				"id",
				"submission_id",
				"verifier_id",
				"reproduced",
				"reproduction_notes",
				"environment_description",
			).
			Values(
				newCommunityVerificationId,
				input.SubmissionId,
				input.VerifierId,
				input.Reproduced,
				input.ReproductionNotes,
				input.EnvironmentDescription,
			),
	)
}

func (repo *VerificationRepository) ReviewCommunityVerification(
	ctx context.Context,
	exec Executor,
	communityVerificationId uuid.UUID,
	reviewStatus string,
	reviewedBy uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_COMMUNITY_VERIFICATIONS).
			Set("reviewed", true).
			Set("review_status", reviewStatus).
			Set("reviewed_by", reviewedBy).
			Where(squirrel.Eq{"id": communityVerificationId}),
	)
}

func (repo *VerificationRepository) UpsertVerificationVote(
	ctx context.Context,
	exec Executor,
	communityVerificationId, userId uuid.UUID,
	voteType models.VoteType,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_VERIFICATION_VOTES).
			Columns("community_verification_id", "user_id", "vote_type").
			Values(communityVerificationId, userId, voteType).
			Suffix(`ON CONFLICT (community_verification_id, user_id)
				DO UPDATE SET vote_type = EXCLUDED.vote_type, updated_at = NOW()`),
	)
}

func (repo *VerificationRepository) DeleteVerificationVote(
	ctx context.Context,
	exec Executor,
	communityVerificationId, userId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Delete(dbmodels.TABLE_VERIFICATION_VOTES).
			Where(squirrel.Eq{
				"community_verification_id": communityVerificationId,
				"user_id":                   userId,
			}),
	)
}

// RecountVerificationVotes recomputes the denormalized tallies from the live
// vote rows. Always called in the same transaction as the vote mutation, so
// the counters can never drift.
func (repo *VerificationRepository) RecountVerificationVotes(
	ctx context.Context,
	exec Executor,
	communityVerificationId uuid.UUID,
) error {
	sql := fmt.Sprintf(`
		UPDATE %s SET
			upvotes = (SELECT COUNT(*) FROM %s
				WHERE community_verification_id = $1 AND vote_type = $2),
			downvotes = (SELECT COUNT(*) FROM %s
				WHERE community_verification_id = $1 AND vote_type = $3)
		WHERE id = $1`,
		dbmodels.TABLE_COMMUNITY_VERIFICATIONS,
		dbmodels.TABLE_VERIFICATION_VOTES,
		dbmodels.TABLE_VERIFICATION_VOTES,
	)

	_, err := exec.Exec(ctx, sql, communityVerificationId, models.VoteUp, models.VoteDown)
	return err
}
