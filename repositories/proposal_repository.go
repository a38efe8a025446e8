package repositories

import (
	"context"
	"fmt"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ProposalRepository struct{}

func (repo *ProposalRepository) ProposalById(
	ctx context.Context,
	exec Executor,
	proposalId uuid.UUID,
) (models.Proposal, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectProposalColumns...).
			From(dbmodels.TABLE_PROPOSALS).
			Where(squirrel.Eq{"id": proposalId}),
		dbmodels.AdaptProposal,
	)
}

// ProposalByIdForUpdate locks the proposal row for the duration of the
// transaction, serializing concurrent votes and finalization.
func (repo *ProposalRepository) ProposalByIdForUpdate(
	ctx context.Context,
	exec Executor,
	proposalId uuid.UUID,
) (models.Proposal, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectProposalColumns...).
			From(dbmodels.TABLE_PROPOSALS).
			Where(squirrel.Eq{"id": proposalId}).
			Suffix("FOR UPDATE"),
		dbmodels.AdaptProposal,
	)
}

func (repo *ProposalRepository) ListProposals(
	ctx context.Context,
	exec Executor,
	status *models.ProposalStatus,
) ([]models.Proposal, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectProposalColumns...).
		From(dbmodels.TABLE_PROPOSALS).
		OrderBy("created_at DESC")

	if status != nil {
		query = query.Where(squirrel.Eq{"status": *status})
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptProposal)
}

func (repo *ProposalRepository) CreateProposal(
	ctx context.Context,
	exec Executor,
	input models.CreateProposalInput,
	newProposalId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_PROPOSALS).
			Columns(
				"id",
				"proposal_type",
				"title",
				"description",
				"status",
				"benchmark_id",
				"benchmark_definition",
				"quorum_required",
				"approval_threshold",
				"created_by",
			).
			Values(
				newProposalId,
				input.ProposalType,
				input.Title,
				input.Description,
				models.ProposalStatusDraft,
				input.BenchmarkId,
				[]byte(input.BenchmarkDefinition),
				input.QuorumRequired,
				input.ApprovalThreshold,
				input.CreatedBy,
			),
	)
}

func (repo *ProposalRepository) UpdateProposalStatus(
	ctx context.Context,
	exec Executor,
	proposalId uuid.UUID,
	status models.ProposalStatus,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_PROPOSALS).
			Set("status", status).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": proposalId}),
	)
}

func (repo *ProposalRepository) VotesOfProposal(
	ctx context.Context,
	exec Executor,
	proposalId uuid.UUID,
) ([]models.ProposalVote, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectProposalVoteColumns...).
			From(dbmodels.TABLE_PROPOSAL_VOTES).
			Where(squirrel.Eq{"proposal_id": proposalId}).
			OrderBy("created_at"),
		dbmodels.AdaptProposalVote,
	)
}

func (repo *ProposalRepository) UpsertProposalVote(
	ctx context.Context,
	exec Executor,
	vote models.ProposalVote,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_PROPOSAL_VOTES).
			Columns("proposal_id", "user_id", "vote_type", "voting_power", "reasoning").
			Values(vote.ProposalId, vote.UserId, vote.VoteType, vote.VotingPower, vote.Reasoning).
			Suffix(`ON CONFLICT (proposal_id, user_id)
				DO UPDATE SET vote_type = EXCLUDED.vote_type,
					voting_power = EXCLUDED.voting_power,
					reasoning = EXCLUDED.reasoning,
					updated_at = NOW()`),
	)
}

// RecountProposalVotes recomputes the denormalized tallies from the live vote
// rows, in the same transaction as the vote mutation.
func (repo *ProposalRepository) RecountProposalVotes(
	ctx context.Context,
	exec Executor,
	proposalId uuid.UUID,
) error {
	sql := fmt.Sprintf(`
		UPDATE %s SET
			votes_for = (SELECT COUNT(*) FROM %s
				WHERE proposal_id = $1 AND vote_type = $2),
			votes_against = (SELECT COUNT(*) FROM %s
				WHERE proposal_id = $1 AND vote_type = $3),
			votes_abstain = (SELECT COUNT(*) FROM %s
				WHERE proposal_id = $1 AND vote_type = $4),
			updated_at = NOW()
		WHERE id = $1`,
		dbmodels.TABLE_PROPOSALS,
		dbmodels.TABLE_PROPOSAL_VOTES,
		dbmodels.TABLE_PROPOSAL_VOTES,
		dbmodels.TABLE_PROPOSAL_VOTES,
	)

	_, err := exec.Exec(ctx, sql, proposalId,
		models.ProposalVoteFor, models.ProposalVoteAgainst, models.ProposalVoteAbstain)
	return err
}
