package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBProposal struct {
	Id                  uuid.UUID  `db:"id"`
	ProposalType        string     `db:"proposal_type"`
	Title               string     `db:"title"`
	Description         string     `db:"description"`
	Status              string     `db:"status"`
	BenchmarkId         *uuid.UUID `db:"benchmark_id"`
	BenchmarkDefinition []byte     `db:"benchmark_definition"`
	VotesFor            int        `db:"votes_for"`
	VotesAgainst        int        `db:"votes_against"`
	VotesAbstain        int        `db:"votes_abstain"`
	QuorumRequired      int        `db:"quorum_required"`
	ApprovalThreshold   float64    `db:"approval_threshold"`
	CreatedBy           uuid.UUID  `db:"created_by"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

const TABLE_PROPOSALS = "proposals"

var SelectProposalColumns = utils.ColumnList[DBProposal]()

func AdaptProposal(db DBProposal) (models.Proposal, error) {
	return models.Proposal{
		Id:                  db.Id,
		ProposalType:        models.ProposalType(db.ProposalType),
		Title:               db.Title,
		Description:         db.Description,
		Status:              models.ProposalStatus(db.Status),
		BenchmarkId:         db.BenchmarkId,
		BenchmarkDefinition: db.BenchmarkDefinition,
		VotesFor:            db.VotesFor,
		VotesAgainst:        db.VotesAgainst,
		VotesAbstain:        db.VotesAbstain,
		QuorumRequired:      db.QuorumRequired,
		ApprovalThreshold:   db.ApprovalThreshold,
		CreatedBy:           db.CreatedBy,
		CreatedAt:           db.CreatedAt,
		UpdatedAt:           db.UpdatedAt,
	}, nil
}

type DBProposalVote struct {
	ProposalId uuid.UUID `db:"proposal_id"`
	UserId     uuid.UUID `db:"user_id"`
	VoteType   string    `db:"vote_type"`
	VotingPower int      `db:"voting_power"`
	Reasoning  *string   `db:"reasoning"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

const TABLE_PROPOSAL_VOTES = "proposal_votes"

var SelectProposalVoteColumns = utils.ColumnList[DBProposalVote]()

func AdaptProposalVote(db DBProposalVote) (models.ProposalVote, error) {
	return models.ProposalVote{
		ProposalId:  db.ProposalId,
		UserId:      db.UserId,
		VoteType:    models.ProposalVoteType(db.VoteType),
		VotingPower: db.VotingPower,
		Reasoning:   db.Reasoning,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
	}, nil
}
