package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ProposalType string

const (
	ProposalNewBenchmark       ProposalType = "new_benchmark"
	ProposalUpdateBenchmark    ProposalType = "update_benchmark"
	ProposalDeprecateBenchmark ProposalType = "deprecate_benchmark"
	ProposalPolicyChange       ProposalType = "policy_change"
)

func (t ProposalType) IsValid() bool {
	switch t {
	case ProposalNewBenchmark, ProposalUpdateBenchmark, ProposalDeprecateBenchmark, ProposalPolicyChange:
		return true
	}
	return false
}

func (t ProposalType) RequiresBenchmark() bool {
	return t == ProposalUpdateBenchmark || t == ProposalDeprecateBenchmark
}

type ProposalStatus string

const (
	ProposalStatusDraft       ProposalStatus = "draft"
	ProposalStatusUnderReview ProposalStatus = "under_review"
	ProposalStatusVoting      ProposalStatus = "voting"
	ProposalStatusApproved    ProposalStatus = "approved"
	ProposalStatusRejected    ProposalStatus = "rejected"
	ProposalStatusWithdrawn   ProposalStatus = "withdrawn"
)

func (s ProposalStatus) IsTerminal() bool {
	switch s {
	case ProposalStatusApproved, ProposalStatusRejected, ProposalStatusWithdrawn:
		return true
	}
	return false
}

func (s ProposalStatus) CanTransitionTo(target ProposalStatus) bool {
	switch {
	case s == ProposalStatusDraft && target == ProposalStatusUnderReview:
		return true
	case s == ProposalStatusUnderReview && target == ProposalStatusVoting:
		return true
	case s == ProposalStatusVoting && (target == ProposalStatusApproved || target == ProposalStatusRejected):
		return true
	case !s.IsTerminal() && target == ProposalStatusWithdrawn:
		return true
	}
	return false
}

// VotesFor/Against/Abstain are denormalized tallies recomputed from the live
// ProposalVote rows on every mutation.
type Proposal struct {
	Id                  uuid.UUID
	ProposalType        ProposalType
	Title               string
	Description         string
	Status              ProposalStatus
	BenchmarkId         *uuid.UUID
	BenchmarkDefinition json.RawMessage
	VotesFor            int
	VotesAgainst        int
	VotesAbstain        int
	QuorumRequired      int
	ApprovalThreshold   float64
	CreatedBy           uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type ProposalVoteType string

const (
	ProposalVoteFor     ProposalVoteType = "for"
	ProposalVoteAgainst ProposalVoteType = "against"
	ProposalVoteAbstain ProposalVoteType = "abstain"
)

func (t ProposalVoteType) IsValid() bool {
	return t == ProposalVoteFor || t == ProposalVoteAgainst || t == ProposalVoteAbstain
}

// One row per (proposal, user); re-voting updates the row.
type ProposalVote struct {
	ProposalId  uuid.UUID
	UserId      uuid.UUID
	VoteType    ProposalVoteType
	VotingPower int
	Reasoning   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProposalOutcome string

const (
	OutcomeApproved     ProposalOutcome = "approved"
	OutcomeRejected     ProposalOutcome = "rejected"
	OutcomeQuorumNotMet ProposalOutcome = "quorum_not_met"
)

// Finalize decides the outcome from the current tallies. Quorum counts all
// cast votes including abstentions; the approval ratio excludes them.
func (p Proposal) Finalize() ProposalOutcome {
	total := p.VotesFor + p.VotesAgainst + p.VotesAbstain
	if total < p.QuorumRequired {
		return OutcomeQuorumNotMet
	}
	decisive := p.VotesFor + p.VotesAgainst
	if decisive == 0 {
		return OutcomeRejected
	}
	if float64(p.VotesFor)/float64(decisive) >= p.ApprovalThreshold {
		return OutcomeApproved
	}
	return OutcomeRejected
}

type CastProposalVoteInput struct {
	ProposalId  uuid.UUID
	UserId      uuid.UUID
	VoteType    ProposalVoteType
	VotingPower int
	Reasoning   *string
}

type CreateProposalInput struct {
	ProposalType        ProposalType
	Title               string `validate:"required,min=2,max=256"`
	Description         string `validate:"required"`
	BenchmarkId         *uuid.UUID
	BenchmarkDefinition json.RawMessage
	QuorumRequired      int     `validate:"gt=0"`
	ApprovalThreshold   float64 `validate:"gt=0,lte=1"`
	CreatedBy           uuid.UUID
}
