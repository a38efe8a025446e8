package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProposal_Finalize(t *testing.T) {
	base := Proposal{QuorumRequired: 5, ApprovalThreshold: 0.6}

	t.Run("quorum counts abstentions", func(t *testing.T) {
		p := base
		p.VotesFor, p.VotesAgainst, p.VotesAbstain = 2, 1, 2
		assert.Equal(t, OutcomeApproved, p.Finalize())
	})

	t.Run("below quorum", func(t *testing.T) {
		p := base
		p.VotesFor, p.VotesAgainst, p.VotesAbstain = 3, 1, 0
		assert.Equal(t, OutcomeQuorumNotMet, p.Finalize())
	})

	t.Run("approval ratio excludes abstentions", func(t *testing.T) {
		// 3/(3+2) = 0.6 meets the threshold even though 3/7 < 0.6
		p := base
		p.VotesFor, p.VotesAgainst, p.VotesAbstain = 3, 2, 2
		assert.Equal(t, OutcomeApproved, p.Finalize())
	})

	t.Run("rejected under threshold", func(t *testing.T) {
		p := base
		p.VotesFor, p.VotesAgainst, p.VotesAbstain = 2, 3, 0
		assert.Equal(t, OutcomeRejected, p.Finalize())
	})

	t.Run("all abstain meets quorum but rejects", func(t *testing.T) {
		p := base
		p.VotesFor, p.VotesAgainst, p.VotesAbstain = 0, 0, 5
		assert.Equal(t, OutcomeRejected, p.Finalize())
	})
}

func TestProposalStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, ProposalStatusDraft.CanTransitionTo(ProposalStatusUnderReview))
	assert.True(t, ProposalStatusUnderReview.CanTransitionTo(ProposalStatusVoting))
	assert.True(t, ProposalStatusVoting.CanTransitionTo(ProposalStatusApproved))
	assert.True(t, ProposalStatusVoting.CanTransitionTo(ProposalStatusRejected))

	// withdrawn is reachable from any non-terminal state
	assert.True(t, ProposalStatusDraft.CanTransitionTo(ProposalStatusWithdrawn))
	assert.True(t, ProposalStatusUnderReview.CanTransitionTo(ProposalStatusWithdrawn))
	assert.True(t, ProposalStatusVoting.CanTransitionTo(ProposalStatusWithdrawn))

	assert.False(t, ProposalStatusDraft.CanTransitionTo(ProposalStatusVoting))
	assert.False(t, ProposalStatusApproved.CanTransitionTo(ProposalStatusWithdrawn))
	assert.False(t, ProposalStatusRejected.CanTransitionTo(ProposalStatusVoting))
}
