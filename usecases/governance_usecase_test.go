package usecases

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/benchlooms/exchange-backend/mocks"
	"github.com/benchlooms/exchange-backend/models"
)

type GovernanceUsecaseTestSuite struct {
	suite.Suite
	transaction         *mocks.Transaction
	transactionFactory  *mocks.TransactionFactory
	executorFactory     *mocks.ExecutorFactory
	repository          *mocks.ProposalRepository
	benchmarkRepository *mocks.BenchmarkRepository
	eventRepository     *mocks.EventRepository
	auditRepository     *mocks.AuditRepository

	ctx        context.Context
	proposalId uuid.UUID
	userId     uuid.UUID
}

func (suite *GovernanceUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.repository = new(mocks.ProposalRepository)
	suite.benchmarkRepository = new(mocks.BenchmarkRepository)
	suite.eventRepository = new(mocks.EventRepository)
	suite.auditRepository = new(mocks.AuditRepository)

	suite.ctx = context.Background()
	suite.proposalId = uuid.MustParse("4a3b2c1d-0e9f-4a8b-7c6d-5e4f3a2b1c01")
	suite.userId = uuid.MustParse("8e7f6a5b-4c3d-4e2f-1a0b-9c8d7e6f5a02")
}

func (suite *GovernanceUsecaseTestSuite) makeUsecase() *GovernanceUseCase {
	return &GovernanceUseCase{
		transactionFactory:  suite.transactionFactory,
		executorFactory:     suite.executorFactory,
		repository:          suite.repository,
		benchmarkRepository: suite.benchmarkRepository,
		eventRepository:     suite.eventRepository,
		auditRepository:     suite.auditRepository,
	}
}

func (suite *GovernanceUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.transactionFactory.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.benchmarkRepository.AssertExpectations(t)
	suite.eventRepository.AssertExpectations(t)
	suite.auditRepository.AssertExpectations(t)
}

func (suite *GovernanceUsecaseTestSuite) votingProposal() models.Proposal {
	return models.Proposal{
		Id:                suite.proposalId,
		ProposalType:      models.ProposalPolicyChange,
		Status:            models.ProposalStatusVoting,
		QuorumRequired:    5,
		ApprovalThreshold: 0.6,
	}
}

func (suite *GovernanceUsecaseTestSuite) TestCreateProposal_missing_benchmark() {
	_, err := suite.makeUsecase().CreateProposal(suite.ctx, models.CreateProposalInput{
		ProposalType:      models.ProposalDeprecateBenchmark,
		Title:             "Retire legacy suite",
		Description:       "The v1 suite no longer reflects current model capabilities.",
		QuorumRequired:    5,
		ApprovalThreshold: 0.6,
		CreatedBy:         suite.userId,
	})

	suite.ErrorIs(err, models.ErrProposalMissingBenchmark)
	suite.AssertExpectations()
}

func (suite *GovernanceUsecaseTestSuite) TestCreateProposal_missing_definition() {
	_, err := suite.makeUsecase().CreateProposal(suite.ctx, models.CreateProposalInput{
		ProposalType:      models.ProposalNewBenchmark,
		Title:             "Add coding benchmark",
		Description:       "A benchmark for code generation across common languages.",
		QuorumRequired:    5,
		ApprovalThreshold: 0.6,
		CreatedBy:         suite.userId,
	})

	suite.ErrorIs(err, models.ErrProposalMissingDefinition)
	suite.AssertExpectations()
}

func (suite *GovernanceUsecaseTestSuite) TestCreateProposal() {
	input := models.CreateProposalInput{
		ProposalType:        models.ProposalNewBenchmark,
		Title:               "Add coding benchmark",
		Description:         "A benchmark for code generation across common languages.",
		BenchmarkDefinition: json.RawMessage(`{"slug":"code-gen"}`),
		QuorumRequired:      5,
		ApprovalThreshold:   0.6,
		CreatedBy:           suite.userId,
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("CreateProposal", suite.ctx, suite.transaction, input, mock.Anything).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventProposalCreated
		})).Return(nil)
	suite.repository.On("ProposalById", suite.ctx, suite.transaction, mock.Anything).
		Return(models.Proposal{Id: suite.proposalId}, nil)

	proposal, err := suite.makeUsecase().CreateProposal(suite.ctx, input)

	suite.NoError(err)
	suite.Equal(suite.proposalId, proposal.Id)
	suite.AssertExpectations()
}

func (suite *GovernanceUsecaseTestSuite) TestCastVote_not_open() {
	proposal := suite.votingProposal()
	proposal.Status = models.ProposalStatusDraft

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("ProposalByIdForUpdate", suite.ctx, suite.transaction, suite.proposalId).
		Return(proposal, nil)

	_, err := suite.makeUsecase().CastVote(suite.ctx, models.CastProposalVoteInput{
		ProposalId: suite.proposalId,
		UserId:     suite.userId,
		VoteType:   models.ProposalVoteFor,
	})

	suite.ErrorIs(err, models.InvalidTransitionError)
	suite.AssertExpectations()
}

func (suite *GovernanceUsecaseTestSuite) TestCastVote() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("ProposalByIdForUpdate", suite.ctx, suite.transaction, suite.proposalId).
		Return(suite.votingProposal(), nil)
	suite.repository.On("UpsertProposalVote", suite.ctx, suite.transaction,
		mock.MatchedBy(func(vote models.ProposalVote) bool {
			return vote.ProposalId == suite.proposalId &&
				vote.VoteType == models.ProposalVoteFor &&
				vote.VotingPower == 1
		})).Return(nil)
	suite.repository.On("RecountProposalVotes", suite.ctx, suite.transaction, suite.proposalId).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventProposalVoteCast
		})).Return(nil)
	suite.repository.On("ProposalById", suite.ctx, suite.transaction, suite.proposalId).
		Return(suite.votingProposal(), nil)

	_, err := suite.makeUsecase().CastVote(suite.ctx, models.CastProposalVoteInput{
		ProposalId: suite.proposalId,
		UserId:     suite.userId,
		VoteType:   models.ProposalVoteFor,
	})

	suite.NoError(err)
	suite.AssertExpectations()
}

// Quorum counts abstentions, the approval ratio does not: 3 for, 2 against,
// 1 abstain meets quorum 5 and 3/(3+2) = 0.6 meets the threshold.
func (suite *GovernanceUsecaseTestSuite) TestFinalizeProposal_approved() {
	decided := suite.votingProposal()
	decided.VotesFor = 3
	decided.VotesAgainst = 2
	decided.VotesAbstain = 1

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("ProposalByIdForUpdate", suite.ctx, suite.transaction, suite.proposalId).
		Return(suite.votingProposal(), nil)
	suite.repository.On("RecountProposalVotes", suite.ctx, suite.transaction, suite.proposalId).Return(nil)
	suite.repository.On("ProposalById", suite.ctx, suite.transaction, suite.proposalId).
		Return(decided, nil)
	suite.repository.On("UpdateProposalStatus", suite.ctx, suite.transaction,
		suite.proposalId, models.ProposalStatusApproved).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction,
		mock.MatchedBy(func(event models.CreateDomainEvent) bool {
			return event.EventType == models.EventProposalFinalized
		})).Return(nil)
	suite.auditRepository.On("CreateAuditEntry", suite.ctx, suite.transaction,
		mock.MatchedBy(func(entry models.CreateAuditEntry) bool {
			return entry.Action == "proposal.finalized"
		})).Return(nil)

	outcome, err := suite.makeUsecase().FinalizeProposal(suite.ctx, suite.proposalId, suite.userId)

	suite.NoError(err)
	suite.Equal(models.OutcomeApproved, outcome)
	suite.AssertExpectations()
}

// All-abstain meets quorum but leaves no decisive votes, which rejects.
func (suite *GovernanceUsecaseTestSuite) TestFinalizeProposal_all_abstain() {
	decided := suite.votingProposal()
	decided.VotesAbstain = 6

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("ProposalByIdForUpdate", suite.ctx, suite.transaction, suite.proposalId).
		Return(suite.votingProposal(), nil)
	suite.repository.On("RecountProposalVotes", suite.ctx, suite.transaction, suite.proposalId).Return(nil)
	suite.repository.On("ProposalById", suite.ctx, suite.transaction, suite.proposalId).
		Return(decided, nil)
	suite.repository.On("UpdateProposalStatus", suite.ctx, suite.transaction,
		suite.proposalId, models.ProposalStatusRejected).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction, mock.Anything).Return(nil)
	suite.auditRepository.On("CreateAuditEntry", suite.ctx, suite.transaction, mock.Anything).Return(nil)

	outcome, err := suite.makeUsecase().FinalizeProposal(suite.ctx, suite.proposalId, suite.userId)

	suite.NoError(err)
	suite.Equal(models.OutcomeRejected, outcome)
	suite.AssertExpectations()
}

func (suite *GovernanceUsecaseTestSuite) TestFinalizeProposal_quorum_not_met() {
	decided := suite.votingProposal()
	decided.VotesFor = 2

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("ProposalByIdForUpdate", suite.ctx, suite.transaction, suite.proposalId).
		Return(suite.votingProposal(), nil)
	suite.repository.On("RecountProposalVotes", suite.ctx, suite.transaction, suite.proposalId).Return(nil)
	suite.repository.On("ProposalById", suite.ctx, suite.transaction, suite.proposalId).
		Return(decided, nil)
	suite.repository.On("UpdateProposalStatus", suite.ctx, suite.transaction,
		suite.proposalId, models.ProposalStatusRejected).Return(nil)
	suite.eventRepository.On("CreateDomainEvent", suite.ctx, suite.transaction, mock.Anything).Return(nil)
	suite.auditRepository.On("CreateAuditEntry", suite.ctx, suite.transaction, mock.Anything).Return(nil)

	outcome, err := suite.makeUsecase().FinalizeProposal(suite.ctx, suite.proposalId, suite.userId)

	suite.NoError(err)
	suite.Equal(models.OutcomeQuorumNotMet, outcome)
	suite.AssertExpectations()
}

func TestGovernanceUsecase(t *testing.T) {
	suite.Run(t, new(GovernanceUsecaseTestSuite))
}
