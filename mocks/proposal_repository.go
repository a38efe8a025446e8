package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
)

type ProposalRepository struct {
	mock.Mock
}

func (m *ProposalRepository) ProposalById(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID) (models.Proposal, error) {
	args := m.Called(ctx, exec, proposalId)
	return args.Get(0).(models.Proposal), args.Error(1)
}

func (m *ProposalRepository) ProposalByIdForUpdate(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID) (models.Proposal, error) {
	args := m.Called(ctx, exec, proposalId)
	return args.Get(0).(models.Proposal), args.Error(1)
}

func (m *ProposalRepository) ListProposals(ctx context.Context, exec repositories.Executor, status *models.ProposalStatus) ([]models.Proposal, error) {
	args := m.Called(ctx, exec, status)
	return args.Get(0).([]models.Proposal), args.Error(1)
}

func (m *ProposalRepository) CreateProposal(ctx context.Context, exec repositories.Executor, input models.CreateProposalInput, newProposalId uuid.UUID) error {
	args := m.Called(ctx, exec, input, newProposalId)
	return args.Error(0)
}

func (m *ProposalRepository) UpdateProposalStatus(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID, status models.ProposalStatus) error {
	args := m.Called(ctx, exec, proposalId, status)
	return args.Error(0)
}

func (m *ProposalRepository) VotesOfProposal(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID) ([]models.ProposalVote, error) {
	args := m.Called(ctx, exec, proposalId)
	return args.Get(0).([]models.ProposalVote), args.Error(1)
}

func (m *ProposalRepository) UpsertProposalVote(ctx context.Context, exec repositories.Executor, vote models.ProposalVote) error {
	args := m.Called(ctx, exec, vote)
	return args.Error(0)
}

func (m *ProposalRepository) RecountProposalVotes(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID) error {
	args := m.Called(ctx, exec, proposalId)
	return args.Error(0)
}
