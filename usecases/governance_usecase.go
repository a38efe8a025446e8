package usecases

import (
	"context"
	"fmt"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type GovernanceUseCaseRepository interface {
	ProposalById(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID) (models.Proposal, error)
	ProposalByIdForUpdate(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID) (models.Proposal, error)
	ListProposals(ctx context.Context, exec repositories.Executor, status *models.ProposalStatus) ([]models.Proposal, error)
	CreateProposal(ctx context.Context, exec repositories.Executor, input models.CreateProposalInput, newProposalId uuid.UUID) error
	UpdateProposalStatus(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID, status models.ProposalStatus) error
	VotesOfProposal(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID) ([]models.ProposalVote, error)
	UpsertProposalVote(ctx context.Context, exec repositories.Executor, vote models.ProposalVote) error
	RecountProposalVotes(ctx context.Context, exec repositories.Executor, proposalId uuid.UUID) error
}

type governanceBenchmarkRepository interface {
	BenchmarkById(ctx context.Context, exec repositories.Executor, benchmarkId uuid.UUID) (models.Benchmark, error)
}

type GovernanceUseCase struct {
	transactionFactory  executor_factory.TransactionFactory
	executorFactory     executor_factory.ExecutorFactory
	repository          GovernanceUseCaseRepository
	benchmarkRepository governanceBenchmarkRepository
	eventRepository     benchmarkEventRepository
	auditRepository     benchmarkAuditRepository
}

func (usecase *GovernanceUseCase) GetProposal(ctx context.Context, proposalId uuid.UUID) (models.Proposal, error) {
	return usecase.repository.ProposalById(ctx, usecase.executorFactory.NewExecutor(), proposalId)
}

func (usecase *GovernanceUseCase) ListProposals(
	ctx context.Context,
	status *models.ProposalStatus,
) ([]models.Proposal, error) {
	return usecase.repository.ListProposals(ctx, usecase.executorFactory.NewExecutor(), status)
}

func (usecase *GovernanceUseCase) CreateProposal(
	ctx context.Context,
	input models.CreateProposalInput,
) (models.Proposal, error) {
	if err := validateStruct(input); err != nil {
		return models.Proposal{}, err
	}
	if !input.ProposalType.IsValid() {
		return models.Proposal{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown proposal type %q", input.ProposalType))
	}
	if input.ProposalType.RequiresBenchmark() && input.BenchmarkId == nil {
		return models.Proposal{}, errors.Wrap(models.ErrProposalMissingBenchmark,
			fmt.Sprintf("%s proposals must reference a benchmark", input.ProposalType))
	}
	if input.ProposalType == models.ProposalNewBenchmark && len(input.BenchmarkDefinition) == 0 {
		return models.Proposal{}, errors.Wrap(models.ErrProposalMissingDefinition,
			"new benchmark proposals must carry a benchmark definition")
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.Proposal, error) {
			if input.BenchmarkId != nil {
				if _, err := usecase.benchmarkRepository.BenchmarkById(ctx, tx, *input.BenchmarkId); err != nil {
					return models.Proposal{}, err
				}
			}

			newProposalId := uuid.New()
			if err := usecase.repository.CreateProposal(ctx, tx, input, newProposalId); err != nil {
				return models.Proposal{}, err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventProposalCreated,
				AggregateType: models.AggregateProposal,
				AggregateId:   newProposalId,
				ActorId:       &input.CreatedBy,
			}); err != nil {
				return models.Proposal{}, err
			}

			return usecase.repository.ProposalById(ctx, tx, newProposalId)
		})
}

func (usecase *GovernanceUseCase) TransitionProposalStatus(
	ctx context.Context,
	proposalId uuid.UUID,
	target models.ProposalStatus,
	actorId uuid.UUID,
) (models.Proposal, error) {
	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.Proposal, error) {
			proposal, err := usecase.repository.ProposalByIdForUpdate(ctx, tx, proposalId)
			if err != nil {
				return models.Proposal{}, err
			}

			if !proposal.Status.CanTransitionTo(target) {
				return models.Proposal{}, errors.Wrap(models.InvalidTransitionError,
					fmt.Sprintf("proposal status %q cannot move to %q", proposal.Status, target))
			}

			if err := usecase.repository.UpdateProposalStatus(ctx, tx, proposalId, target); err != nil {
				return models.Proposal{}, err
			}

			if err := usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
				Action:       "proposal.status_changed",
				ResourceType: models.AggregateProposal,
				ResourceId:   proposalId,
				ActorId:      &actorId,
				OldValues:    statusPayload(proposal.Status),
				NewValues:    statusPayload(target),
			}); err != nil {
				return models.Proposal{}, err
			}

			return usecase.repository.ProposalById(ctx, tx, proposalId)
		})
}

// CastVote upserts the member's vote and recounts the tallies in the same
// transaction. Only proposals in voting status accept votes.
func (usecase *GovernanceUseCase) CastVote(
	ctx context.Context,
	input models.CastProposalVoteInput,
) (models.Proposal, error) {
	if !input.VoteType.IsValid() {
		return models.Proposal{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown vote type %q", input.VoteType))
	}
	if input.VotingPower <= 0 {
		input.VotingPower = 1
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.Proposal, error) {
			proposal, err := usecase.repository.ProposalByIdForUpdate(ctx, tx, input.ProposalId)
			if err != nil {
				return models.Proposal{}, err
			}
			if proposal.Status != models.ProposalStatusVoting {
				return models.Proposal{}, errors.Wrap(models.InvalidTransitionError,
					fmt.Sprintf("proposal %s is %q, not open for voting",
						input.ProposalId, proposal.Status))
			}

			if err := usecase.repository.UpsertProposalVote(ctx, tx, models.ProposalVote{
				ProposalId:  input.ProposalId,
				UserId:      input.UserId,
				VoteType:    input.VoteType,
				VotingPower: input.VotingPower,
				Reasoning:   input.Reasoning,
			}); err != nil {
				return models.Proposal{}, err
			}
			if err := usecase.repository.RecountProposalVotes(ctx, tx, input.ProposalId); err != nil {
				return models.Proposal{}, err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventProposalVoteCast,
				AggregateType: models.AggregateProposal,
				AggregateId:   input.ProposalId,
				ActorId:       &input.UserId,
			}); err != nil {
				return models.Proposal{}, err
			}

			return usecase.repository.ProposalById(ctx, tx, input.ProposalId)
		})
}

// FinalizeProposal closes the voting window and decides the outcome from the
// recounted tallies. Quorum failures reject the proposal.
func (usecase *GovernanceUseCase) FinalizeProposal(
	ctx context.Context,
	proposalId uuid.UUID,
	actorId uuid.UUID,
) (models.ProposalOutcome, error) {
	outcome, err := executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.ProposalOutcome, error) {
			proposal, err := usecase.repository.ProposalByIdForUpdate(ctx, tx, proposalId)
			if err != nil {
				return "", err
			}
			if proposal.Status != models.ProposalStatusVoting {
				return "", errors.Wrap(models.InvalidTransitionError,
					fmt.Sprintf("proposal %s is %q, not open for voting", proposalId, proposal.Status))
			}

			// Recount right before deciding, in case of counter drift.
			if err := usecase.repository.RecountProposalVotes(ctx, tx, proposalId); err != nil {
				return "", err
			}
			proposal, err = usecase.repository.ProposalById(ctx, tx, proposalId)
			if err != nil {
				return "", err
			}

			outcome := proposal.Finalize()
			status := models.ProposalStatusRejected
			if outcome == models.OutcomeApproved {
				status = models.ProposalStatusApproved
			}

			if err := usecase.repository.UpdateProposalStatus(ctx, tx, proposalId, status); err != nil {
				return "", err
			}

			if err := usecase.eventRepository.CreateDomainEvent(ctx, tx, models.CreateDomainEvent{
				EventType:     models.EventProposalFinalized,
				AggregateType: models.AggregateProposal,
				AggregateId:   proposalId,
				Payload:       fmt.Appendf(nil, `{"outcome":%q}`, outcome),
				ActorId:       &actorId,
			}); err != nil {
				return "", err
			}

			if err := usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
				Action:       "proposal.finalized",
				ResourceType: models.AggregateProposal,
				ResourceId:   proposalId,
				ActorId:      &actorId,
				NewValues: fmt.Appendf(nil, `{"outcome":%q,"for":%d,"against":%d,"abstain":%d}`,
					outcome, proposal.VotesFor, proposal.VotesAgainst, proposal.VotesAbstain),
			}); err != nil {
				return "", err
			}

			return outcome, nil
		})
	if err != nil {
		return "", err
	}

	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "proposal finalized", "proposal_id", proposalId, "outcome", outcome)
	return outcome, nil
}
