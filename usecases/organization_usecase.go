package usecases

import (
	"context"
	"fmt"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type OrganizationUseCaseRepository interface {
	OrganizationById(ctx context.Context, exec repositories.Executor, organizationId uuid.UUID) (models.Organization, error)
	OrganizationByName(ctx context.Context, exec repositories.Executor, name string) (*models.Organization, error)
	CreateOrganization(ctx context.Context, exec repositories.Executor,
		input models.CreateOrganizationInput, newOrganizationId uuid.UUID) error
	SetOrganizationVerified(ctx context.Context, exec repositories.Executor,
		organizationId uuid.UUID, verified bool) error
	MembersOfOrganization(ctx context.Context, exec repositories.Executor,
		organizationId uuid.UUID) ([]models.OrganizationMember, error)
	MemberOfOrganization(ctx context.Context, exec repositories.Executor,
		organizationId, userId uuid.UUID) (*models.OrganizationMember, error)
	AddOrganizationMember(ctx context.Context, exec repositories.Executor,
		organizationId, userId uuid.UUID, role models.OrganizationMemberRole) error
	RemoveOrganizationMember(ctx context.Context, exec repositories.Executor,
		organizationId, userId uuid.UUID) error
	CountOrganizationOwners(ctx context.Context, exec repositories.Executor,
		organizationId uuid.UUID) (int, error)
}

type OrganizationUseCase struct {
	transactionFactory executor_factory.TransactionFactory
	executorFactory    executor_factory.ExecutorFactory
	repository         OrganizationUseCaseRepository
	auditRepository    benchmarkAuditRepository
}

func (usecase *OrganizationUseCase) GetOrganization(
	ctx context.Context,
	organizationId uuid.UUID,
) (models.Organization, error) {
	return usecase.repository.OrganizationById(ctx, usecase.executorFactory.NewExecutor(), organizationId)
}

// CreateOrganization creates the organization with its creator as first
// owner, atomically, so no organization ever exists without one.
func (usecase *OrganizationUseCase) CreateOrganization(
	ctx context.Context,
	input models.CreateOrganizationInput,
	creatorId uuid.UUID,
) (models.Organization, error) {
	if err := validateStruct(input); err != nil {
		return models.Organization{}, err
	}
	if !input.OrgType.IsValid() {
		return models.Organization{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown organization type %q", input.OrgType))
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.Organization, error) {
			newOrganizationId := uuid.New()
			if err := usecase.repository.CreateOrganization(ctx, tx, input, newOrganizationId); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.Organization{}, errors.Wrap(models.ConflictError,
						fmt.Sprintf("an organization named %q already exists", input.Name))
				}
				return models.Organization{}, err
			}

			if err := usecase.repository.AddOrganizationMember(
				ctx, tx, newOrganizationId, creatorId, models.OrgMemberRoleOwner); err != nil {
				return models.Organization{}, err
			}

			return usecase.repository.OrganizationById(ctx, tx, newOrganizationId)
		})
}

func (usecase *OrganizationUseCase) VerifyOrganization(
	ctx context.Context,
	organizationId uuid.UUID,
	actorId uuid.UUID,
) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		if _, err := usecase.repository.OrganizationById(ctx, tx, organizationId); err != nil {
			return err
		}
		if err := usecase.repository.SetOrganizationVerified(ctx, tx, organizationId, true); err != nil {
			return err
		}
		return usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
			Action:       "organization.verified",
			ResourceType: "organization",
			ResourceId:   organizationId,
			ActorId:      &actorId,
		})
	})
}

func (usecase *OrganizationUseCase) ListMembers(
	ctx context.Context,
	organizationId uuid.UUID,
) ([]models.OrganizationMember, error) {
	return usecase.repository.MembersOfOrganization(ctx, usecase.executorFactory.NewExecutor(), organizationId)
}

func (usecase *OrganizationUseCase) AddMember(
	ctx context.Context,
	organizationId, userId uuid.UUID,
	role models.OrganizationMemberRole,
) error {
	if !role.IsValid() {
		return errors.Wrap(models.BadParameterError, fmt.Sprintf("unknown member role %q", role))
	}

	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		if _, err := usecase.repository.OrganizationById(ctx, tx, organizationId); err != nil {
			return err
		}
		return usecase.repository.AddOrganizationMember(ctx, tx, organizationId, userId, role)
	})
}

// RemoveMember enforces the owner floor: removing or demoting the last owner
// is rejected, so every organization keeps at least one.
func (usecase *OrganizationUseCase) RemoveMember(
	ctx context.Context,
	organizationId, userId uuid.UUID,
) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		member, err := usecase.repository.MemberOfOrganization(ctx, tx, organizationId, userId)
		if err != nil {
			return err
		}
		if member == nil {
			return errors.Wrap(models.NotFoundError,
				fmt.Sprintf("user %s is not a member of organization %s", userId, organizationId))
		}

		if member.Role == models.OrgMemberRoleOwner {
			owners, err := usecase.repository.CountOrganizationOwners(ctx, tx, organizationId)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return errors.Wrap(models.ConflictError,
					"cannot remove the last owner of an organization")
			}
		}

		return usecase.repository.RemoveOrganizationMember(ctx, tx, organizationId, userId)
	})
}
