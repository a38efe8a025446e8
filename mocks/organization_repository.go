package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
)

type OrganizationRepository struct {
	mock.Mock
}

func (m *OrganizationRepository) OrganizationById(ctx context.Context, exec repositories.Executor, organizationId uuid.UUID) (models.Organization, error) {
	args := m.Called(ctx, exec, organizationId)
	return args.Get(0).(models.Organization), args.Error(1)
}

func (m *OrganizationRepository) OrganizationByName(ctx context.Context, exec repositories.Executor, name string) (*models.Organization, error) {
	args := m.Called(ctx, exec, name)
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *OrganizationRepository) CreateOrganization(ctx context.Context, exec repositories.Executor,
	input models.CreateOrganizationInput, newOrganizationId uuid.UUID,
) error {
	args := m.Called(ctx, exec, input, newOrganizationId)
	return args.Error(0)
}

func (m *OrganizationRepository) SetOrganizationVerified(ctx context.Context, exec repositories.Executor,
	organizationId uuid.UUID, verified bool,
) error {
	args := m.Called(ctx, exec, organizationId, verified)
	return args.Error(0)
}

func (m *OrganizationRepository) MembersOfOrganization(ctx context.Context, exec repositories.Executor,
	organizationId uuid.UUID,
) ([]models.OrganizationMember, error) {
	args := m.Called(ctx, exec, organizationId)
	return args.Get(0).([]models.OrganizationMember), args.Error(1)
}

func (m *OrganizationRepository) MemberOfOrganization(ctx context.Context, exec repositories.Executor,
	organizationId, userId uuid.UUID,
) (*models.OrganizationMember, error) {
	args := m.Called(ctx, exec, organizationId, userId)
	return args.Get(0).(*models.OrganizationMember), args.Error(1)
}

func (m *OrganizationRepository) AddOrganizationMember(ctx context.Context, exec repositories.Executor,
	organizationId, userId uuid.UUID, role models.OrganizationMemberRole,
) error {
	args := m.Called(ctx, exec, organizationId, userId, role)
	return args.Error(0)
}

func (m *OrganizationRepository) RemoveOrganizationMember(ctx context.Context, exec repositories.Executor,
	organizationId, userId uuid.UUID,
) error {
	args := m.Called(ctx, exec, organizationId, userId)
	return args.Error(0)
}

func (m *OrganizationRepository) CountOrganizationOwners(ctx context.Context, exec repositories.Executor,
	organizationId uuid.UUID,
) (int, error) {
	args := m.Called(ctx, exec, organizationId)
	return args.Int(0), args.Error(1)
}
