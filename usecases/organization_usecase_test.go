package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/benchlooms/exchange-backend/mocks"
	"github.com/benchlooms/exchange-backend/models"
)

type OrganizationUsecaseTestSuite struct {
	suite.Suite
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory
	repository         *mocks.OrganizationRepository
	auditRepository    *mocks.AuditRepository

	ctx            context.Context
	organizationId uuid.UUID
	userId         uuid.UUID
}

func (suite *OrganizationUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.repository = new(mocks.OrganizationRepository)
	suite.auditRepository = new(mocks.AuditRepository)

	suite.ctx = context.Background()
	suite.organizationId = uuid.MustParse("9a8b7c6d-5e4f-4a3b-2c1d-0e9f8a7b6c01")
	suite.userId = uuid.MustParse("3c2b1a0d-9e8f-4c7b-6a5d-4e3f2a1b0c02")
}

func (suite *OrganizationUsecaseTestSuite) makeUsecase() *OrganizationUseCase {
	return &OrganizationUseCase{
		transactionFactory: suite.transactionFactory,
		executorFactory:    suite.executorFactory,
		repository:         suite.repository,
		auditRepository:    suite.auditRepository,
	}
}

func (suite *OrganizationUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.transactionFactory.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.auditRepository.AssertExpectations(t)
}

// Creating an organization adds the creator as owner in the same
// transaction, so no organization ever exists without one.
func (suite *OrganizationUsecaseTestSuite) TestCreateOrganization() {
	input := models.CreateOrganizationInput{
		Name:    "Acme Research",
		OrgType: models.OrgTypeInstitution,
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("CreateOrganization", suite.ctx, suite.transaction, input, mock.Anything).Return(nil)
	suite.repository.On("AddOrganizationMember", suite.ctx, suite.transaction,
		mock.Anything, suite.userId, models.OrgMemberRoleOwner).Return(nil)
	suite.repository.On("OrganizationById", suite.ctx, suite.transaction, mock.Anything).
		Return(models.Organization{Id: suite.organizationId, Name: "Acme Research"}, nil)

	organization, err := suite.makeUsecase().CreateOrganization(suite.ctx, input, suite.userId)

	suite.NoError(err)
	suite.Equal("Acme Research", organization.Name)
	suite.AssertExpectations()
}

func (suite *OrganizationUsecaseTestSuite) TestRemoveMember_last_owner() {
	owner := models.OrganizationMember{
		OrganizationId: suite.organizationId,
		UserId:         suite.userId,
		Role:           models.OrgMemberRoleOwner,
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("MemberOfOrganization", suite.ctx, suite.transaction,
		suite.organizationId, suite.userId).Return(&owner, nil)
	suite.repository.On("CountOrganizationOwners", suite.ctx, suite.transaction,
		suite.organizationId).Return(1, nil)

	err := suite.makeUsecase().RemoveMember(suite.ctx, suite.organizationId, suite.userId)

	suite.ErrorIs(err, models.ConflictError)
	suite.repository.AssertNotCalled(suite.T(), "RemoveOrganizationMember",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *OrganizationUsecaseTestSuite) TestRemoveMember_owner_with_peers() {
	owner := models.OrganizationMember{
		OrganizationId: suite.organizationId,
		UserId:         suite.userId,
		Role:           models.OrgMemberRoleOwner,
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("MemberOfOrganization", suite.ctx, suite.transaction,
		suite.organizationId, suite.userId).Return(&owner, nil)
	suite.repository.On("CountOrganizationOwners", suite.ctx, suite.transaction,
		suite.organizationId).Return(2, nil)
	suite.repository.On("RemoveOrganizationMember", suite.ctx, suite.transaction,
		suite.organizationId, suite.userId).Return(nil)

	err := suite.makeUsecase().RemoveMember(suite.ctx, suite.organizationId, suite.userId)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *OrganizationUsecaseTestSuite) TestRemoveMember_not_a_member() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("MemberOfOrganization", suite.ctx, suite.transaction,
		suite.organizationId, suite.userId).Return((*models.OrganizationMember)(nil), nil)

	err := suite.makeUsecase().RemoveMember(suite.ctx, suite.organizationId, suite.userId)

	suite.ErrorIs(err, models.NotFoundError)
	suite.AssertExpectations()
}

func TestOrganizationUsecase(t *testing.T) {
	suite.Run(t, new(OrganizationUsecaseTestSuite))
}
