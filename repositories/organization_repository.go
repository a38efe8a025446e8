package repositories

import (
	"context"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type OrganizationRepository struct{}

func (repo *OrganizationRepository) OrganizationById(
	ctx context.Context,
	exec Executor,
	organizationId uuid.UUID,
) (models.Organization, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganizationColumns...).
			From(dbmodels.TABLE_ORGANIZATIONS).
			Where(squirrel.Eq{"id": organizationId}),
		dbmodels.AdaptOrganization,
	)
}

func (repo *OrganizationRepository) OrganizationByName(
	ctx context.Context,
	exec Executor,
	name string,
) (*models.Organization, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganizationColumns...).
			From(dbmodels.TABLE_ORGANIZATIONS).
			Where(squirrel.Eq{"name": name}),
		dbmodels.AdaptOrganization,
	)
}

func (repo *OrganizationRepository) CreateOrganization(
	ctx context.Context,
	exec Executor,
	input models.CreateOrganizationInput,
	newOrganizationId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_ORGANIZATIONS).
			Columns(
				"id",
				"name",
				"org_type",
			).
			Values(
				newOrganizationId,
				input.Name,
				input.OrgType,
			),
	)
}

func (repo *OrganizationRepository) SetOrganizationVerified(
	ctx context.Context,
	exec Executor,
	organizationId uuid.UUID,
	verified bool,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_ORGANIZATIONS).
			Set("verified", verified).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": organizationId}),
	)
}

func (repo *OrganizationRepository) MembersOfOrganization(
	ctx context.Context,
	exec Executor,
	organizationId uuid.UUID,
) ([]models.OrganizationMember, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganizationMemberColumns...).
			From(dbmodels.TABLE_ORGANIZATION_MEMBERS).
			Where(squirrel.Eq{"organization_id": organizationId}).
			OrderBy("joined_at"),
		dbmodels.AdaptOrganizationMember,
	)
}

func (repo *OrganizationRepository) MemberOfOrganization(
	ctx context.Context,
	exec Executor,
	organizationId, userId uuid.UUID,
) (*models.OrganizationMember, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganizationMemberColumns...).
			From(dbmodels.TABLE_ORGANIZATION_MEMBERS).
			Where(squirrel.Eq{"organization_id": organizationId, "user_id": userId}),
		dbmodels.AdaptOrganizationMember,
	)
}

func (repo *OrganizationRepository) AddOrganizationMember(
	ctx context.Context,
	exec Executor,
	organizationId, userId uuid.UUID,
	role models.OrganizationMemberRole,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_ORGANIZATION_MEMBERS).
			Columns("organization_id", "user_id", "role").
			Values(organizationId, userId, role).
			Suffix("ON CONFLICT (organization_id, user_id) DO UPDATE SET role = EXCLUDED.role"),
	)
}

func (repo *OrganizationRepository) RemoveOrganizationMember(
	ctx context.Context,
	exec Executor,
	organizationId, userId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Delete(dbmodels.TABLE_ORGANIZATION_MEMBERS).
			Where(squirrel.Eq{"organization_id": organizationId, "user_id": userId}),
	)
}

// CountOrganizationOwners backs the rule that an organization always keeps at
// least one owner.
func (repo *OrganizationRepository) CountOrganizationOwners(
	ctx context.Context,
	exec Executor,
	organizationId uuid.UUID,
) (int, error) {
	query := NewQueryBuilder().
		Select("COUNT(*)").
		From(dbmodels.TABLE_ORGANIZATION_MEMBERS).
		Where(squirrel.Eq{
			"organization_id": organizationId,
			"role":            models.OrgMemberRoleOwner,
		})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
