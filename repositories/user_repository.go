package repositories

import (
	"context"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type UserRepository struct{}

func (repo *UserRepository) UserById(ctx context.Context, exec Executor, userId uuid.UUID) (models.User, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectUserColumns...).
			From(dbmodels.TABLE_USERS).
			Where(squirrel.Eq{"id": userId}),
		dbmodels.AdaptUser,
	)
}

func (repo *UserRepository) UserByEmail(ctx context.Context, exec Executor, email string) (*models.User, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectUserColumns...).
			From(dbmodels.TABLE_USERS).
			Where(squirrel.Eq{"email": email}),
		dbmodels.AdaptUser,
	)
}

func (repo *UserRepository) UserByUsername(ctx context.Context, exec Executor, username string) (*models.User, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectUserColumns...).
			From(dbmodels.TABLE_USERS).
			Where(squirrel.Eq{"username": username}),
		dbmodels.AdaptUser,
	)
}

func (repo *UserRepository) ListUsers(ctx context.Context, exec Executor, includeDeleted bool) ([]models.User, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectUserColumns...).
		From(dbmodels.TABLE_USERS).
		OrderBy("created_at DESC")

	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptUser)
}

func (repo *UserRepository) CreateUser(
	ctx context.Context,
	exec Executor,
	input models.CreateUserInput,
	newUserId uuid.UUID,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_USERS).
			Columns(
				"id",
				"email",
				"username",
				"display_name",
				"role",
			).
			Values(
				newUserId,
				input.Email,
				input.Username,
				input.DisplayName,
				input.Role,
			),
	)
}

func (repo *UserRepository) UpdateUser(ctx context.Context, exec Executor, input models.UpdateUserInput) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_USERS).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": input.Id})

	if input.DisplayName != nil {
		query = query.Set("display_name", *input.DisplayName)
	}
	if input.Role != nil {
		query = query.Set("role", *input.Role)
	}

	return ExecBuilder(ctx, exec, query)
}

func (repo *UserRepository) SoftDeleteUser(ctx context.Context, exec Executor, userId uuid.UUID) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_USERS).
			Set("deleted_at", squirrel.Expr("NOW()")).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": userId}).
			Where("deleted_at IS NULL"),
	)
}
