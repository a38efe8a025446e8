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

type UserUseCaseRepository interface {
	UserById(ctx context.Context, exec repositories.Executor, userId uuid.UUID) (models.User, error)
	UserByEmail(ctx context.Context, exec repositories.Executor, email string) (*models.User, error)
	UserByUsername(ctx context.Context, exec repositories.Executor, username string) (*models.User, error)
	ListUsers(ctx context.Context, exec repositories.Executor, includeDeleted bool) ([]models.User, error)
	CreateUser(ctx context.Context, exec repositories.Executor, input models.CreateUserInput, newUserId uuid.UUID) error
	UpdateUser(ctx context.Context, exec repositories.Executor, input models.UpdateUserInput) error
	SoftDeleteUser(ctx context.Context, exec repositories.Executor, userId uuid.UUID) error
}

type UserUseCase struct {
	transactionFactory executor_factory.TransactionFactory
	executorFactory    executor_factory.ExecutorFactory
	repository         UserUseCaseRepository
	auditRepository    benchmarkAuditRepository
}

func (usecase *UserUseCase) GetUser(ctx context.Context, userId uuid.UUID) (models.User, error) {
	return usecase.repository.UserById(ctx, usecase.executorFactory.NewExecutor(), userId)
}

func (usecase *UserUseCase) ListUsers(ctx context.Context) ([]models.User, error) {
	return usecase.repository.ListUsers(ctx, usecase.executorFactory.NewExecutor(), false)
}

func (usecase *UserUseCase) CreateUser(ctx context.Context, input models.CreateUserInput) (models.User, error) {
	if err := validateStruct(input); err != nil {
		return models.User{}, err
	}
	if input.Role == "" {
		input.Role = models.RoleRegistered
	}
	if !input.Role.IsValid() {
		return models.User{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown role %q", input.Role))
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.User, error) {
			newUserId := uuid.New()
			if err := usecase.repository.CreateUser(ctx, tx, input, newUserId); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.User{}, errors.Wrap(models.ConflictError,
						"a user with this email or username already exists")
				}
				return models.User{}, err
			}
			return usecase.repository.UserById(ctx, tx, newUserId)
		})
}

func (usecase *UserUseCase) UpdateUser(ctx context.Context, input models.UpdateUserInput, actorId uuid.UUID) (models.User, error) {
	if input.Role != nil && !input.Role.IsValid() {
		return models.User{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown role %q", *input.Role))
	}

	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (models.User, error) {
			user, err := usecase.repository.UserById(ctx, tx, input.Id)
			if err != nil {
				return models.User{}, err
			}
			if user.IsDeleted() {
				return models.User{}, errors.Wrap(models.NotFoundError,
					fmt.Sprintf("user %s is deleted", input.Id))
			}

			if err := usecase.repository.UpdateUser(ctx, tx, input); err != nil {
				return models.User{}, err
			}

			if input.Role != nil && *input.Role != user.Role {
				if err := usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
					Action:       "user.role_changed",
					ResourceType: "user",
					ResourceId:   input.Id,
					ActorId:      &actorId,
					OldValues:    fmt.Appendf(nil, `{"role":%q}`, user.Role),
					NewValues:    fmt.Appendf(nil, `{"role":%q}`, *input.Role),
				}); err != nil {
					return models.User{}, err
				}
			}

			return usecase.repository.UserById(ctx, tx, input.Id)
		})
}

// DeactivateUser soft-deletes. Submissions and audit history stay
// attributable to the user.
func (usecase *UserUseCase) DeactivateUser(ctx context.Context, userId uuid.UUID, actorId uuid.UUID) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		user, err := usecase.repository.UserById(ctx, tx, userId)
		if err != nil {
			return err
		}
		if user.IsDeleted() {
			return errors.Wrap(models.NotFoundError, fmt.Sprintf("user %s is already deleted", userId))
		}

		if err := usecase.repository.SoftDeleteUser(ctx, tx, userId); err != nil {
			return err
		}

		return usecase.auditRepository.CreateAuditEntry(ctx, tx, models.CreateAuditEntry{
			Action:       "user.deactivated",
			ResourceType: "user",
			ResourceId:   userId,
			ActorId:      &actorId,
		})
	})
}
