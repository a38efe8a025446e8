package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) UserById(ctx context.Context, exec repositories.Executor, userId uuid.UUID) (models.User, error) {
	args := m.Called(ctx, exec, userId)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) UserByEmail(ctx context.Context, exec repositories.Executor, email string) (*models.User, error) {
	args := m.Called(ctx, exec, email)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) UserByUsername(ctx context.Context, exec repositories.Executor, username string) (*models.User, error) {
	args := m.Called(ctx, exec, username)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) ListUsers(ctx context.Context, exec repositories.Executor, includeDeleted bool) ([]models.User, error) {
	args := m.Called(ctx, exec, includeDeleted)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserRepository) CreateUser(ctx context.Context, exec repositories.Executor, input models.CreateUserInput, newUserId uuid.UUID) error {
	args := m.Called(ctx, exec, input, newUserId)
	return args.Error(0)
}

func (m *UserRepository) UpdateUser(ctx context.Context, exec repositories.Executor, input models.UpdateUserInput) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *UserRepository) SoftDeleteUser(ctx context.Context, exec repositories.Executor, userId uuid.UUID) error {
	args := m.Called(ctx, exec, userId)
	return args.Error(0)
}
