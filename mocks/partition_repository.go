package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/repositories"
)

type PartitionRepository struct {
	mock.Mock
}

func (m *PartitionRepository) EnsureMonthlyPartitions(ctx context.Context, exec repositories.Executor, from, to time.Time) error {
	args := m.Called(ctx, exec, from, to)
	return args.Error(0)
}

func (m *PartitionRepository) DropEventPartitionsBefore(ctx context.Context, exec repositories.Executor, cutoff time.Time) ([]string, error) {
	args := m.Called(ctx, exec, cutoff)
	return args.Get(0).([]string), args.Error(1)
}
