package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/benchlooms/exchange-backend/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEnsureUpcomingPartitions(t *testing.T) {
	executorFactory := new(mocks.ExecutorFactory)
	repository := new(mocks.PartitionRepository)
	usecase := MaintenanceUseCase{executorFactory: executorFactory, repository: repository}
	ctx := context.Background()

	executorFactory.On("NewExecutor").Return(nil)
	repository.On("EnsureMonthlyPartitions", ctx, nil,
		mock.MatchedBy(func(from time.Time) bool {
			return time.Since(from) < time.Minute
		}),
		mock.MatchedBy(func(to time.Time) bool {
			return to.After(time.Now().UTC().AddDate(0, partitionHorizonMonths, -1))
		}),
	).Return(nil)

	err := usecase.EnsureUpcomingPartitions(ctx)

	assert.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestEnforceEventRetention(t *testing.T) {
	executorFactory := new(mocks.ExecutorFactory)
	repository := new(mocks.PartitionRepository)
	usecase := MaintenanceUseCase{executorFactory: executorFactory, repository: repository}
	ctx := context.Background()

	executorFactory.On("NewExecutor").Return(nil)
	repository.On("DropEventPartitionsBefore", ctx, nil,
		mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().UTC().AddDate(0, -eventRetentionMonths, 0)
			return cutoff.Sub(expected).Abs() < time.Minute
		}),
	).Return([]string{"domain_events_2024_08"}, nil)

	err := usecase.EnforceEventRetention(ctx)

	assert.NoError(t, err)
	repository.AssertExpectations(t)
}
