package usecases

import (
	"context"
	"time"

	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"
	"github.com/benchlooms/exchange-backend/utils"
)

const (
	// How far ahead partitions are provisioned.
	partitionHorizonMonths = 3
	// Domain events older than this are dropped, whole partitions at a
	// time. Audit logs are exempt from retention.
	eventRetentionMonths = 24
)

type MaintenanceUseCaseRepository interface {
	EnsureMonthlyPartitions(ctx context.Context, exec repositories.Executor, from, to time.Time) error
	DropEventPartitionsBefore(ctx context.Context, exec repositories.Executor, cutoff time.Time) ([]string, error)
}

type MaintenanceUseCase struct {
	executorFactory executor_factory.ExecutorFactory
	repository      MaintenanceUseCaseRepository
}

// EnsureUpcomingPartitions provisions partitions from the current month
// through the horizon. Idempotent, safe to run on every schedule tick.
func (usecase *MaintenanceUseCase) EnsureUpcomingPartitions(ctx context.Context) error {
	now := time.Now().UTC()
	return usecase.repository.EnsureMonthlyPartitions(
		ctx,
		usecase.executorFactory.NewExecutor(),
		now,
		now.AddDate(0, partitionHorizonMonths, 0),
	)
}

// EnforceEventRetention drops domain event partitions past the retention
// window.
func (usecase *MaintenanceUseCase) EnforceEventRetention(ctx context.Context) error {
	cutoff := time.Now().UTC().AddDate(0, -eventRetentionMonths, 0)
	dropped, err := usecase.repository.DropEventPartitionsBefore(
		ctx, usecase.executorFactory.NewExecutor(), cutoff)
	if err != nil {
		return err
	}

	if len(dropped) > 0 {
		logger := utils.LoggerFromContext(ctx)
		logger.InfoContext(ctx, "dropped expired event partitions", "partitions", dropped)
	}
	return nil
}
