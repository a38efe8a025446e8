package jobs

import (
	"context"

	"github.com/benchlooms/exchange-backend/usecases"
)

func MaintainPartitions(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"maintain-partitions",
		func(ctx context.Context, uc usecases.Usecases) error {
			maintenanceUseCase := uc.NewMaintenanceUseCase()
			return maintenanceUseCase.EnsureUpcomingPartitions(ctx)
		},
	)
}

func EnforceEventRetention(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"enforce-event-retention",
		func(ctx context.Context, uc usecases.Usecases) error {
			maintenanceUseCase := uc.NewMaintenanceUseCase()
			return maintenanceUseCase.EnforceEventRetention(ctx)
		},
	)
}
