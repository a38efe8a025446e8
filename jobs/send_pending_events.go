package jobs

import (
	"context"

	"github.com/benchlooms/exchange-backend/usecases"
	"github.com/benchlooms/exchange-backend/utils"
)

const eventDispatchBatchSize = 100

func SendPendingEvents(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"send-pending-events",
		func(ctx context.Context, uc usecases.Usecases) error {
			eventUseCase := uc.NewEventUseCase()
			for {
				dispatched, err := eventUseCase.DispatchPendingEvents(ctx, eventDispatchBatchSize)
				if err != nil {
					return err
				}
				if dispatched < eventDispatchBatchSize {
					return nil
				}
				utils.LoggerFromContext(ctx).DebugContext(ctx,
					"outbox batch dispatched, continuing", "batch_size", dispatched)
			}
		},
	)
}
