package jobs

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"
	"github.com/benchlooms/exchange-backend/usecases"
	"github.com/benchlooms/exchange-backend/utils"
)

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func RunScheduler(ctx context.Context, uc usecases.Usecases) {
	taskr := tasker.New(tasker.Option{
		Verbose: true,
		Tz:      "UTC",
	}).WithContext(ctx)

	notConcurrent := false
	taskr.Task("*/10 * * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "refresh_leaderboard")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := RefreshLeaderboard(ctx, uc)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Task("* * * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "send_pending_events")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := SendPendingEvents(ctx, uc)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Task("0 2 * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "maintain_partitions")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := MaintainPartitions(ctx, uc)
		return errToReturnCode(err), err
	})

	taskr.Task("0 3 * * 0", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "enforce_event_retention")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := EnforceEventRetention(ctx, uc)
		return errToReturnCode(err), err
	})

	taskr.Run()
}
