package jobs

import (
	"context"

	"github.com/benchlooms/exchange-backend/usecases"
)

func RefreshLeaderboard(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"refresh-leaderboard",
		func(ctx context.Context, uc usecases.Usecases) error {
			leaderboardUseCase := uc.NewLeaderboardUseCase()
			_, err := leaderboardUseCase.RefreshLeaderboard(ctx)
			return err
		},
	)
}
