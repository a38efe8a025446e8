package jobs

import (
	"context"
	"fmt"

	"github.com/benchlooms/exchange-backend/usecases"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
)

func reportCheckIn(checkinId *sentry.EventID, jobName string, status sentry.CheckInStatus) *sentry.EventID {
	checkin := sentry.CheckIn{MonitorSlug: jobName, Status: status}
	if checkinId != nil {
		checkin.ID = *checkinId
	}
	return sentry.CaptureCheckIn(&checkin, nil)
}

// executeWithMonitoring runs a scheduled job body wrapped in a sentry cron
// check-in, so a silently stalled schedule shows up as a missed monitor.
func executeWithMonitoring(
	ctx context.Context,
	uc usecases.Usecases,
	jobName string,
	fn func(context.Context, usecases.Usecases) error,
) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, fmt.Sprintf("Start job %s", jobName))

	checkinId := reportCheckIn(nil, jobName, sentry.CheckInStatusInProgress)

	if err := fn(ctx, uc); err != nil {
		reportCheckIn(checkinId, jobName, sentry.CheckInStatusError)
		utils.LogAndReportSentryError(ctx, err)
		return errors.Wrap(err, fmt.Sprintf("error executing job %s", jobName))
	}

	reportCheckIn(checkinId, jobName, sentry.CheckInStatusOK)
	logger.InfoContext(ctx, fmt.Sprintf("Done executing job %s", jobName))
	return nil
}
