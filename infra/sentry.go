package infra

import (
	"log"

	"github.com/getsentry/sentry-go"
)

func SetupSentry(dsn string, env string) {
	if dsn == "" {
		return
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		EnableTracing:    false,
		TracesSampleRate: 0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %v", err)
	}
}
