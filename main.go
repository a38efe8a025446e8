package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/benchlooms/exchange-backend/infra"
	"github.com/benchlooms/exchange-backend/jobs"
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

func main() {
	var (
		env       = utils.GetEnv("ENV", "development")
		logFormat = utils.GetEnv("LOG_FORMAT", "text")
		sentryDsn = utils.GetEnv("SENTRY_DSN", "")
		pgConfig  = utils.PGConfig{
			Hostname:         utils.GetEnv("PG_HOSTNAME", "localhost"),
			Port:             utils.GetEnv("PG_PORT", "5432"),
			User:             utils.GetRequiredEnv[string]("PG_USER"),
			Password:         utils.GetRequiredEnv[string]("PG_PASSWORD"),
			Database:         utils.GetEnv("PG_DATABASE", "benchlooms"),
			ConnectionString: utils.GetEnv("PG_CONNECTION_STRING", ""),
		}
	)

	shouldRunMigrations := flag.Bool("migrations", false, "Run database migrations")
	shouldRunScheduler := flag.Bool("scheduler", false, "Run the cron job scheduler")
	shouldRunWorker := flag.Bool("worker", false, "Run the task queue worker")
	flag.Parse()

	logger := utils.NewLogger(logFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(sentryDsn, env)

	if *shouldRunMigrations {
		if err := repositories.RunMigrations(pgConfig, logger); err != nil {
			log.Fatalf("error running migrations: %v", err)
		}
	}

	if !*shouldRunScheduler && !*shouldRunWorker {
		return
	}

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString())
	if err != nil {
		log.Fatalf("error creating postgres connection pool: %v", err)
	}
	defer pool.Close()

	workers := river.NewWorkers()
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers: workers,
	})
	if err != nil {
		log.Fatalf("error creating river client: %v", err)
	}

	repos := repositories.NewRepositories(pool, riverClient)
	uc := usecases.NewUsecases(repos)

	if err := usecases.RegisterWorkers(workers, uc); err != nil {
		log.Fatalf("error registering task queue workers: %v", err)
	}

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *shouldRunWorker {
		if err := riverClient.Start(notify); err != nil {
			log.Fatalf("error starting task queue worker: %v", err)
		}
		logger.InfoContext(ctx, "task queue worker started")
		defer func() {
			if err := riverClient.Stop(ctx); err != nil {
				logger.ErrorContext(ctx, "error stopping task queue worker", "error", err)
			}
		}()
	}

	if *shouldRunScheduler {
		go jobs.RunScheduler(notify, uc)
		logger.InfoContext(ctx, "job scheduler started")
	}

	<-notify.Done()
	logger.InfoContext(ctx, "shutting down")
}
