package usecases

import (
	"context"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type EventUseCaseRepository interface {
	ListUnprocessedEvents(ctx context.Context, exec repositories.Executor, limit int) ([]models.DomainEvent, error)
	MarkEventsProcessed(ctx context.Context, exec repositories.Executor, eventIds []uuid.UUID) error
	EventsOfAggregate(ctx context.Context, exec repositories.Executor,
		aggregateType string, aggregateId uuid.UUID) ([]models.DomainEvent, error)
}

type auditTrailRepository interface {
	AuditTrailOfResource(ctx context.Context, exec repositories.Executor,
		resourceType string, resourceId uuid.UUID) ([]models.AuditEntry, error)
}

// EventConsumer receives a batch of outbox events. A failed batch is left
// unprocessed and retried on the next dispatch cycle.
type EventConsumer interface {
	Consume(ctx context.Context, events []models.DomainEvent) error
}

type EventUseCase struct {
	transactionFactory executor_factory.TransactionFactory
	executorFactory    executor_factory.ExecutorFactory
	repository         EventUseCaseRepository
	auditRepository    auditTrailRepository
	consumer           EventConsumer
}

// DispatchPendingEvents drains one batch of the outbox: events are locked,
// handed to the consumer and marked processed in a single transaction.
// SKIP LOCKED on the read side means concurrent dispatchers work on disjoint
// batches.
func (usecase *EventUseCase) DispatchPendingEvents(ctx context.Context, batchSize int) (int, error) {
	return executor_factory.TransactionReturnValue(ctx,
		usecase.transactionFactory, func(tx repositories.Transaction) (int, error) {
			events, err := usecase.repository.ListUnprocessedEvents(ctx, tx, batchSize)
			if err != nil {
				return 0, err
			}
			if len(events) == 0 {
				return 0, nil
			}

			if err := usecase.consumer.Consume(ctx, events); err != nil {
				return 0, err
			}

			eventIds := make([]uuid.UUID, len(events))
			for i, event := range events {
				eventIds[i] = event.Id
			}
			if err := usecase.repository.MarkEventsProcessed(ctx, tx, eventIds); err != nil {
				return 0, err
			}
			return len(events), nil
		})
}

func (usecase *EventUseCase) GetEventsOfAggregate(
	ctx context.Context,
	aggregateType string,
	aggregateId uuid.UUID,
) ([]models.DomainEvent, error) {
	return usecase.repository.EventsOfAggregate(
		ctx, usecase.executorFactory.NewExecutor(), aggregateType, aggregateId)
}

func (usecase *EventUseCase) GetAuditTrail(
	ctx context.Context,
	resourceType string,
	resourceId uuid.UUID,
) ([]models.AuditEntry, error) {
	return usecase.auditRepository.AuditTrailOfResource(
		ctx, usecase.executorFactory.NewExecutor(), resourceType, resourceId)
}

// LoggingEventConsumer is the default consumer: it logs every event. External
// delivery targets plug in behind the EventConsumer interface.
type LoggingEventConsumer struct{}

func (c LoggingEventConsumer) Consume(ctx context.Context, events []models.DomainEvent) error {
	logger := utils.LoggerFromContext(ctx)
	for _, event := range events {
		logger.InfoContext(ctx, "dispatching domain event",
			"event_id", event.Id,
			"event_type", event.EventType,
			"aggregate_type", event.AggregateType,
			"aggregate_id", event.AggregateId)
	}
	return nil
}
