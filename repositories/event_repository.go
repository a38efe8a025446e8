package repositories

import (
	"context"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type EventRepository struct{}

// CreateDomainEvent writes an outbox row. Callers pass the transaction of the
// state change the event describes, so both commit or roll back together.
func (repo *EventRepository) CreateDomainEvent(
	ctx context.Context,
	exec Executor,
	event models.CreateDomainEvent,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_DOMAIN_EVENTS).
			Columns(
				"id",
				"event_type",
				"aggregate_type",
				"aggregate_id",
				"payload",
				"correlation_id",
				"causation_id",
				"actor_id",
			).
			Values(
				uuid.New(),
				event.EventType,
				event.AggregateType,
				event.AggregateId,
				[]byte(event.Payload),
				event.CorrelationId,
				event.CausationId,
				event.ActorId,
			),
	)
}

// ListUnprocessedEvents returns the oldest pending outbox rows, locked with
// SKIP LOCKED so concurrent dispatchers never pick the same batch.
func (repo *EventRepository) ListUnprocessedEvents(
	ctx context.Context,
	exec Executor,
	limit int,
) ([]models.DomainEvent, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectDomainEventColumns...).
			From(dbmodels.TABLE_DOMAIN_EVENTS).
			Where("processed_at IS NULL").
			OrderBy("created_at").
			Limit(uint64(limit)).
			Suffix("FOR UPDATE SKIP LOCKED"),
		dbmodels.AdaptDomainEvent,
	)
}

func (repo *EventRepository) MarkEventsProcessed(
	ctx context.Context,
	exec Executor,
	eventIds []uuid.UUID,
) error {
	if len(eventIds) == 0 {
		return nil
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_DOMAIN_EVENTS).
			Set("processed_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": eventIds}),
	)
}

func (repo *EventRepository) EventsOfAggregate(
	ctx context.Context,
	exec Executor,
	aggregateType string,
	aggregateId uuid.UUID,
) ([]models.DomainEvent, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectDomainEventColumns...).
			From(dbmodels.TABLE_DOMAIN_EVENTS).
			Where(squirrel.Eq{
				"aggregate_type": aggregateType,
				"aggregate_id":   aggregateId,
			}).
			OrderBy("created_at"),
		dbmodels.AdaptDomainEvent,
	)
}
