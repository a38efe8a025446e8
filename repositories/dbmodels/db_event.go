package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBDomainEvent struct {
	Id            uuid.UUID  `db:"id"`
	EventType     string     `db:"event_type"`
	AggregateType string     `db:"aggregate_type"`
	AggregateId   uuid.UUID  `db:"aggregate_id"`
	Payload       []byte     `db:"payload"`
	CorrelationId *string    `db:"correlation_id"`
	CausationId   *string    `db:"causation_id"`
	ActorId       *uuid.UUID `db:"actor_id"`
	CreatedAt     time.Time  `db:"created_at"`
	ProcessedAt   *time.Time `db:"processed_at"`
}

const TABLE_DOMAIN_EVENTS = "domain_events"

var SelectDomainEventColumns = utils.ColumnList[DBDomainEvent]()

func AdaptDomainEvent(db DBDomainEvent) (models.DomainEvent, error) {
	return models.DomainEvent{
		Id:            db.Id,
		EventType:     db.EventType,
		AggregateType: db.AggregateType,
		AggregateId:   db.AggregateId,
		Payload:       db.Payload,
		CorrelationId: db.CorrelationId,
		CausationId:   db.CausationId,
		ActorId:       db.ActorId,
		CreatedAt:     db.CreatedAt,
		ProcessedAt:   db.ProcessedAt,
	}, nil
}
