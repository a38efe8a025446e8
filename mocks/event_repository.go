package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories"
)

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) CreateDomainEvent(ctx context.Context, exec repositories.Executor, event models.CreateDomainEvent) error {
	args := m.Called(ctx, exec, event)
	return args.Error(0)
}

func (m *EventRepository) ListUnprocessedEvents(ctx context.Context, exec repositories.Executor, limit int) ([]models.DomainEvent, error) {
	args := m.Called(ctx, exec, limit)
	return args.Get(0).([]models.DomainEvent), args.Error(1)
}

func (m *EventRepository) MarkEventsProcessed(ctx context.Context, exec repositories.Executor, eventIds []uuid.UUID) error {
	args := m.Called(ctx, exec, eventIds)
	return args.Error(0)
}

func (m *EventRepository) EventsOfAggregate(ctx context.Context, exec repositories.Executor,
	aggregateType string, aggregateId uuid.UUID,
) ([]models.DomainEvent, error) {
	args := m.Called(ctx, exec, aggregateType, aggregateId)
	return args.Get(0).([]models.DomainEvent), args.Error(1)
}

type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) CreateAuditEntry(ctx context.Context, exec repositories.Executor, entry models.CreateAuditEntry) error {
	args := m.Called(ctx, exec, entry)
	return args.Error(0)
}

func (m *AuditRepository) AuditTrailOfResource(ctx context.Context, exec repositories.Executor,
	resourceType string, resourceId uuid.UUID,
) ([]models.AuditEntry, error) {
	args := m.Called(ctx, exec, resourceType, resourceId)
	return args.Get(0).([]models.AuditEntry), args.Error(1)
}

type EventConsumer struct {
	mock.Mock
}

func (m *EventConsumer) Consume(ctx context.Context, events []models.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
