package usecases

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/benchlooms/exchange-backend/mocks"
	"github.com/benchlooms/exchange-backend/models"
)

func TestDispatchPendingEvents(t *testing.T) {
	transaction := new(mocks.Transaction)
	transactionFactory := &mocks.TransactionFactory{TxMock: transaction}
	repository := new(mocks.EventRepository)
	consumer := new(mocks.EventConsumer)

	ctx := context.Background()
	events := []models.DomainEvent{
		{Id: uuid.New(), EventType: models.EventSubmissionCreated},
		{Id: uuid.New(), EventType: models.EventProposalFinalized},
	}
	eventIds := []uuid.UUID{events[0].Id, events[1].Id}

	transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	repository.On("ListUnprocessedEvents", ctx, transaction, 100).Return(events, nil)
	consumer.On("Consume", ctx, events).Return(nil)
	repository.On("MarkEventsProcessed", ctx, transaction, eventIds).Return(nil)

	usecase := &EventUseCase{
		transactionFactory: transactionFactory,
		repository:         repository,
		consumer:           consumer,
	}

	dispatched, err := usecase.DispatchPendingEvents(ctx, 100)

	assert.NoError(t, err)
	assert.Equal(t, 2, dispatched)
	repository.AssertExpectations(t)
	consumer.AssertExpectations(t)
}

func TestDispatchPendingEvents_empty_outbox(t *testing.T) {
	transaction := new(mocks.Transaction)
	transactionFactory := &mocks.TransactionFactory{TxMock: transaction}
	repository := new(mocks.EventRepository)
	consumer := new(mocks.EventConsumer)

	ctx := context.Background()
	transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	repository.On("ListUnprocessedEvents", ctx, transaction, 100).
		Return([]models.DomainEvent{}, nil)

	usecase := &EventUseCase{
		transactionFactory: transactionFactory,
		repository:         repository,
		consumer:           consumer,
	}

	dispatched, err := usecase.DispatchPendingEvents(ctx, 100)

	assert.NoError(t, err)
	assert.Zero(t, dispatched)
	consumer.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
	repository.AssertNotCalled(t, "MarkEventsProcessed", mock.Anything, mock.Anything, mock.Anything)
}

// A failing consumer leaves the batch unprocessed for the next cycle.
func TestDispatchPendingEvents_consumer_failure(t *testing.T) {
	transaction := new(mocks.Transaction)
	transactionFactory := &mocks.TransactionFactory{TxMock: transaction}
	repository := new(mocks.EventRepository)
	consumer := new(mocks.EventConsumer)

	ctx := context.Background()
	events := []models.DomainEvent{{Id: uuid.New(), EventType: models.EventSubmissionCreated}}
	consumerErr := errors.New("webhook target unreachable")

	transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	repository.On("ListUnprocessedEvents", ctx, transaction, 100).Return(events, nil)
	consumer.On("Consume", ctx, events).Return(consumerErr)

	usecase := &EventUseCase{
		transactionFactory: transactionFactory,
		repository:         repository,
		consumer:           consumer,
	}

	_, err := usecase.DispatchPendingEvents(ctx, 100)

	assert.ErrorIs(t, err, consumerErr)
	repository.AssertNotCalled(t, "MarkEventsProcessed", mock.Anything, mock.Anything, mock.Anything)
}
