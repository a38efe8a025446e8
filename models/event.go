package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted through the outbox.
const (
	EventBenchmarkCreated       = "benchmark.created"
	EventBenchmarkStatusChanged = "benchmark.status_changed"
	EventBenchmarkVersionCreated = "benchmark.version_created"
	EventSubmissionCreated      = "submission.created"
	EventSubmissionDeleted      = "submission.deleted"
	EventVerificationRequested  = "verification.requested"
	EventVerificationCompleted  = "verification.completed"
	EventVerificationVoteCast   = "verification.vote_cast"
	EventProposalCreated        = "proposal.created"
	EventProposalVoteCast       = "proposal.vote_cast"
	EventProposalFinalized      = "proposal.finalized"
)

// Aggregate types referenced by events and audit entries.
const (
	AggregateBenchmark             = "benchmark"
	AggregateSubmission            = "submission"
	AggregateVerification          = "verification"
	AggregateCommunityVerification = "community_verification"
	AggregateProposal              = "proposal"
)

// DomainEvent is an immutable outbox row, written in the same transaction as
// the state change it describes. ProcessedAt is the only field ever updated,
// once a consumer acknowledges.
type DomainEvent struct {
	Id            uuid.UUID
	EventType     string
	AggregateType string
	AggregateId   uuid.UUID
	Payload       json.RawMessage
	CorrelationId *string
	CausationId   *string
	ActorId       *uuid.UUID
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}

type CreateDomainEvent struct {
	EventType     string
	AggregateType string
	AggregateId   uuid.UUID
	Payload       json.RawMessage
	CorrelationId *string
	CausationId   *string
	ActorId       *uuid.UUID
}
