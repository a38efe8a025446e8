package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is an immutable compliance trail row. Never mutated or deleted
// within the retention window.
type AuditEntry struct {
	Id           uuid.UUID
	Action       string
	ResourceType string
	ResourceId   uuid.UUID
	ActorId      *uuid.UUID
	OldValues    json.RawMessage
	NewValues    json.RawMessage
	CreatedAt    time.Time
}

type CreateAuditEntry struct {
	Action       string
	ResourceType string
	ResourceId   uuid.UUID
	ActorId      *uuid.UUID
	OldValues    json.RawMessage
	NewValues    json.RawMessage
}
