package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBAuditEntry struct {
	Id           uuid.UUID  `db:"id"`
	Action       string     `db:"action"`
	ResourceType string     `db:"resource_type"`
	ResourceId   uuid.UUID  `db:"resource_id"`
	ActorId      *uuid.UUID `db:"actor_id"`
	OldValues    []byte     `db:"old_values"`
	NewValues    []byte     `db:"new_values"`
	CreatedAt    time.Time  `db:"created_at"`
}

const TABLE_AUDIT_LOGS = "audit_logs"

var SelectAuditEntryColumns = utils.ColumnList[DBAuditEntry]()

func AdaptAuditEntry(db DBAuditEntry) (models.AuditEntry, error) {
	return models.AuditEntry{
		Id:           db.Id,
		Action:       db.Action,
		ResourceType: db.ResourceType,
		ResourceId:   db.ResourceId,
		ActorId:      db.ActorId,
		OldValues:    db.OldValues,
		NewValues:    db.NewValues,
		CreatedAt:    db.CreatedAt,
	}, nil
}
