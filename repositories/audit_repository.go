package repositories

import (
	"context"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type AuditRepository struct{}

func (repo *AuditRepository) CreateAuditEntry(
	ctx context.Context,
	exec Executor,
	entry models.CreateAuditEntry,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_AUDIT_LOGS).
			Columns(
				"id",
				"action",
				"resource_type",
				"resource_id",
				"actor_id",
				"old_values",
				"new_values",
			).
			Values(
				uuid.New(),
				entry.Action,
				entry.ResourceType,
				entry.ResourceId,
				entry.ActorId,
				[]byte(entry.OldValues),
				[]byte(entry.NewValues),
			),
	)
}

func (repo *AuditRepository) AuditTrailOfResource(
	ctx context.Context,
	exec Executor,
	resourceType string,
	resourceId uuid.UUID,
) ([]models.AuditEntry, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectAuditEntryColumns...).
			From(dbmodels.TABLE_AUDIT_LOGS).
			Where(squirrel.Eq{
				"resource_type": resourceType,
				"resource_id":   resourceId,
			}).
			OrderBy("created_at"),
		dbmodels.AdaptAuditEntry,
	)
}
