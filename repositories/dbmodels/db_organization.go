package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBOrganization struct {
	Id        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	OrgType   string    `db:"org_type"`
	Verified  bool      `db:"verified"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const TABLE_ORGANIZATIONS = "organizations"

var SelectOrganizationColumns = utils.ColumnList[DBOrganization]()

func AdaptOrganization(db DBOrganization) (models.Organization, error) {
	return models.Organization{
		Id:        db.Id,
		Name:      db.Name,
		OrgType:   models.OrganizationType(db.OrgType),
		Verified:  db.Verified,
		CreatedAt: db.CreatedAt,
		UpdatedAt: db.UpdatedAt,
	}, nil
}

type DBOrganizationMember struct {
	OrganizationId uuid.UUID `db:"organization_id"`
	UserId         uuid.UUID `db:"user_id"`
	Role           string    `db:"role"`
	JoinedAt       time.Time `db:"joined_at"`
}

const TABLE_ORGANIZATION_MEMBERS = "organization_members"

var SelectOrganizationMemberColumns = utils.ColumnList[DBOrganizationMember]()

func AdaptOrganizationMember(db DBOrganizationMember) (models.OrganizationMember, error) {
	return models.OrganizationMember{
		OrganizationId: db.OrganizationId,
		UserId:         db.UserId,
		Role:           models.OrganizationMemberRole(db.Role),
		JoinedAt:       db.JoinedAt,
	}, nil
}
