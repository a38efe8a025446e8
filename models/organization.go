package models

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationType string

const (
	OrgTypeProvider    OrganizationType = "provider"
	OrgTypeInstitution OrganizationType = "institution"
	OrgTypeEnterprise  OrganizationType = "enterprise"
	OrgTypeOpenSource  OrganizationType = "open_source"
	OrgTypeIndividual  OrganizationType = "individual"
)

func (t OrganizationType) IsValid() bool {
	switch t {
	case OrgTypeProvider, OrgTypeInstitution, OrgTypeEnterprise, OrgTypeOpenSource, OrgTypeIndividual:
		return true
	}
	return false
}

type Organization struct {
	Id        uuid.UUID
	Name      string
	OrgType   OrganizationType
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrganizationMemberRole string

const (
	OrgMemberRoleMember OrganizationMemberRole = "member"
	OrgMemberRoleAdmin  OrganizationMemberRole = "admin"
	OrgMemberRoleOwner  OrganizationMemberRole = "owner"
)

func (r OrganizationMemberRole) IsValid() bool {
	switch r {
	case OrgMemberRoleMember, OrgMemberRoleAdmin, OrgMemberRoleOwner:
		return true
	}
	return false
}

// Composite key (OrganizationId, UserId).
type OrganizationMember struct {
	OrganizationId uuid.UUID
	UserId         uuid.UUID
	Role           OrganizationMemberRole
	JoinedAt       time.Time
}

type CreateOrganizationInput struct {
	Name    string `validate:"required,min=2,max=128"`
	OrgType OrganizationType
}
