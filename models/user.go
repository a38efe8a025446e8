package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAnonymous   UserRole = "anonymous"
	RoleRegistered  UserRole = "registered"
	RoleContributor UserRole = "contributor"
	RoleReviewer    UserRole = "reviewer"
	RoleAdmin       UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAnonymous, RoleRegistered, RoleContributor, RoleReviewer, RoleAdmin:
		return true
	}
	return false
}

// Users are never hard-deleted: DeletedAt marks them inactive while keeping
// submissions and audit trails attributable.
type User struct {
	Id          uuid.UUID
	Email       string
	Username    string
	DisplayName string
	Role        UserRole
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func (u User) IsDeleted() bool {
	return u.DeletedAt != nil
}

type CreateUserInput struct {
	Email       string `validate:"required,email"`
	Username    string `validate:"required,min=3,max=64"`
	DisplayName string `validate:"max=128"`
	Role        UserRole
}

type UpdateUserInput struct {
	Id          uuid.UUID
	DisplayName *string
	Role        *UserRole
}
