package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBUser struct {
	Id          uuid.UUID  `db:"id"`
	Email       string     `db:"email"`
	Username    string     `db:"username"`
	DisplayName string     `db:"display_name"`
	Role        string     `db:"role"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

const TABLE_USERS = "users"

var SelectUserColumns = utils.ColumnList[DBUser]()

func AdaptUser(db DBUser) (models.User, error) {
	return models.User{
		Id:          db.Id,
		Email:       db.Email,
		Username:    db.Username,
		DisplayName: db.DisplayName,
		Role:        models.UserRole(db.Role),
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
		DeletedAt:   db.DeletedAt,
	}, nil
}
