package model

import (
	"errors"
	"rental/shared/model"
	"rental/shared/principal"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldFullName = "full_name"
	FieldRole     = "role"
	FieldActive   = "active"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID       string `db:"id"`
	Email    string `db:"email"`
	FullName string `db:"full_name"`
	Role     string `db:"role"`
	Active   bool   `db:"active"`
	model.Metadata
}

// CanOperate reports whether the user may receive booking requests.
func (u User) CanOperate() bool {
	if !u.Active {
		return false
	}

	role := principal.ParseRole(u.Role)

	return role == principal.RoleOperator || role == principal.RoleAdmin
}
