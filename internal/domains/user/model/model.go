package model

import (
	"time"

	"quickcourt/shared/constant"
	"quickcourt/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

// SortableFields are the columns a list request may sort by.
var SortableFields = []string{
	FieldEmail,
	FieldFullName,
	FieldRole,
	FieldLastLogin,
	constant.FieldCreatedAt,
}

type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	FullName  string     `db:"full_name"`
	Phone     string     `db:"phone"`
	Role      string     `db:"role"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
