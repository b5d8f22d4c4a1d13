package model

import (
	"errors"
	"rental/shared/model"
)

const (
	TableName  = "vehicles"
	EntityName = "vehicle"

	FieldID      = "id"
	FieldType    = "type"
	FieldName    = "name"
	FieldOwnerID = "owner_id"
	FieldActive  = "active"
)

var ErrNotFound = errors.New("vehicle not found")

type Vehicle struct {
	ID      string  `db:"id"`
	Type    string  `db:"type"`
	Name    string  `db:"name"`
	OwnerID *string `db:"owner_id"`
	Active  bool    `db:"active"`
	model.Metadata
}

// Owner returns the owning operator ID, or "" when the vehicle has none.
func (v Vehicle) Owner() string {
	if v.OwnerID == nil {
		return ""
	}

	return *v.OwnerID
}
