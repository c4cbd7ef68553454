package model

import (
	"quickcourt/shared/constant"
	"quickcourt/shared/model"
)

const (
	RegistrationTableName  = "tournament_registrations"
	RegistrationEntityName = "tournament registration"

	FieldRegistrationID           = "id"
	FieldRegistrationTournamentID = "tournament_id"
	FieldRegistrationUserID       = "user_id"
	FieldRegistrationTeamName     = "team_name"
	FieldRegistrationContactPhone = "contact_phone"
	FieldRegistrationStatus       = "status"
)

// RegistrationSortableFields are the columns a list request may sort by.
var RegistrationSortableFields = []string{
	FieldRegistrationTeamName,
	FieldRegistrationStatus,
	constant.FieldCreatedAt,
}

const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusWithdrawn  = "withdrawn"
)

type Registration struct {
	ID           string `db:"id"`
	TournamentID string `db:"tournament_id"`
	UserID       string `db:"user_id"`
	TeamName     string `db:"team_name"`
	ContactPhone string `db:"contact_phone"`
	Status       string `db:"status"`
	model.Metadata
}
