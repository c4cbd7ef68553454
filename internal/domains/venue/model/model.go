package model

import (
	"quickcourt/shared/constant"
	"quickcourt/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID              = "id"
	FieldOwnerID         = "owner_id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldAddress         = "address"
	FieldCity            = "city"
	FieldSports          = "sports"
	FieldAmenities       = "amenities"
	FieldImage           = "image"
	FieldStatus          = "status"
	FieldRejectionReason = "rejection_reason"
)

// SortableFields are the columns a list request may sort by.
var SortableFields = []string{
	FieldName,
	FieldCity,
	FieldStatus,
	constant.FieldCreatedAt,
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Venue struct {
	ID              string         `db:"id"`
	OwnerID         string         `db:"owner_id"`
	Name            string         `db:"name"`
	Description     string         `db:"description"`
	Address         string         `db:"address"`
	City            string         `db:"city"`
	Sports          pq.StringArray `db:"sports"`
	Amenities       pq.StringArray `db:"amenities"`
	Image           string         `db:"image"`
	Status          string         `db:"status"`
	RejectionReason string         `db:"rejection_reason"`
	model.Metadata
}

func (v Venue) IsApproved() bool {
	return v.Status == StatusApproved
}
