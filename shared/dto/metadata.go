package dto

import (
	"quickcourt/shared/constant"
	"quickcourt/shared/model"
	"quickcourt/shared/timezone"
)

// Metadata is the audit trail attached to every resource response.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	m.CreatedBy = source.CreatedBy

	if source.ModifiedAt.IsZero() {
		return
	}

	m.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = source.ModifiedBy
}
