package dto

import (
	"quickcourt/internal/domains/court/model"
	"quickcourt/shared"
	gDto "quickcourt/shared/dto"
	gModel "quickcourt/shared/model"
	"quickcourt/shared/timezone"

	"github.com/google/uuid"
)

type CreateCourtRequest struct {
	VenueID    string `json:"venue_id"    validate:"required,uuid"`
	Name       string `json:"name"        validate:"required,min=1,max=100"`
	Sport      string `json:"sport"       validate:"required,oneof=badminton tennis football cricket basketball table_tennis volleyball squash"`
	HourlyRate int64  `json:"hourly_rate" validate:"required,gt=0"`
	OpenTime   string `json:"open_time"   validate:"required,hhmm"`
	CloseTime  string `json:"close_time"  validate:"required,hhmm"`
	Active     *bool  `json:"active"      validate:"omitempty"`
}

func (c *CreateCourtRequest) ToModel(user string) model.Court {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Court{
		ID:         uuid.NewString(),
		VenueID:    c.VenueID,
		Name:       c.Name,
		Sport:      c.Sport,
		HourlyRate: c.HourlyRate,
		OpenTime:   c.OpenTime,
		CloseTime:  c.CloseTime,
		Active:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCourtRequest struct {
	Name       string `db:"name"        json:"name"        validate:"omitempty,min=1,max=100"`
	Sport      string `db:"sport"       json:"sport"       validate:"omitempty,oneof=badminton tennis football cricket basketball table_tennis volleyball squash"`
	HourlyRate int64  `db:"hourly_rate" json:"hourly_rate" validate:"omitempty,gt=0"`
	OpenTime   string `db:"open_time"   json:"open_time"   validate:"omitempty,hhmm"`
	CloseTime  string `db:"close_time"  json:"close_time"  validate:"omitempty,hhmm"`
	Active     *bool  `db:"active"      json:"active"      validate:"omitempty"`
}

type CourtResponse struct {
	ID         string `json:"id"`
	VenueID    string `json:"venue_id"`
	Name       string `json:"name"`
	Sport      string `json:"sport"`
	HourlyRate int64  `json:"hourly_rate"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	Active     bool   `json:"active"`
	gDto.Metadata
}

func (r *CourtResponse) FromModel(model model.Court) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.Name = model.Name
	r.Sport = model.Sport
	r.HourlyRate = model.HourlyRate
	r.OpenTime = model.OpenTime
	r.CloseTime = model.CloseTime
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetCourtsResponse struct {
	Courts    []CourtResponse `json:"courts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetCourtsResponse) FromModels(models []model.Court, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Courts = make([]CourtResponse, len(models))
	for i, mod := range models {
		r.Courts[i].FromModel(mod)
	}
}

type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	CourtID    string `json:"court_id"`
	Date       string `json:"date"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	HourlyRate int64  `json:"hourly_rate"`
	Slots      []Slot `json:"slots"`
}
