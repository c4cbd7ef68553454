package dto

import (
	"strings"
	"time"

	"quickcourt/internal/domains/tournament/model"
	"quickcourt/shared"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	gModel "quickcourt/shared/model"
	"quickcourt/shared/timezone"

	"github.com/google/uuid"
)

type CreateTournamentRequest struct {
	VenueID              string `json:"venue_id"              validate:"required,uuid"`
	Name                 string `json:"name"                  validate:"required,min=3,max=100"`
	Sport                string `json:"sport"                 validate:"required,oneof=badminton tennis football cricket basketball table_tennis volleyball squash"`
	Description          string `json:"description"           validate:"omitempty,max=2000"`
	StartDate            string `json:"start_date"            validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate              string `json:"end_date"              validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	RegistrationDeadline string `json:"registration_deadline" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	MaxParticipants      int    `json:"max_participants"      validate:"required,min=2,max=1024"`
	EntryFee             int64  `json:"entry_fee"             validate:"gte=0"`
}

// Schedule parses the start, end and registration deadline.
func (c *CreateTournamentRequest) Schedule() (start, end, deadline time.Time, err error) {
	if start, err = time.Parse(constant.DateFormat, c.StartDate); err != nil {
		return start, end, deadline, err
	}

	if end, err = time.Parse(constant.DateFormat, c.EndDate); err != nil {
		return start, end, deadline, err
	}

	deadline, err = time.Parse(constant.DateFormat, c.RegistrationDeadline)

	return start, end, deadline, err
}

func (c *CreateTournamentRequest) ToModel(user string, start, end, deadline time.Time) model.Tournament {
	now := timezone.Now()

	return model.Tournament{
		ID:                   uuid.NewString(),
		VenueID:              c.VenueID,
		Name:                 strings.TrimSpace(c.Name),
		Sport:                c.Sport,
		Description:          c.Description,
		StartDate:            start,
		EndDate:              end,
		RegistrationDeadline: deadline,
		MaxParticipants:      c.MaxParticipants,
		EntryFee:             c.EntryFee,
		Status:               model.StatusUpcoming,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTournamentRequest struct {
	Name                 string `db:"name"                  json:"name"                  validate:"omitempty,min=3,max=100"`
	Description          string `db:"description"           json:"description"           validate:"omitempty,max=2000"`
	StartDate            string `json:"start_date"            validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate              string `json:"end_date"              validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	RegistrationDeadline string `json:"registration_deadline" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MaxParticipants      int    `db:"max_participants"      json:"max_participants"      validate:"omitempty,min=2,max=1024"`
	EntryFee             int64  `db:"entry_fee"             json:"entry_fee"             validate:"omitempty,gte=0"`
}

// Schedule overlays the requested dates on the current schedule.
func (u *UpdateTournamentRequest) Schedule(current model.Tournament) (start, end, deadline time.Time, err error) {
	start, end, deadline = current.StartDate, current.EndDate, current.RegistrationDeadline

	if u.StartDate != constant.Empty {
		if start, err = time.Parse(constant.DateFormat, u.StartDate); err != nil {
			return start, end, deadline, err
		}
	}

	if u.EndDate != constant.Empty {
		if end, err = time.Parse(constant.DateFormat, u.EndDate); err != nil {
			return start, end, deadline, err
		}
	}

	if u.RegistrationDeadline != constant.Empty {
		deadline, err = time.Parse(constant.DateFormat, u.RegistrationDeadline)
	}

	return start, end, deadline, err
}

type RegisterRequest struct {
	TeamName     string `json:"team_name"     validate:"required,min=2,max=100"`
	ContactPhone string `json:"contact_phone" validate:"required,min=6,max=20"`
}

func (r *RegisterRequest) ToModel(tournamentID, user string) model.Registration {
	now := timezone.Now()

	return model.Registration{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		UserID:       user,
		TeamName:     strings.TrimSpace(r.TeamName),
		ContactPhone: strings.TrimSpace(r.ContactPhone),
		Status:       model.RegistrationStatusRegistered,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type TournamentResponse struct {
	ID                   string `json:"id"`
	VenueID              string `json:"venue_id"`
	Name                 string `json:"name"`
	Sport                string `json:"sport"`
	Description          string `json:"description"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	RegistrationDeadline string `json:"registration_deadline"`
	MaxParticipants      int    `json:"max_participants"`
	EntryFee             int64  `json:"entry_fee"`
	Status               string `json:"status"`
	gDto.Metadata
}

func (r *TournamentResponse) FromModel(model model.Tournament) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.Name = model.Name
	r.Sport = model.Sport
	r.Description = model.Description
	r.StartDate = timezone.Format(model.StartDate, constant.DateFormat)
	r.EndDate = timezone.Format(model.EndDate, constant.DateFormat)
	r.RegistrationDeadline = timezone.Format(model.RegistrationDeadline, constant.DateFormat)
	r.MaxParticipants = model.MaxParticipants
	r.EntryFee = model.EntryFee
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetTournamentsResponse struct {
	Tournaments []TournamentResponse `json:"tournaments"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetTournamentsResponse) FromModels(models []model.Tournament, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tournaments = make([]TournamentResponse, len(models))
	for i, mod := range models {
		r.Tournaments[i].FromModel(mod)
	}
}

type RegistrationResponse struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournament_id"`
	UserID       string `json:"user_id"`
	TeamName     string `json:"team_name"`
	ContactPhone string `json:"contact_phone"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *RegistrationResponse) FromModel(model model.Registration) {
	r.ID = model.ID
	r.TournamentID = model.TournamentID
	r.UserID = model.UserID
	r.TeamName = model.TeamName
	r.ContactPhone = model.ContactPhone
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRegistrationsResponse struct {
	Registrations []RegistrationResponse `json:"registrations"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetRegistrationsResponse) FromModels(models []model.Registration, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Registrations = make([]RegistrationResponse, len(models))
	for i, mod := range models {
		r.Registrations[i].FromModel(mod)
	}
}
