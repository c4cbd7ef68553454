package dto

import (
	"mime/multipart"
	"strings"

	"quickcourt/internal/domains/venue/model"
	"quickcourt/shared"
	gDto "quickcourt/shared/dto"
	gModel "quickcourt/shared/model"
	"quickcourt/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateVenueRequest struct {
	Name        string                `json:"name"        validate:"required,min=2,max=100"`
	Description string                `json:"description" validate:"omitempty,max=1000"`
	Address     string                `json:"address"     validate:"required,max=255"`
	City        string                `json:"city"        validate:"required,max=100"`
	Sports      []string              `json:"sports"      validate:"required,min=1,dive,oneof=badminton tennis football cricket basketball table_tennis volleyball squash"`
	Amenities   []string              `json:"amenities"   validate:"omitempty,dive,max=50"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateVenueRequest) ToModel(owner string, imageURL string) model.Venue {
	now := timezone.Now()

	return model.Venue{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Address:     c.Address,
		City:        strings.TrimSpace(c.City),
		Sports:      pq.StringArray(c.Sports),
		Amenities:   pq.StringArray(nonNil(c.Amenities)),
		Image:       imageURL,
		Status:      model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  owner,
			ModifiedBy: owner,
		},
	}
}

type UpdateVenueRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,min=2,max=100"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=1000"`
	Address     string                `db:"address"     json:"address"     validate:"omitempty,max=255"`
	City        string                `db:"city"        json:"city"        validate:"omitempty,max=100"`
	Sports      pq.StringArray        `db:"sports"      json:"sports"      validate:"omitempty,dive,oneof=badminton tennis football cricket basketball table_tennis volleyball squash"`
	Amenities   pq.StringArray        `db:"amenities"   json:"amenities"   validate:"omitempty,dive,max=50"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

func (u *UpdateVenueRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.Address == "" && u.City == "" &&
		len(u.Sports) == 0 && len(u.Amenities) == 0 && u.Image == nil
}

type RejectVenueRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type VenueResponse struct {
	ID              string   `json:"id"`
	OwnerID         string   `json:"owner_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	Sports          []string `json:"sports"`
	Amenities       []string `json:"amenities"`
	Image           string   `json:"image"`
	Status          string   `json:"status"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(model model.Venue) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Description = model.Description
	r.Address = model.Address
	r.City = model.City
	r.Sports = nonNil(model.Sports)
	r.Amenities = nonNil(model.Amenities)
	r.Image = model.Image
	r.Status = model.Status
	r.RejectionReason = model.RejectionReason
	r.Metadata.FromModel(model.Metadata)
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
