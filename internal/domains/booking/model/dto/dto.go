package dto

import (
	"time"

	"quickcourt/internal/domains/booking/model"
	"quickcourt/shared"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	gModel "quickcourt/shared/model"
	"quickcourt/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CourtID   string `json:"court_id"   validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time"   validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Range parses the requested start and end instants.
func (c *CreateBookingRequest) Range() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return start, end, err
	}

	end, err = time.Parse(constant.DateFormat, c.EndTime)

	return start, end, err
}

func (c *CreateBookingRequest) ToModel(user, venueID, status string, start, end time.Time, price model.Price) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:         uuid.NewString(),
		UserID:     user,
		CourtID:    c.CourtID,
		VenueID:    venueID,
		StartTime:  start,
		EndTime:    end,
		Hours:      price.Hours,
		HourlyRate: price.HourlyRate,
		Subtotal:   price.Subtotal,
		ServiceFee: price.ServiceFee,
		Tax:        price.Tax,
		TotalPrice: price.Total,
		Status:     status,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	CourtID      string  `json:"court_id"`
	VenueID      string  `json:"venue_id"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Hours        int     `json:"hours"`
	HourlyRate   int64   `json:"hourly_rate"`
	Subtotal     int64   `json:"subtotal"`
	ServiceFee   int64   `json:"service_fee"`
	Tax          int64   `json:"tax"`
	TotalPrice   int64   `json:"total_price"`
	Status       string  `json:"status"`
	CancelledAt  *string `json:"cancelled_at,omitempty"`
	CancelReason string  `json:"cancel_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.CourtID = model.CourtID
	r.VenueID = model.VenueID
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.Hours = model.Hours
	r.HourlyRate = model.HourlyRate
	r.Subtotal = model.Subtotal
	r.ServiceFee = model.ServiceFee
	r.Tax = model.Tax
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.CancelReason = model.CancelReason
	r.CancelledAt = nil

	if model.CancelledAt != nil {
		cancelledAt := timezone.Format(*model.CancelledAt, constant.DateFormat)
		r.CancelledAt = &cancelledAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
