package notification

import (
	"context"
	"fmt"

	"quickcourt/infras/kafka"
	"quickcourt/infras/otel"
	"quickcourt/internal/domains/booking/model"
	userModel "quickcourt/internal/domains/user/model"
	userRepo "quickcourt/internal/domains/user/repository"
	"quickcourt/shared"
	"quickcourt/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

var subjects = map[string]string{
	model.EventCreated:   "Your booking request was received",
	model.EventConfirmed: "Your booking is confirmed",
	model.EventCancelled: "Your booking was cancelled",
	model.EventCompleted: "Thanks for playing",
}

type Handler struct {
	userRepo userRepo.User
	otel     otel.Otel
}

func New(userRepo userRepo.User, otel otel.Otel) Handler {
	return Handler{
		userRepo: userRepo,
		otel:     otel,
	}
}

// HandleBookingEvent notifies the booking's user about a status change.
// Undecodable and unknown events are dropped; a failed recipient lookup is retried.
func (handler *Handler) HandleBookingEvent(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleBookingEvent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, decodeErr := kafka.Decode[model.Event](message)
	if decodeErr != nil {
		log.Error().Err(decodeErr).Str("key", string(message.Key)).Msg("dropping malformed booking event")

		return nil
	}

	subject, ok := subjects[event.Type]
	if !ok {
		log.Warn().Str("type", event.Type).Str("booking", event.BookingID).Msg("dropping unknown booking event")

		return nil
	}

	scope.SetAttributes(map[string]any{
		"event.type":    event.Type,
		"event.booking": event.BookingID,
	})

	user, err := handler.userRepo.Get(ctx, shared.FilterByID(event.UserID, userModel.FieldID, userModel.TableName),
		userModel.FieldID, userModel.FieldEmail, userModel.FieldFullName)
	if err != nil {
		return fmt.Errorf("failed to get booking user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("user", event.UserID).Str("booking", event.BookingID).Msg("booking user no longer exists")

		return nil
	}

	log.Info().
		Str("to", user.Email).
		Str("name", user.FullName).
		Str("subject", subject).
		Str("booking", event.BookingID).
		Str("status", event.Status).
		Time("start_time", event.StartTime).
		Int64("total_price", event.TotalPrice).
		Str("reason", event.Reason).
		Msg("booking notification")

	return nil
}
