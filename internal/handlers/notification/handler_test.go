package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quickcourt/infras/otel/mocks"
	"quickcourt/internal/domains/booking/model"
	userMocks "quickcourt/internal/domains/user/mocks"
	userModel "quickcourt/internal/domains/user/model"
	"quickcourt/internal/handlers/notification"
)

func eventMessage(t *testing.T, event model.Event) kafkaGo.Message {
	t.Helper()

	value, err := json.Marshal(event)
	require.NoError(t, err)

	return kafkaGo.Message{Key: []byte(event.BookingID), Value: value}
}

func TestHandleBookingEvent(t *testing.T) {
	event := model.Event{
		Type:       model.EventConfirmed,
		BookingID:  "booking-1",
		UserID:     "user-1",
		Status:     model.StatusConfirmed,
		StartTime:  time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
		TotalPrice: 105000,
	}

	t.Run("notifies the booking user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMocks.NewMockUser(ctrl)
		handler := notification.New(users, mocks.NewOtel())

		users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-1", Email: "player@example.com", FullName: "Player"}, nil)

		require.NoError(t, handler.HandleBookingEvent(context.Background(), eventMessage(t, event)))
	})

	t.Run("retries when the user lookup fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMocks.NewMockUser(ctrl)
		handler := notification.New(users, mocks.NewOtel())

		users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{}, errors.New("connection refused"))

		assert.Error(t, handler.HandleBookingEvent(context.Background(), eventMessage(t, event)))
	})

	t.Run("skips deleted users", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMocks.NewMockUser(ctrl)
		handler := notification.New(users, mocks.NewOtel())

		users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		assert.NoError(t, handler.HandleBookingEvent(context.Background(), eventMessage(t, event)))
	})

	t.Run("drops malformed and unknown events", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMocks.NewMockUser(ctrl)
		handler := notification.New(users, mocks.NewOtel())

		assert.NoError(t, handler.HandleBookingEvent(context.Background(), kafkaGo.Message{Value: []byte("{")}))

		unknown := event
		unknown.Type = "booking.teleported"
		assert.NoError(t, handler.HandleBookingEvent(context.Background(), eventMessage(t, unknown)))
	})
}
