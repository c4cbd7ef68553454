package kafka_test

import (
	"context"
	"testing"

	"quickcourt/config"
	"quickcourt/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "booking-1",
		Value:   bookingEvent{Type: "booking.created", BookingID: "booking-1"},
		Headers: map[string]string{"event_type": "booking.created"},
	}

	kafkaMsg, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("booking-1"), kafkaMsg.Key)
	assert.JSONEq(t, `{"type":"booking.created","booking_id":"booking-1"}`, string(kafkaMsg.Value))
	assert.Equal(t, "booking.created", kafka.Header(kafkaMsg, "event_type"))
	assert.Empty(t, kafka.Header(kafkaMsg, "missing"))
}

func TestMessage_ToKafkaMessageUnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()

	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	event, err := kafka.Decode[bookingEvent](kafkaGo.Message{Value: []byte(`{"type":"booking.cancelled","booking_id":"b-9"}`)})
	require.NoError(t, err)
	assert.Equal(t, bookingEvent{Type: "booking.cancelled", BookingID: "b-9"}, event)

	_, err = kafka.Decode[bookingEvent](kafkaGo.Message{Value: []byte(`not json`)})
	assert.Error(t, err)
}

func TestNew_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), "quickcourt.booking", kafka.Message{Key: "k", Value: "v"}))
	assert.ErrorIs(t, client.Consume(context.Background(), "", "quickcourt.booking", nil), kafka.ErrDisabled)
	assert.NoError(t, client.Close())
}
