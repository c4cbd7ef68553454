package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v5"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queueReader struct {
	messages  []kafkaGo.Message
	committed []int64
	drained   context.CancelFunc
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafkaGo.Message, error) {
	if len(r.messages) == 0 {
		r.drained()
		<-ctx.Done()

		return kafkaGo.Message{}, ctx.Err()
	}

	msg := r.messages[0]
	r.messages = r.messages[1:]

	return msg, nil
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	for _, msg := range msgs {
		r.committed = append(r.committed, msg.Offset)
	}

	return nil
}

func newTestConsumer(reader messageReader, handler Handler) *consumer {
	c := newConsumer(reader, "booking-events", handler)
	c.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }

	return c
}

func TestConsumerRetriesFailedMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &queueReader{
		messages: []kafkaGo.Message{{Offset: 5}, {Offset: 6}},
		drained:  cancel,
	}

	var handled []int64

	failures := 2
	handler := func(_ context.Context, msg kafkaGo.Message) error {
		handled = append(handled, msg.Offset)

		if msg.Offset == 5 && failures > 0 {
			failures--

			return errors.New("user lookup failed")
		}

		return nil
	}

	require.NoError(t, newTestConsumer(reader, handler).run(ctx))

	assert.Equal(t, []int64{5, 5, 5, 6}, handled)
	assert.Equal(t, []int64{5, 6}, reader.committed)
}

func TestConsumerStopsWithoutCommitOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &queueReader{
		messages: []kafkaGo.Message{{Offset: 9}, {Offset: 10}},
		drained:  cancel,
	}

	attempts := 0
	handler := func(_ context.Context, _ kafkaGo.Message) error {
		attempts++
		if attempts == 3 {
			cancel()
		}

		return errors.New("database unavailable")
	}

	require.NoError(t, newTestConsumer(reader, handler).run(ctx))

	assert.Equal(t, 3, attempts)
	assert.Empty(t, reader.committed)
	assert.Len(t, reader.messages, 1)
}
