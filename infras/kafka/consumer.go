package kafka

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	consumerRetryDelay    = time.Second
	consumerMaxRetryDelay = 30 * time.Second
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

// consumer feeds one topic to a handler. A message is retried until the
// handler accepts it and only then committed, so the group offset never moves
// past an unhandled message.
type consumer struct {
	reader     messageReader
	topic      string
	handler    Handler
	newBackOff func() backoff.BackOff
}

func newConsumer(reader messageReader, topic string, handler Handler) *consumer {
	return &consumer{
		reader:     reader,
		topic:      topic,
		handler:    handler,
		newBackOff: handlerBackOff,
	}
}

func handlerBackOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = consumerRetryDelay
	policy.MaxInterval = consumerMaxRetryDelay

	return policy
}

func (c *consumer) run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", c.topic).Msg("Consumer context done.")

				return nil
			}

			log.Error().Err(err).Str("topic", c.topic).Msg("Failed to read message from Kafka.")

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(consumerRetryDelay):
			}

			continue
		}

		log.Debug().Str("topic", c.topic).Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("Received message from Kafka.")

		if err := c.handle(ctx, msg); err != nil {
			log.Info().Str("topic", c.topic).Int64("offset", msg.Offset).Msg("Consumer stopped before the message was handled.")

			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", c.topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka message.")
		}
	}
}

// handle returns nil once the handler accepts msg, or the context error when
// ctx ends first.
func (c *consumer) handle(ctx context.Context, msg kafkaGo.Message) error {
	_, err := backoff.Retry(ctx,
		func() (struct{}, error) {
			return struct{}{}, c.handler(ctx, msg)
		},
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Error().Err(err).
				Str("topic", c.topic).
				Int64("offset", msg.Offset).
				Dur("retry_in", next).
				Msg("Failed to handle Kafka message.")
		}),
	)

	return err //nolint:wrapcheck
}
