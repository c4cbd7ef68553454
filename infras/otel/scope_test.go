package otel_test

import (
	"context"
	"errors"
	"testing"

	"quickcourt/infras/otel"
	"quickcourt/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordScope(t *testing.T, use func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)
	use(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_TraceError(t *testing.T) {
	t.Run("server fault fails the span", func(t *testing.T) {
		span := recordScope(t, func(scope otel.Scope) {
			scope.TraceError(errors.New("connection reset"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
	})

	t.Run("client failure is only an event", func(t *testing.T) {
		span := recordScope(t, func(scope otel.Scope) {
			scope.TraceError(failure.Conflict("slot already booked"))
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		require.Len(t, span.Events(), 1)
		assert.Equal(t, "failure", span.Events()[0].Name)
	})
}

func TestScope_SetAttributes(t *testing.T) {
	span := recordScope(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.hours":  2,
			"booking.status": "pending",
			"venue.sports":   []string{"tennis", "padel"},
		})
	})

	attributes := map[string]string{}
	for _, kv := range span.Attributes() {
		attributes[string(kv.Key)] = kv.Value.Emit()
	}

	assert.Equal(t, "2", attributes["booking.hours"])
	assert.Equal(t, "pending", attributes["booking.status"])
	assert.Contains(t, attributes, "venue.sports")
}
