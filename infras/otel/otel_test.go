package otel_test

import (
	"context"
	"errors"
	"testing"

	"quickcourt/config"
	"quickcourt/infras/otel"

	"github.com/stretchr/testify/assert"
)

func TestNew_WithoutEndpointIsNoop(t *testing.T) {
	tracer := otel.New(&config.Config{})

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Create")

	assert.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		scope.SetAttribute("court_id", "c-1")
		scope.SetAttributes(map[string]any{"hours": 2, "auto_confirm": true, "sports": []string{"tennis"}})
		scope.AddEvent("booking.created")
		scope.TraceIfError(nil)
		scope.TraceIfError(errors.New("overlap"))
		scope.End()
	})
	assert.NoError(t, tracer.Shutdown(context.Background()))
}
