package idempotency_test

import (
	"testing"

	"quickcourt/shared/idempotency"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "quickcourt:idem:booking.create:user-1:abc", idempotency.Key("booking.create", "user-1", " abc "))
	assert.NotEqual(t,
		idempotency.Key("booking.create", "user-1", "abc"),
		idempotency.Key("booking.create", "user-2", "abc"),
	)
}
