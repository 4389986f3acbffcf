package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubStartsEmpty(t *testing.T) {
	hub := NewHub()

	assert.Equal(t, 0, hub.ClientCount())

	// Broadcasting with no subscribers is a no-op
	hub.Emit("crisis:escalated", map[string]interface{}{"userId": "user-1"})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubEmitUnmarshalablePayload(t *testing.T) {
	hub := NewHub()

	// Marshal failures are swallowed, never panicked
	assert.NotPanics(t, func() {
		hub.Emit("crisis:escalated", map[string]interface{}{"bad": func() {}})
	})
}
