package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyThatSession(t *testing.T) {
	h := NewHub()
	a, cleanupA := h.Subscribe("a")
	defer cleanupA()
	b, cleanupB := h.Subscribe("b")
	defer cleanupB()

	h.Publish("a", Event{SessionID: "a", Event: "attendance.changed", Data: 1})

	select {
	case ev := <-a:
		assert.Equal(t, "attendance.changed", ev.Event)
	default:
		t.Fatal("subscriber a got nothing")
	}
	select {
	case <-b:
		t.Fatal("subscriber b got an event for a")
	default:
	}
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	h := NewHub()
	_, cleanup := h.Subscribe("a")
	defer cleanup()

	for i := 0; i < 50; i++ {
		h.Publish("a", Event{Event: "x"})
	}
	assert.Equal(t, 1, h.SubscriberCount("a"))
}

func TestHub_DisconnectThenCleanup(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("a")
	_, cleanup2 := h.Subscribe("a")
	require.Equal(t, 2, h.TotalSubscribers())

	h.Disconnect("a")
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.SubscriberCount("a"))

	// cleanup after Disconnect must not close twice
	assert.NotPanics(t, cleanup)
	assert.NotPanics(t, cleanup2)
}
