package services

import (
	"testing"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventHub(t *testing.T) {
	t.Parallel()

	hub := NewEventHub()
	a := &EventClient{ID: "a", AdminID: 1, Channel: make(chan domain.Event, 1)}
	b := &EventClient{ID: "b", AdminID: 2, Channel: make(chan domain.Event, 4)}
	hub.Register(a)
	hub.Register(b)
	require.Equal(t, 2, hub.ClientCount())

	hub.Broadcast(domain.NewRefreshEvent(domain.ResourceUsers, ActionUserApprove, 5))
	// a's buffer is full, the second broadcast is dropped for it only
	hub.Broadcast(domain.NewRefreshEvent(domain.ResourceOrders, ActionOrderComplete, 6))

	assert.Len(t, a.Channel, 1)
	assert.Len(t, b.Channel, 2)

	assert.True(t, hub.Send("b", domain.Event{Event: domain.EventConnected}))
	assert.False(t, hub.Send("a", domain.Event{Event: domain.EventConnected}))
	assert.False(t, hub.Send("missing", domain.Event{Event: domain.EventConnected}))

	hub.Unregister("a")
	hub.Unregister("a")
	assert.Equal(t, 1, hub.ClientCount())

	first := <-a.Channel
	assert.Equal(t, domain.EventRefresh, first.Event)
	_, open := <-a.Channel
	assert.False(t, open)
}
