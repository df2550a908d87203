package services

import (
	"context"
	"testing"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services/mocks"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEvent(t *testing.T, ch <-chan domain.Event, within time.Duration) domain.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(within):
		t.Fatalf("no event within %s", within)
		return domain.Event{}
	}
}

func TestOrderWatchService_Watch(t *testing.T) {
	sched := scheduler.New()
	sched.Start()
	defer sched.Stop(context.Background())

	fake := mocks.NewAPI()
	fake.SetPendingOrders([]domain.Order{{ID: 1}})

	hub := NewEventHub()
	client := &EventClient{ID: "c1", AdminID: 1, Channel: make(chan domain.Event, 8)}
	hub.Register(client)
	defer hub.Unregister(client.ID)

	svc := NewOrderWatchService(fake, hub, sched, time.Second, time.Second)
	task, err := svc.Watch(testSession(), client.ID)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, 1, sched.Len())

	ev := receiveEvent(t, client.Channel, time.Second)
	require.Equal(t, domain.EventOrdersUpdate, ev.Event)
	initial := ev.Data.(domain.OrdersUpdate)
	assert.Len(t, initial.Orders, 1)
	assert.Empty(t, initial.NewOrderIDs)

	fake.SetPendingOrders([]domain.Order{{ID: 2}, {ID: 1}})

	ev = receiveEvent(t, client.Channel, 3*time.Second)
	require.Equal(t, domain.EventOrdersUpdate, ev.Event)
	update := ev.Data.(domain.OrdersUpdate)
	assert.Len(t, update.Orders, 2)
	assert.Equal(t, []int64{2}, update.NewOrderIDs)

	task.Cancel()
	assert.Equal(t, 0, sched.Len())
}

func TestOrderWatchService_SessionExpired(t *testing.T) {
	t.Parallel()

	fake := mocks.NewAPI()
	fake.ListErr = domain.ErrSessionExpired

	hub := NewEventHub()
	client := &EventClient{ID: "c2", Channel: make(chan domain.Event, 2)}
	hub.Register(client)

	task, err := NewOrderWatchService(fake, hub, scheduler.New(), 0, 0).Watch(testSession(), client.ID)
	require.NoError(t, err)
	assert.Nil(t, task)

	ev := receiveEvent(t, client.Channel, time.Second)
	assert.Equal(t, domain.EventSessionExpired, ev.Event)
}

func TestOrderWatch_Diff(t *testing.T) {
	t.Parallel()

	w := &orderWatch{}

	_, changed := w.diff([]domain.Order{{ID: 1}, {ID: 2}})
	assert.True(t, changed)

	_, changed = w.diff([]domain.Order{{ID: 2}, {ID: 1}})
	assert.False(t, changed)

	update, changed := w.diff([]domain.Order{{ID: 2}})
	assert.True(t, changed)
	assert.Empty(t, update.NewOrderIDs)

	update, changed = w.diff([]domain.Order{{ID: 3}, {ID: 2}})
	assert.True(t, changed)
	assert.Equal(t, []int64{3}, update.NewOrderIDs)
}
