package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathernow.app/internal/mocks"
	"weathernow.app/internal/ports"
)

func added(city string) ports.LocationEvent {
	return ports.LocationEvent{Type: ports.LocationAdded, Location: ports.LocationData{ID: city, CityName: city}}
}

func receive(t *testing.T, ch <-chan ports.LocationEvent) ports.LocationEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "channel closed")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ports.LocationEvent{}
	}
}

func TestBus_PublishDeliversInOrderToAllSubscribers(t *testing.T) {
	bus := NewBus(mocks.NewLogger(t).Permissive(), 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := bus.Subscribe(ctx)
	second := bus.Subscribe(ctx)

	bus.Publish(ctx, added("Berlin"))
	bus.Publish(ctx, added("Paris"))

	for _, ch := range []<-chan ports.LocationEvent{first, second} {
		assert.Equal(t, "Berlin", receive(t, ch).Location.CityName)
		assert.Equal(t, "Paris", receive(t, ch).Location.CityName)
	}
}

func TestBus_SubscriberOnlySeesLaterEvents(t *testing.T) {
	bus := NewBus(mocks.NewLogger(t).Permissive(), 4)
	ctx := context.Background()

	bus.Publish(ctx, added("Berlin"))
	ch := bus.Subscribe(ctx)
	bus.Publish(ctx, added("Paris"))

	assert.Equal(t, "Paris", receive(t, ch).Location.CityName)
}

func TestBus_CancelClosesSubscription(t *testing.T) {
	bus := NewBus(mocks.NewLogger(t).Permissive(), 1)
	ctx, cancel := context.WithCancel(context.Background())

	ch := bus.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	// publishing after the subscriber left must not block
	bus.Publish(context.Background(), added("Rome"))
}

func TestBus_PublishNeverWaitsForLaggingSubscriber(t *testing.T) {
	bus := NewBus(mocks.NewLogger(t).Permissive(), 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stalled := bus.Subscribe(ctx)
	reader := bus.Subscribe(ctx)

	cities := []string{"Berlin", "Paris", "Rome", "Oslo", "Lima"}
	var got []string
	published := make(chan struct{})
	go func() {
		defer close(published)
		for _, city := range cities {
			bus.Publish(context.Background(), added(city))
			select {
			case event := <-reader:
				got = append(got, event.Location.CityName)
			case <-time.After(time.Second):
				return
			}
		}
	}()

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a subscriber that never reads")
	}
	assert.Equal(t, cities, got)

	assert.Equal(t, "Berlin", receive(t, stalled).Location.CityName)
	assert.Equal(t, "Paris", receive(t, stalled).Location.CityName)
	_, ok := <-stalled
	assert.False(t, ok, "lagging subscriber should be closed")
}

func TestBus_CloseWithStalledSubscriber(t *testing.T) {
	bus := NewBus(mocks.NewLogger(t).Permissive(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus.Subscribe(ctx)
	for i := 0; i < 5; i++ {
		bus.Publish(ctx, added("Berlin"))
	}

	closed := make(chan struct{})
	go func() {
		bus.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close blocked")
	}
}

func TestBus_Close(t *testing.T) {
	bus := NewBus(mocks.NewLogger(t).Permissive(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := bus.Subscribe(ctx)
	bus.Close()

	_, ok := <-ch
	assert.False(t, ok)

	late := bus.Subscribe(ctx)
	_, ok = <-late
	assert.False(t, ok)

	bus.Publish(ctx, added("Oslo"))
	bus.Close()
}
