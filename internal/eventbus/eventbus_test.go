package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventSourceFailed, func(e DomainEvent) { got <- e })

	b.Publish(SourceFailedEvent{Source: "apps"})

	select {
	case e := <-got:
		ev, ok := e.(SourceFailedEvent)
		require.True(t, ok)
		assert.Equal(t, "apps", ev.Source)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestSubscribersOnlySeeTheirType(t *testing.T) {
	b := New()
	defer b.Close()

	var wrong atomic.Int32
	b.Subscribe(EventActionExecuted, func(DomainEvent) { wrong.Add(1) })

	got := make(chan struct{}, 1)
	b.Subscribe(EventConfigChanged, func(DomainEvent) { got <- struct{}{} })

	b.Publish(ConfigChangedEvent{Path: "/tmp/config.toml"})

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
	assert.Equal(t, int32(0), wrong.Load())
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	var removed atomic.Int32
	unsubscribe := b.Subscribe(EventError, func(DomainEvent) { removed.Add(1) })

	kept := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { kept <- struct{}{} })

	unsubscribe()
	b.Publish(ErrorEvent{Message: "boom"})

	select {
	case <-kept:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	assert.Equal(t, int32(0), removed.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	b.Subscribe(EventError, func(DomainEvent) { panic("handler bug") })

	got := make(chan struct{}, 2)
	b.Subscribe(EventError, func(DomainEvent) { got <- struct{}{} })

	b.Publish(ErrorEvent{Message: "first"})
	b.Publish(ErrorEvent{Message: "second"})

	for i := 0; i < 2; i++ {
		select {
		case <-got:
		case <-time.After(time.Second):
			t.Fatalf("event %d was not delivered", i)
		}
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()

	var calls atomic.Int32
	b.Subscribe(EventError, func(DomainEvent) { calls.Add(1) })
	b.Close()
	b.Close()

	b.Publish(ErrorEvent{Message: "late"})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
