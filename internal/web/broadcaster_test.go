// ABOUTME: Tests for the clock frame fan-out
// ABOUTME: Covers delivery, isolation between profiles, unsubscribe and close

package web

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/showcase/internal/clock"
)

func TestFrameBroadcaster_SubscribersReceiveFrame(t *testing.T) {
	b := newFrameBroadcaster(nil)
	defer b.Close()

	ch1, _ := b.Subscribe(t.Context(), "p1")
	ch2, _ := b.Subscribe(t.Context(), "p1")

	b.Publish("p1", clock.Frame{Mode: clock.ModeAnalog})

	for i, ch := range []<-chan clock.Frame{ch1, ch2} {
		select {
		case fr := <-ch:
			assert.Equal(t, clock.ModeAnalog, fr.Mode, "subscriber %d", i)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d timed out", i)
		}
	}
}

func TestFrameBroadcaster_ProfilesAreIsolated(t *testing.T) {
	b := newFrameBroadcaster(nil)
	defer b.Close()

	ch1, _ := b.Subscribe(t.Context(), "p1")
	ch2, _ := b.Subscribe(t.Context(), "p2")

	b.Publish("p1", clock.Frame{Mode: clock.ModeDigital})

	select {
	case <-ch1:
	case <-time.After(time.Second):
		t.Fatal("p1 subscriber timed out")
	}
	select {
	case fr := <-ch2:
		t.Fatalf("p2 received a frame for p1: %+v", fr)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFrameBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := newFrameBroadcaster(nil)
	defer b.Close()

	ch, subID := b.Subscribe(t.Context(), "p1")
	require.Equal(t, 1, b.Subscribers("p1"))

	b.Unsubscribe("p1", subID)
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, b.Subscribers("p1"))

	// Second unsubscribe is a no-op.
	b.Unsubscribe("p1", subID)
}

func TestFrameBroadcaster_ContextCancelUnsubscribes(t *testing.T) {
	b := newFrameBroadcaster(nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(t.Context())
	ch, _ := b.Subscribe(ctx, "p1")
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
	assert.Eventually(t, func() bool { return b.Subscribers("p1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestFrameBroadcaster_SlowSubscriberDropsFrames(t *testing.T) {
	b := newFrameBroadcaster(nil)
	defer b.Close()

	ch, _ := b.Subscribe(t.Context(), "p1")
	for range subscriberBufferSize + 10 {
		b.Publish("p1", clock.Frame{})
	}
	assert.Len(t, ch, subscriberBufferSize)
}

func TestFrameBroadcaster_CloseClosesAll(t *testing.T) {
	b := newFrameBroadcaster(nil)

	ch1, _ := b.Subscribe(t.Context(), "p1")
	ch2, _ := b.Subscribe(t.Context(), "p2")
	b.Close()

	_, ok1 := <-ch1
	_, ok2 := <-ch2
	assert.False(t, ok1)
	assert.False(t, ok2)

	// Publishing after close must not panic.
	b.Publish("p1", clock.Frame{})
}
