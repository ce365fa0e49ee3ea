package web

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2389/showcase/internal/clock"
	"github.com/2389/showcase/internal/idlecache"
)

func newTestHub(interval time.Duration) *clockHub {
	now := func() time.Time { return time.Date(2024, time.February, 15, 14, 4, 5, 0, time.UTC) }
	return newClockHub(clock.EnUS, now, interval, slog.Default())
}

func TestClockHub_WidgetPerProfile(t *testing.T) {
	h := newTestHub(time.Second)
	defer h.Close()

	w1 := h.widget("p1")
	assert.Same(t, w1, h.widget("p1"))
	assert.NotSame(t, w1, h.widget("p2"))

	_, err := w1.SetMode(clock.ModeAnalog)
	require.NoError(t, err)
	assert.Equal(t, clock.ModeAnalog, h.widget("p1").Mode())
	assert.Equal(t, clock.ModeDigital, h.widget("p2").Mode())
}

func TestClockHub_TickerRunsWhileStreamsOpen(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newTestHub(10 * time.Millisecond)
	defer h.Close()

	frames1, release1 := h.subscribe(ctx, "p1")
	_, release2 := h.subscribe(ctx, "p1")
	require.True(t, h.session("p1").ticker.Running())

	select {
	case fr := <-frames1:
		assert.Equal(t, clock.ModeDigital, fr.Mode)
		assert.Equal(t, "02:04:05 PM", fr.Time)
	case <-time.After(time.Second):
		t.Fatal("no tick frame")
	}

	release1()
	release1()
	assert.True(t, h.session("p1").ticker.Running(), "second stream still open")

	release2()
	assert.False(t, h.session("p1").ticker.Running())
}

func TestClockHub_ModeChangeReachesStream(t *testing.T) {
	h := newTestHub(time.Hour)
	defer h.Close()

	frames, release := h.subscribe(t.Context(), "p1")
	defer release()

	_, err := h.widget("p1").SetMode(clock.ModeAnalog)
	require.NoError(t, err)

	select {
	case fr := <-frames:
		assert.Equal(t, clock.ModeAnalog, fr.Mode)
		require.NotNil(t, fr.Angles)
		assert.Empty(t, fr.Time)
	case <-time.After(time.Second):
		t.Fatal("mode change not streamed")
	}
}

func TestClockHub_CloseStopsTickers(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newTestHub(10 * time.Millisecond)
	frames, release := h.subscribe(ctx, "p1")
	s := h.session("p1")
	require.True(t, s.ticker.Running())

	h.Close()
	assert.False(t, s.ticker.Running())

	for range frames {
	}
	release()
}

func TestClockHub_StreamingSessionIsBusy(t *testing.T) {
	h := newTestHub(time.Hour)
	defer h.Close()

	_, release := h.subscribe(t.Context(), "p1")
	s := h.session("p1")
	assert.Equal(t, int32(1), s.streams.Load())

	release()
	assert.Equal(t, int32(0), s.streams.Load())
	assert.Same(t, s, h.session("p1"), "session outlives its streams until it idles out")
}

func TestClockHub_SubscribeKeepsIdleSession(t *testing.T) {
	var mu sync.Mutex
	cacheNow := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		cacheNow = cacheNow.Add(d)
	}
	now := func() time.Time { return time.Date(2024, time.February, 15, 14, 4, 5, 0, time.UTC) }
	h := newClockHub(clock.EnUS, now, time.Hour, slog.Default(),
		idlecache.WithClock[*clockSession](func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return cacheNow
		}),
	)
	defer h.Close()

	w := h.widget("p1")
	_, err := w.SetMode(clock.ModeAnalog)
	require.NoError(t, err)
	advance(2 * sessionIdleTTL)

	_, release := h.subscribe(t.Context(), "p1")
	defer release()

	advance(2 * sessionIdleTTL)
	assert.Zero(t, h.sessions.Sweep(), "a streaming session is never swept")
	assert.Same(t, w, h.widget("p1"))
	assert.Equal(t, clock.ModeAnalog, h.widget("p1").Mode())
	assert.True(t, h.session("p1").ticker.Running())
}
