// ABOUTME: Per-profile clock widgets and their refresh tickers
// ABOUTME: A profile's ticker runs only while at least one page stream is open

package web

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2389/showcase/internal/clock"
	"github.com/2389/showcase/internal/idlecache"
)

const (
	// sessionIdleTTL is how long a profile's clock mode is remembered without
	// any request or open stream.
	sessionIdleTTL = 24 * time.Hour

	// maxSessions bounds the number of remembered profiles.
	maxSessions = 10000
)

type clockSession struct {
	widget  *clock.Widget
	ticker  *clock.Ticker
	streams atomic.Int32
}

// clockHub owns one clock.Widget per profile so the chosen mode survives
// across requests. Sessions without open streams expire after sessionIdleTTL.
type clockHub struct {
	mu       sync.Mutex // serializes ticker start/stop against stream counts
	sessions *idlecache.Cache[*clockSession]
	frames   *frameBroadcaster
	locale   clock.Locale
	now      func() time.Time
	interval time.Duration
	logger   *slog.Logger
}

func newClockHub(locale clock.Locale, now func() time.Time, interval time.Duration, logger *slog.Logger, opts ...idlecache.Option[*clockSession]) *clockHub {
	h := &clockHub{
		frames:   newFrameBroadcaster(logger),
		locale:   locale,
		now:      now,
		interval: interval,
		logger:   logger.With("component", "clocks"),
	}
	opts = append([]idlecache.Option[*clockSession]{
		idlecache.WithBusy(func(s *clockSession) bool { return s.streams.Load() > 0 }),
		idlecache.WithOnEvict(func(profileID string, s *clockSession) {
			s.ticker.Stop()
			h.logger.Debug("clock session expired", "profile", profileID)
		}),
	}, opts...)
	h.sessions = idlecache.New(sessionIdleTTL, maxSessions, 0, opts...)
	return h
}

// widget returns the profile's widget, creating it in digital mode on first use.
func (h *clockHub) widget(profileID string) *clock.Widget {
	return h.session(profileID).widget
}

func (h *clockHub) session(profileID string) *clockSession {
	return h.sessions.GetOrCreate(profileID, h.newSession(profileID))
}

func (h *clockHub) newSession(profileID string) func() *clockSession {
	return func() *clockSession {
		sink := clock.SinkFunc(func(fr clock.Frame) {
			h.frames.Publish(profileID, fr)
		})
		w := clock.NewWidget(sink, clock.WithClock(h.now), clock.WithLocale(h.locale))
		return &clockSession{
			widget: w,
			ticker: clock.NewTicker(w, h.interval),
		}
	}
}

// subscribe attaches a stream to the profile's frames and starts its ticker
// if this is the first stream. The returned release func must be called
// when the stream ends.
func (h *clockHub) subscribe(ctx context.Context, profileID string) (<-chan clock.Frame, func()) {
	h.mu.Lock()
	// The stream is counted while the cache lock is held, so a sweep can
	// never see the session idle between lookup and subscription.
	var first bool
	s := h.sessions.Acquire(profileID, h.newSession(profileID), func(s *clockSession) {
		first = s.streams.Add(1) == 1
	})
	frames, subID := h.frames.Subscribe(ctx, profileID)
	if first {
		s.ticker.Start(context.Background())
		h.logger.Debug("clock ticker started", "profile", profileID)
	}
	h.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			h.frames.Unsubscribe(profileID, subID)

			h.mu.Lock()
			defer h.mu.Unlock()
			if s.streams.Add(-1) == 0 {
				s.ticker.Stop()
				h.logger.Debug("clock ticker stopped", "profile", profileID)
			}
		})
	}
	return frames, release
}

// Close stops every ticker and closes all streams.
func (h *clockHub) Close() {
	h.sessions.Close()
	h.sessions.Purge()
	h.frames.Close()
}
