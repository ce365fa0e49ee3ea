// ABOUTME: In-memory fan-out of clock frames to live page streams
// ABOUTME: Publishes each rendered frame to every subscriber of a profile

package web

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/2389/showcase/internal/clock"
)

const (
	// subscriberBufferSize is the channel buffer for each subscriber.
	// At one frame per second this absorbs about a minute of stalls.
	subscriberBufferSize = 64
)

// frameBroadcaster provides in-memory pub/sub for clock frames. Subscribers
// register for a profile ID and receive every frame its widget renders.
type frameBroadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]chan clock.Frame // profileID -> subID -> ch
	logger      *slog.Logger
}

// newFrameBroadcaster creates a broadcaster. Pass nil logger for default.
func newFrameBroadcaster(logger *slog.Logger) *frameBroadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &frameBroadcaster{
		subscribers: make(map[string]map[string]chan clock.Frame),
		logger:      logger.With("component", "broadcaster"),
	}
}

// Subscribe registers a subscriber for frames of the given profile.
// Returns a channel that receives frames and a subscription ID for later
// unsubscription. The subscription is automatically cleaned up when ctx is
// cancelled.
func (b *frameBroadcaster) Subscribe(ctx context.Context, profileID string) (<-chan clock.Frame, string) {
	subID := uuid.New().String()
	ch := make(chan clock.Frame, subscriberBufferSize)

	b.mu.Lock()
	if _, ok := b.subscribers[profileID]; !ok {
		b.subscribers[profileID] = make(map[string]chan clock.Frame)
	}
	b.subscribers[profileID][subID] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "profile", profileID, "sub_id", subID)

	go func() {
		<-ctx.Done()
		b.Unsubscribe(profileID, subID)
	}()

	return ch, subID
}

// Publish sends a frame to all subscribers of the given profile.
// Non-blocking: frames are dropped for subscribers whose channels are full.
func (b *frameBroadcaster) Publish(profileID string, fr clock.Frame) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// Sends happen under the read lock so Unsubscribe cannot close a channel mid-send.
	for subID, ch := range b.subscribers[profileID] {
		select {
		case ch <- fr:
		default:
			b.logger.Debug("dropped frame for slow subscriber", "profile", profileID, "sub_id", subID)
		}
	}
}

// Subscribers returns the number of live subscriptions for a profile.
func (b *frameBroadcaster) Subscribers(profileID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[profileID])
}

// Unsubscribe removes a subscription and closes its channel.
func (b *frameBroadcaster) Unsubscribe(profileID, subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subscribers[profileID]
	if !ok {
		return
	}

	ch, exists := subs[subID]
	if !exists {
		return
	}

	delete(subs, subID)
	close(ch)

	if len(subs) == 0 {
		delete(b.subscribers, profileID)
	}

	b.logger.Debug("subscriber removed", "profile", profileID, "sub_id", subID)
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (b *frameBroadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for profileID, subs := range b.subscribers {
		for subID, ch := range subs {
			close(ch)
			delete(subs, subID)
		}
		delete(b.subscribers, profileID)
	}

	b.logger.Debug("broadcaster closed")
}
