// ABOUTME: Tests for the clock widget state machine
// ABOUTME: Verifies initial mode, one render per transition and frame contents

package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink keeps every frame it receives.
type recordingSink struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *recordingSink) Render(fr Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, fr)
}

func (r *recordingSink) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestWidget_StartsDigitalWithoutRendering(t *testing.T) {
	sink := &recordingSink{}
	w := NewWidget(sink)

	assert.Equal(t, ModeDigital, w.Mode())
	assert.Empty(t, sink.Frames())
}

func TestWidget_SetModeRendersExactlyOnce(t *testing.T) {
	sink := &recordingSink{}
	w := NewWidget(sink, WithClock(fixedClock(at(3, 0, 0))))

	fr, err := w.SetMode(ModeAnalog)
	require.NoError(t, err)

	frames := sink.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, fr, frames[0])
	assert.Equal(t, ModeAnalog, frames[0].Mode)
	require.NotNil(t, frames[0].Angles)
	assert.Empty(t, frames[0].Time)
	assert.Equal(t, "Monday, October 19, 2026", frames[0].Date)

	_, err = w.SetMode(ModeDigital)
	require.NoError(t, err)

	frames = sink.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, ModeDigital, frames[1].Mode)
	assert.Nil(t, frames[1].Angles)
	assert.Equal(t, "03:00:00 AM", frames[1].Time)
}

func TestWidget_SetSameModeStillRenders(t *testing.T) {
	sink := &recordingSink{}
	w := NewWidget(sink)

	_, err := w.SetMode(ModeDigital)
	require.NoError(t, err)
	assert.Len(t, sink.Frames(), 1)
}

func TestWidget_UnknownModeRejected(t *testing.T) {
	sink := &recordingSink{}
	w := NewWidget(sink)

	_, err := w.SetMode("binary")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, ModeDigital, w.Mode())
	assert.Empty(t, sink.Frames())
}

func TestWidget_FrameDoesNotRender(t *testing.T) {
	sink := &recordingSink{}
	w := NewWidget(sink, WithClock(fixedClock(at(12, 0, 0))))

	fr := w.Frame()
	assert.Equal(t, "12:00:00 PM", fr.Time)
	assert.Empty(t, sink.Frames())
}

func TestWidget_Locale(t *testing.T) {
	w := NewWidget(nil, WithLocale(EnGB), WithClock(fixedClock(at(18, 30, 0))))
	assert.Equal(t, "18:30:00", w.Frame().Time)

	w.SetLocale(EnUS)
	assert.Equal(t, EnUS.Tag, w.Locale().Tag)
	assert.Equal(t, "06:30:00 PM", w.Frame().Time)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("analog")
	require.NoError(t, err)
	assert.Equal(t, ModeAnalog, m)

	_, err = ParseMode("Analog")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
