// ABOUTME: Clock widget state machine (digital or analog) and its rendered frames
// ABOUTME: Every mode change or refresh pushes exactly one Frame to the sink

package clock

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnknownMode is returned for a mode other than digital or analog.
var ErrUnknownMode = errors.New("unknown clock mode")

// Mode selects which readout the widget shows.
type Mode string

const (
	ModeDigital Mode = "digital"
	ModeAnalog  Mode = "analog"
)

// ParseMode accepts "digital" or "analog".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeDigital, ModeAnalog:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Frame is one computed state of the widget. The date line is always shown;
// Time is set in digital mode and Angles in analog mode.
type Frame struct {
	Mode   Mode      `json:"mode"`
	Date   string    `json:"date"`
	Time   string    `json:"time,omitempty"`
	Angles *Angles   `json:"angles,omitempty"`
	At     time.Time `json:"at"`
}

// Sink receives rendered frames. It is called outside the widget's lock.
type Sink interface {
	Render(Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Frame)

// Render calls f.
func (f SinkFunc) Render(fr Frame) { f(fr) }

// Widget owns the clock mode. The zero mode is never observable: NewWidget
// starts in digital.
type Widget struct {
	mu     sync.Mutex
	mode   Mode
	locale Locale
	now    func() time.Time
	sink   Sink
}

// Option configures a Widget.
type Option func(*Widget)

// WithClock replaces time.Now as the instant source.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) { w.now = now }
}

// WithLocale sets the readout locale (default EnUS).
func WithLocale(loc Locale) Option {
	return func(w *Widget) { w.locale = loc }
}

// NewWidget creates a widget in digital mode. A nil sink discards frames.
func NewWidget(sink Sink, opts ...Option) *Widget {
	if sink == nil {
		sink = SinkFunc(func(Frame) {})
	}
	w := &Widget{
		mode:   ModeDigital,
		locale: EnUS,
		now:    time.Now,
		sink:   sink,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Mode returns the current mode.
func (w *Widget) Mode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// Locale returns the readout locale.
func (w *Widget) Locale() Locale {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.locale
}

// SetLocale changes the readout locale without rendering.
func (w *Widget) SetLocale(loc Locale) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.locale = loc
}

// SetMode switches mode and renders exactly one frame of the new readout.
// Setting the current mode again still renders once.
func (w *Widget) SetMode(m Mode) (Frame, error) {
	if _, err := ParseMode(string(m)); err != nil {
		return Frame{}, err
	}

	w.mu.Lock()
	w.mode = m
	fr := w.frameLocked()
	w.mu.Unlock()

	w.sink.Render(fr)
	return fr, nil
}

// Refresh recomputes the active readout and renders it.
func (w *Widget) Refresh() Frame {
	w.mu.Lock()
	fr := w.frameLocked()
	w.mu.Unlock()

	w.sink.Render(fr)
	return fr
}

// Frame computes the active readout without rendering it.
func (w *Widget) Frame() Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frameLocked()
}

// frameLocked must be called with mu held.
func (w *Widget) frameLocked() Frame {
	now := w.now()
	r := DigitalReadout(now, w.locale)

	fr := Frame{Mode: w.mode, Date: r.Date, At: now}
	switch w.mode {
	case ModeAnalog:
		a := AnalogAngles(now)
		fr.Angles = &a
	default:
		fr.Time = r.Time
	}
	return fr
}
