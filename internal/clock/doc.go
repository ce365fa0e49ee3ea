// Package clock computes the page clock: a localized digital readout and the
// hand angles of an analog face.
//
// Everything is a pure function of the instant passed in, except Widget,
// which owns the digital/analog mode and pushes one Frame to its Sink per
// mode change or refresh, and Ticker, which refreshes a Widget once per
// interval until stopped.
//
// Analog hands move continuously: the minute hand advances with seconds and
// the hour hand with minutes and seconds, so AnalogAngles never snaps.
package clock
