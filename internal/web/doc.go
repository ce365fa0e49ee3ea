// Package web serves the showcase page and its JSON API.
//
// Each browser gets a profile ID in the showcase_profile cookie. The profile
// selects a settings namespace in the key-value store and owns one clock
// widget, so style choices and the clock mode follow the browser.
//
// Routes:
//
//	GET  /                        page with settings applied
//	GET  /help                    markdown help topics
//	GET  /health                  liveness
//	GET  /api/settings            effective settings
//	PUT  /api/settings/{field}    change one setting
//	POST /api/settings/reset      restore defaults
//	GET  /api/clock               current clock frame
//	POST /api/clock/mode          switch digital/analog
//	GET  /api/clock/stream        one SSE frame per tick
//	GET  /api/calendar            month grid
//	POST /api/mood                mood tracker reply
package web
