// ABOUTME: Clock API handlers: current frame, mode selection and the live SSE stream
// ABOUTME: Each profile has its own widget, so the chosen mode follows the browser

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/2389/showcase/internal/clock"
)

// sseKeepAlive is how often a comment line is sent while no frame arrives.
const sseKeepAlive = 15 * time.Second

type setModeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleGetClock(w http.ResponseWriter, r *http.Request) {
	widget := s.clocks.widget(s.profileID(w, r))
	widget.SetLocale(s.localeFor(r))
	s.sendJSON(w, http.StatusOK, widget.Frame())
}

func (s *Server) handleSetClockMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	mode, err := clock.ParseMode(req.Mode)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	widget := s.clocks.widget(s.profileID(w, r))
	widget.SetLocale(s.localeFor(r))
	frame, err := widget.SetMode(mode)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.sendJSON(w, http.StatusOK, frame)
}

// handleClockStream streams one "frame" event per tick until the client
// disconnects or the server shuts down. The current frame is sent first so
// the page never waits a full interval for its first paint.
func (s *Server) handleClockStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	profileID := s.profileID(w, r)
	s.clocks.widget(profileID).SetLocale(s.localeFor(r))

	frames, release := s.clocks.subscribe(r.Context(), profileID)
	defer release()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	if err := writeSSEEvent(w, "frame", s.clocks.widget(profileID).Frame()); err != nil {
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(sseKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case fr, ok := <-frames:
			if !ok {
				return
			}
			if err := writeSSEEvent(w, "frame", fr); err != nil {
				s.logger.Debug("stream write failed", "profile", profileID, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

// writeSSEEvent writes a single named server-sent event with a JSON payload.
func writeSSEEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return nil
}
