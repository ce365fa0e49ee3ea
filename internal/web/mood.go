package web

import (
	"encoding/json"
	"net/http"
)

// Toast kinds understood by the page script
const (
	KindSuccess = "success"
	KindInfo    = "info"
	KindWarning = "warning"
)

// MoodResponse is the reply shown under the mood picker.
type MoodResponse struct {
	Mood    string `json:"mood"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Notice  string `json:"notice"`
}

// Moods lists the picker's choices in display order.
var Moods = []string{"😄", "🙂", "😐", "😢", "😤"}

// TrackMood maps a picked mood to its reply. Unknown moods get a neutral one.
func TrackMood(mood string) MoodResponse {
	var message, kind string
	switch mood {
	case "😄":
		message, kind = "Great! Keep that energy up.", KindSuccess
	case "🙂":
		message, kind = "A nice, pleasant mood.", KindInfo
	case "😐":
		message, kind = "Feeling neutral today.", KindInfo
	case "😢":
		message, kind = "Sending positive vibes your way.", KindWarning
	case "😤":
		message, kind = "Take a deep breath and relax.", KindWarning
	default:
		message, kind = "Mood selected.", KindInfo
	}
	return MoodResponse{
		Mood:    mood,
		Message: mood + " " + message,
		Kind:    kind,
		Notice:  "Mood logged: " + mood,
	}
}

type moodRequest struct {
	Mood string `json:"mood"`
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Mood == "" {
		s.sendJSONError(w, http.StatusBadRequest, "mood is required")
		return
	}
	s.sendJSON(w, http.StatusOK, TrackMood(req.Mood))
}
