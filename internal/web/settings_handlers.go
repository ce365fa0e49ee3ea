// ABOUTME: Settings API handlers: read, single-field write-through and reset
// ABOUTME: Every response carries the full settings plus the values to apply

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2389/showcase/internal/settings"
)

// settingsResponse is what the page needs to restyle itself.
type settingsResponse struct {
	Settings     settings.StyleSettings `json:"settings"`
	CSSVariables map[string]string      `json:"cssVariables"`
	BodyClass    string                 `json:"bodyClass"`
	Notice       string                 `json:"notice,omitempty"`
}

func newSettingsResponse(st settings.StyleSettings, notice string) settingsResponse {
	return settingsResponse{
		Settings:     st,
		CSSVariables: st.CSSVariables(),
		BodyClass:    st.BodyClass(),
		Notice:       notice,
	}
}

// setSettingRequest accepts the new value as a JSON string or number.
type setSettingRequest struct {
	Value json.RawMessage `json:"value"`
}

func (req setSettingRequest) text() (string, error) {
	raw := strings.TrimSpace(string(req.Value))
	if raw == "" || raw == "null" {
		return "", errors.New("value is required")
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(req.Value, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return raw, nil
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	store := settings.New(s.kv, s.profileID(w, r))
	s.sendJSON(w, http.StatusOK, newSettingsResponse(store.Load(r.Context()), ""))
}

func (s *Server) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	field := r.PathValue("field")

	var req setSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	value, err := req.text()
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	store := settings.New(s.kv, s.profileID(w, r))
	updated, err := store.Set(r.Context(), field, value)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidValue) {
			s.sendJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to save setting", "field", field, "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	s.sendJSON(w, http.StatusOK, newSettingsResponse(updated, settings.Notice(field, updated)))
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	store := settings.New(s.kv, s.profileID(w, r))
	defaults, err := store.Reset(r.Context())
	if err != nil {
		s.logger.Error("failed to reset settings", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "Failed to reset settings")
		return
	}
	s.sendJSON(w, http.StatusOK, newSettingsResponse(defaults, settings.ResetNotice))
}
