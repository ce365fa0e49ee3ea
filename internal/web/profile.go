package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// ProfileCookieName identifies a browser's settings namespace
	ProfileCookieName = "showcase_profile"

	// profileCookieMaxAge keeps preferences for a year of inactivity
	profileCookieMaxAge = 365 * 24 * time.Hour
)

// profileID returns the caller's profile ID, issuing a new one (and setting
// the cookie) when the request has none or carries a malformed value.
func (s *Server) profileID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ProfileCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     ProfileCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(profileCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug("issued profile", "profile", id)
	return id
}
