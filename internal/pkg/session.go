package pkg

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	SessionCookieName = "user_session"
	sessionLifetime   = 24 * time.Hour
)

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// SessionFromRequest returns the session id carried by the request cookie, if any.
func SessionFromRequest(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

func NewSessionCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// EnsureSession returns the request's session id, issuing a new cookie when there is none.
func EnsureSession(writer http.ResponseWriter, req *http.Request) string {
	if sessionID, ok := SessionFromRequest(req); ok {
		return sessionID
	}

	sessionID := GenerateNewSessionID()
	http.SetCookie(writer, NewSessionCookie(sessionID))

	return sessionID
}
