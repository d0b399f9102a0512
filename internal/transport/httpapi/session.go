package httpapi

import (
	"net/http"

	"github.com/oklog/ulid/v2"
)

const sessionCookie = "session_id"

// sessionID returns the caller's session id, minting one and setting the
// cookie on first contact.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := ulid.Make().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
