package session

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "tabdash"
	idKey      = "sid"
)

// NewCookieStore returns a signed cookie store carrying only the session id.
func NewCookieStore(secret []byte, maxAge int) *sessions.CookieStore {
	cs := sessions.NewCookieStore(secret)
	cs.MaxAge(maxAge)
	cs.Options.Path = "/"
	cs.Options.HttpOnly = true
	cs.Options.SameSite = http.SameSiteLaxMode
	return cs
}

// ID returns the session id carried by r, issuing a new one when the cookie is
// absent or cannot be decoded. The cookie is re-signed on every call so its
// max age counts from the last request rather than the first.
func ID(cs sessions.Store, w http.ResponseWriter, r *http.Request) (string, error) {
	// A decode error still yields a fresh session, so it is not fatal.
	sess, _ := cs.Get(r, cookieName)
	id, ok := sess.Values[idKey].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		sess.Values[idKey] = id
	}
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session cookie: %w", err)
	}
	return id, nil
}
