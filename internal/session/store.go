// Package session holds the admin auth state and transient
// notifications in a signed session cookie, giving the token the
// same browsing-session lifetime the back-office expects.
package session

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "kalai_admin"
	tokenKey    = "token"

	// Flash kinds, mirrored by the page templates.
	FlashSuccess = "success"
	FlashError   = "error"
)

// NewCookieStore builds the gorilla cookie store the echo session
// middleware wraps. MaxAge 0 scopes the cookie to the browsing
// session.
func NewCookieStore(secret string) sessions.Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
	}
	return store
}

func get(c echo.Context) (*sessions.Session, error) {
	return session.Get(sessionName, c)
}

// Begin stores the bearer token and marks the session authenticated.
// The token itself comes from the API client's login call; no server
// round-trip happens here.
func Begin(c echo.Context, token string) error {
	sess, err := get(c)
	if err != nil {
		return err
	}
	sess.Values[tokenKey] = token
	return sess.Save(c.Request(), c.Response())
}

// End clears the token and marks the session unauthenticated.
func End(c echo.Context) error {
	sess, err := get(c)
	if err != nil {
		return err
	}
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// EndWithNotice clears the token but keeps the cookie alive so the
// notice can still render on the page after the redirect. Expiring
// the cookie here would delete the flash along with it.
func EndWithNotice(c echo.Context, kind, message string) error {
	sess, err := get(c)
	if err != nil {
		return err
	}
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = 0
	sess.AddFlash(message, kind)
	return sess.Save(c.Request(), c.Response())
}

// Token returns the stored bearer token, or "" when unauthenticated.
func Token(c echo.Context) string {
	sess, err := get(c)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[tokenKey].(string)
	return token
}

func IsAuthenticated(c echo.Context) bool {
	return Token(c) != ""
}

// Flash queues a one-shot notification for the next rendered page.
func Flash(c echo.Context, kind, message string) {
	sess, err := get(c)
	if err != nil {
		return
	}
	sess.AddFlash(message, kind)
	_ = sess.Save(c.Request(), c.Response())
}

// Note is a consumed flash notification.
type Note struct {
	Kind    string
	Message string
}

// TakeFlashes drains queued notifications, saving the session so they
// show exactly once.
func TakeFlashes(c echo.Context) []Note {
	sess, err := get(c)
	if err != nil {
		return nil
	}
	var notes []Note
	for _, kind := range []string{FlashSuccess, FlashError} {
		for _, f := range sess.Flashes(kind) {
			if msg, ok := f.(string); ok {
				notes = append(notes, Note{Kind: kind, Message: msg})
			}
		}
	}
	if len(notes) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return notes
}
