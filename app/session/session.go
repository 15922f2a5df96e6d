package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const userIDKey = "user_id"

// Manager wraps the cookie store so handlers never touch session
// internals directly.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

// NewManager creates a cookie-backed session manager.
func NewManager(secret []byte, name string) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: name}
}

// Login records the user id in the session cookie.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	s, _ := m.store.Get(r, m.name)
	s.Values[userIDKey] = userID
	return s.Save(r, w)
}

// Logout clears the session and expires the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, m.name)
	delete(s.Values, userIDKey)
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// UserID returns the authenticated user id stored in the request's
// session cookie, if any.
func (m *Manager) UserID(r *http.Request) (uint, bool) {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		return 0, false
	}
	id, ok := s.Values[userIDKey].(uint)
	return id, ok
}
