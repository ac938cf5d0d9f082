package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "smarttodo_session"

// Flash - одноразовое сообщение для следующей страницы
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   7 * 24 * 60 * 60,
	}
	return &Manager{store: store}
}

func (m *Manager) session(r *http.Request) *sessions.Session {
	// Битая кука равносильна пустой сессии
	s, _ := m.store.Get(r, sessionName)
	return s
}

func (m *Manager) UserID(r *http.Request) (int64, bool) {
	id, ok := m.session(r).Values["user_id"].(int64)
	return id, ok
}

func (m *Manager) SetUserID(w http.ResponseWriter, r *http.Request, id int64) error {
	s := m.session(r)
	s.Values["user_id"] = id
	return s.Save(r, w)
}

func (m *Manager) ClearUser(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	delete(s.Values, "user_id")
	return s.Save(r, w)
}

func (m *Manager) DarkMode(r *http.Request) bool {
	dark, _ := m.session(r).Values["dark_mode"].(bool)
	return dark
}

func (m *Manager) ToggleDarkMode(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	dark, _ := s.Values["dark_mode"].(bool)
	s.Values["dark_mode"] = !dark
	return s.Save(r, w)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	s := m.session(r)
	s.AddFlash(Flash{Category: category, Message: message})
	s.Save(r, w)
}

// Flashes забирает и сбрасывает накопленные сообщения
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.session(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	s.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
