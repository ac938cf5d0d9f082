package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cdiksha/Smart-ToDo/internal/service"
	"github.com/Cdiksha/Smart-ToDo/internal/session"
	"github.com/Cdiksha/Smart-ToDo/internal/view"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	view     *view.Renderer
	logger   *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, v *view.Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		view:     v,
		logger:   logger,
	}
}

func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, "signup", view.Page{
		Title:   "Sign up",
		Flashes: h.sessions.Flashes(w, r),
	})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	_, err := h.auth.Signup(r.Context(), name, email, password)
	switch {
	case errors.Is(err, service.ErrValidation):
		h.sessions.AddFlash(w, r, "danger", "Please fill all fields.")
		h.view.Render(w, "signup", view.Page{Title: "Sign up", Flashes: h.sessions.Flashes(w, r)})
	case errors.Is(err, service.ErrEmailTaken):
		h.sessions.AddFlash(w, r, "warning", "Email already registered.")
		h.view.Render(w, "signup", view.Page{Title: "Sign up", Flashes: h.sessions.Flashes(w, r)})
	case err != nil:
		h.logger.Error("signup failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		h.sessions.AddFlash(w, r, "success", "Account created — please log in.")
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, "login", view.Page{
		Title:   "Login",
		Flashes: h.sessions.Flashes(w, r),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.auth.Login(r.Context(), email, password)
	switch {
	case errors.Is(err, service.ErrValidation):
		h.sessions.AddFlash(w, r, "danger", "Enter email and password.")
		h.view.Render(w, "login", view.Page{Title: "Login", Flashes: h.sessions.Flashes(w, r)})
	case errors.Is(err, service.ErrInvalidCredentials):
		// Одинаковый ответ для неизвестного email и неверного пароля
		h.sessions.AddFlash(w, r, "danger", "Invalid credentials.")
		h.view.Render(w, "login", view.Page{Title: "Login", Flashes: h.sessions.Flashes(w, r)})
	case err != nil:
		h.logger.Error("login failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		if err := h.sessions.SetUserID(w, r, user.ID); err != nil {
			h.logger.Error("session save failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		h.sessions.AddFlash(w, r, "success", fmt.Sprintf("Welcome, %s!", user.Name))
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearUser(w, r)
	h.sessions.AddFlash(w, r, "info", "Logged out.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ToggleDarkMode(w, r); err != nil {
		h.logger.Error("session save failed", zap.Error(err))
	}
	redirectBack(w, r, "/")
}
