package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Cdiksha/Smart-ToDo/internal/session"
)

// NewRouter собирает все маршруты приложения
func NewRouter(auth *AuthHandler, board *BoardHandler, tasks *TaskHandler, sessions *session.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	// Открытые маршруты
	r.Get("/signup", auth.SignupForm)
	r.Post("/signup", auth.Signup)
	r.Get("/login", auth.LoginForm)
	r.Post("/login", auth.Login)
	r.Get("/logout", auth.Logout)

	// Страницы только для залогиненных
	r.Group(func(r chi.Router) {
		r.Use(RequirePage(sessions))

		r.Get("/", board.Index)
		r.Get("/workflow", board.Workflow)
		r.Get("/completed", board.Completed)
		r.Get("/pending", board.Pending)

		r.Post("/add", tasks.Add)
		r.Post("/add_column", tasks.AddColumn)
		r.Get("/toggle/{id}", tasks.Toggle)
		r.Get("/toggle_reminder/{id}", tasks.ToggleReminder)
		r.Get("/delete/{id}", tasks.Delete)
		r.Post("/delete_column/{column_id}", tasks.DeleteColumn)
		r.Post("/edit_task/{task_id}", tasks.Edit)
		r.Get("/toggle_theme", auth.ToggleTheme)
	})

	// JSON-эндпоинты доски
	r.Group(func(r chi.Router) {
		r.Use(RequireJSON(sessions))

		r.Post("/update_column/{task_id}/{col_id}", tasks.UpdateColumn)
		r.Post("/update_status/{task_id}/{status}", tasks.UpdateStatus)
	})

	return r
}
