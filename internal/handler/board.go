package handler

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Cdiksha/Smart-ToDo/internal/model"
	"github.com/Cdiksha/Smart-ToDo/internal/repo"
	"github.com/Cdiksha/Smart-ToDo/internal/service"
	"github.com/Cdiksha/Smart-ToDo/internal/session"
	"github.com/Cdiksha/Smart-ToDo/internal/view"
)

type BoardHandler struct {
	board    *service.BoardService
	users    repo.UserRepository
	sessions *session.Manager
	view     *view.Renderer
	logger   *zap.Logger
}

func NewBoardHandler(board *service.BoardService, users repo.UserRepository, sessions *session.Manager, v *view.Renderer, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		board:    board,
		users:    users,
		sessions: sessions,
		view:     v,
		logger:   logger,
	}
}

// currentUser достает владельца сессии; протухшая сессия сбрасывается
func (h *BoardHandler) currentUser(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	user, err := h.users.Get(r.Context(), userID(r))
	if errors.Is(err, repo.ErrorNotFound) {
		h.sessions.ClearUser(w, r)
		http.Redirect(w, r, "/login", http.StatusFound)
		return model.User{}, false
	}
	if err != nil {
		h.logger.Error("user lookup failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return model.User{}, false
	}
	return user, true
}

func (h *BoardHandler) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.board.ListTasks(r.Context(), user.ID, nil)
	if err != nil {
		h.logger.Error("task list failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.view.Render(w, "index", view.Page{
		Title:    "Dashboard",
		User:     user,
		Tasks:    tasks,
		Stats:    service.ComputeStats(tasks, time.Now()),
		DarkMode: h.sessions.DarkMode(r),
		Flashes:  h.sessions.Flashes(w, r),
	})
}

func (h *BoardHandler) Workflow(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	board, err := h.board.Workflow(r.Context(), user.ID, r.URL.Query().Get("sort"))
	if err != nil {
		h.logger.Error("workflow build failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.view.Render(w, "workflow", view.Page{
		Title:    "Workflow",
		User:     user,
		Tasks:    board.Tasks,
		Columns:  board.Columns,
		Stats:    board.Stats,
		SortBy:   board.SortBy,
		DarkMode: h.sessions.DarkMode(r),
		Flashes:  h.sessions.Flashes(w, r),
	})
}

func (h *BoardHandler) Completed(w http.ResponseWriter, r *http.Request) {
	h.filtered(w, r, "Completed", true)
}

func (h *BoardHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.filtered(w, r, "Pending", false)
}

func (h *BoardHandler) filtered(w http.ResponseWriter, r *http.Request, title string, complete bool) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.board.ListTasks(r.Context(), user.ID, &complete)
	if err != nil {
		h.logger.Error("task list failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Статистика всегда по всем задачам, не по отфильтрованным
	stats, err := h.board.Stats(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("stats failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.view.Render(w, "tasks", view.Page{
		Title:    title,
		User:     user,
		Tasks:    tasks,
		Stats:    stats,
		DarkMode: h.sessions.DarkMode(r),
		Flashes:  h.sessions.Flashes(w, r),
	})
}
