package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cdiksha/Smart-ToDo/internal/repo"
	"github.com/Cdiksha/Smart-ToDo/internal/service"
	"github.com/Cdiksha/Smart-ToDo/internal/session"
	"github.com/Cdiksha/Smart-ToDo/pkg/respond"
)

type TaskHandler struct {
	board    *service.BoardService
	sessions *session.Manager
	logger   *zap.Logger
}

func NewTaskHandler(board *service.BoardService, sessions *session.Manager, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		board:    board,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	columnID, _ := strconv.ParseInt(r.FormValue("column_id"), 10, 64)

	_, err := h.board.AddTask(r.Context(), userID(r), service.AddTaskInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("desc"),
		DueRaw:      r.FormValue("due"),
		Priority:    r.FormValue("priority"),
		ColumnID:    columnID,
		Reminder:    r.FormValue("reminder") != "",
	})
	switch {
	case errors.Is(err, service.ErrValidation):
		h.sessions.AddFlash(w, r, "danger", "Title required")
	case err != nil:
		h.logger.Error("add task failed", zap.Error(err))
		h.sessions.AddFlash(w, r, "danger", "Something went wrong.")
	default:
		h.sessions.AddFlash(w, r, "success", "Task added.")
	}
	redirectBack(w, r, "/")
}

func (h *TaskHandler) AddColumn(w http.ResponseWriter, r *http.Request) {
	_, err := h.board.AddColumn(r.Context(), userID(r), r.FormValue("name"))
	switch {
	case errors.Is(err, service.ErrValidation):
		h.sessions.AddFlash(w, r, "danger", "Name required")
	case err != nil:
		h.logger.Error("add column failed", zap.Error(err))
		h.sessions.AddFlash(w, r, "danger", "Something went wrong.")
	default:
		h.sessions.AddFlash(w, r, "success", "Column added.")
	}
	http.Redirect(w, r, "/workflow", http.StatusFound)
}

func (h *TaskHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "task_id"), 10, 64)
	columnID, _ := strconv.ParseInt(chi.URLParam(r, "col_id"), 10, 64)

	err := h.board.MoveTask(r.Context(), userID(r), taskID, columnID)
	switch {
	case errors.Is(err, service.ErrForbidden):
		respond.Fail(w, r, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, repo.ErrorNotFound):
		respond.Fail(w, r, http.StatusNotFound, "Column not found")
	case err != nil:
		h.logger.Error("move task failed", zap.Error(err))
		respond.Fail(w, r, http.StatusInternalServerError, "internal error")
	default:
		respond.Success(w, r)
	}
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "task_id"), 10, 64)
	status := chi.URLParam(r, "status")

	err := h.board.SetStatus(r.Context(), userID(r), taskID, status)
	switch {
	case errors.Is(err, service.ErrForbidden):
		respond.Fail(w, r, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, repo.ErrorNotFound):
		respond.Fail(w, r, http.StatusNotFound, "Task not found")
	case err != nil:
		h.logger.Error("set status failed", zap.Error(err))
		respond.Fail(w, r, http.StatusInternalServerError, "internal error")
	default:
		respond.Success(w, r)
	}
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	err := h.board.ToggleComplete(r.Context(), userID(r), id)
	h.flashTaskResult(w, r, err, "Task updated.", "success")
	redirectBack(w, r, "/")
}

func (h *TaskHandler) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	err := h.board.ToggleReminder(r.Context(), userID(r), id)
	h.flashTaskResult(w, r, err, "Reminder toggled.", "info")
	redirectBack(w, r, "/")
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	err := h.board.DeleteTask(r.Context(), userID(r), id)
	h.flashTaskResult(w, r, err, "Task deleted.", "info")
	redirectBack(w, r, "/")
}

func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "task_id"), 10, 64)

	err := h.board.EditTask(r.Context(), userID(r), taskID, service.EditTaskInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		DueRaw:      r.FormValue("due_date"),
		Priority:    r.FormValue("priority"),
	})
	h.flashTaskResult(w, r, err, "Task updated!", "success")
	http.Redirect(w, r, "/workflow", http.StatusFound)
}

func (h *TaskHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	columnID, _ := strconv.ParseInt(chi.URLParam(r, "column_id"), 10, 64)

	err := h.board.DeleteColumn(r.Context(), userID(r), columnID)
	switch {
	case errors.Is(err, service.ErrProtectedColumn):
		h.sessions.AddFlash(w, r, "warning", "You cannot delete default columns.")
	case errors.Is(err, service.ErrForbidden):
		h.sessions.AddFlash(w, r, "danger", "Not authorized.")
	case errors.Is(err, repo.ErrorNotFound):
		h.sessions.AddFlash(w, r, "danger", "Column not found!")
	case err != nil:
		h.logger.Error("delete column failed", zap.Error(err))
		h.sessions.AddFlash(w, r, "danger", "Something went wrong.")
	default:
		h.sessions.AddFlash(w, r, "success", "Column deleted successfully!")
	}
	http.Redirect(w, r, "/workflow", http.StatusFound)
}

func (h *TaskHandler) flashTaskResult(w http.ResponseWriter, r *http.Request, err error, okMessage, okCategory string) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		h.sessions.AddFlash(w, r, "danger", "Not authorized.")
	case errors.Is(err, repo.ErrorNotFound):
		h.sessions.AddFlash(w, r, "danger", "Task not found!")
	case err != nil:
		h.logger.Error("task operation failed", zap.Error(err))
		h.sessions.AddFlash(w, r, "danger", "Something went wrong.")
	default:
		h.sessions.AddFlash(w, r, okCategory, okMessage)
	}
}
