package view

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cdiksha/Smart-ToDo/internal/model"
	"github.com/Cdiksha/Smart-ToDo/internal/service"
	"github.com/Cdiksha/Smart-ToDo/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page - все, что нужно шаблонам для отрисовки страницы
type Page struct {
	Title    string
	User     model.User
	Tasks    []model.Task
	Columns  []service.ColumnView
	Stats    model.Stats
	SortBy   string
	DarkMode bool
	Flashes  []session.Flash
}

type Renderer struct {
	templates *template.Template
	logger    *zap.Logger
}

func New(logger *zap.Logger) (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t, logger: logger}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, name string, data Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
