package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Cdiksha/Smart-ToDo/internal/model"
	"github.com/Cdiksha/Smart-ToDo/internal/repo"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrForbidden       = errors.New("forbidden")
	ErrProtectedColumn = errors.New("default columns cannot be deleted")
)

// DueDateLayout - формат дедлайна из формы
const DueDateLayout = "2006-01-02T15:04"

// Стартовый набор колонок нового пользователя
var defaultColumnSet = []string{"To Do", "In Progress", "Done"}

type BoardService struct {
	tasks   repo.TaskRepository
	columns repo.ColumnRepository
}

func NewBoardService(tasks repo.TaskRepository, columns repo.ColumnRepository) *BoardService {
	return &BoardService{tasks: tasks, columns: columns}
}

type AddTaskInput struct {
	Title       string
	Description string
	DueRaw      string
	Priority    string
	ColumnID    int64 // 0 - колонка не выбрана
	Reminder    bool
}

type EditTaskInput struct {
	Title       string
	Description string
	DueRaw      string
	Priority    string
}

type ColumnView struct {
	model.Column
	Tasks []model.Task
}

type BoardView struct {
	Columns []ColumnView
	Tasks   []model.Task
	Stats   model.Stats
	SortBy  string
}

// EnsureDefaultColumns идемпотентна: создает колонки только если их ноль
func (s *BoardService) EnsureDefaultColumns(ctx context.Context, userID int64) error {
	count, err := s.columns.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i, name := range defaultColumnSet {
		if _, err := s.columns.Create(ctx, model.Column{
			Name:     name,
			Position: i,
			UserID:   userID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *BoardService) ListTasks(ctx context.Context, userID int64, complete *bool) ([]model.Task, error) {
	return s.tasks.ListByUser(ctx, userID, model.TaskFilter{Complete: complete})
}

// ComputeStats - чистая агрегация, без похода в БД
func ComputeStats(tasks []model.Task, now time.Time) model.Stats {
	var st model.Stats
	st.Total = len(tasks)
	for _, t := range tasks {
		if t.Complete {
			st.Completed++
		} else {
			st.Pending++
		}
		if t.Overdue(now) {
			st.Overdue++
		}
	}
	return st
}

func (s *BoardService) Stats(ctx context.Context, userID int64) (model.Stats, error) {
	tasks, err := s.ListTasks(ctx, userID, nil)
	if err != nil {
		return model.Stats{}, err
	}
	return ComputeStats(tasks, time.Now()), nil
}

func (s *BoardService) Workflow(ctx context.Context, userID int64, sortBy string) (BoardView, error) {
	if err := s.EnsureDefaultColumns(ctx, userID); err != nil {
		return BoardView{}, err
	}

	cols, err := s.columns.ListByUser(ctx, userID)
	if err != nil {
		return BoardView{}, err
	}

	// Доукомплектовываем недостающие канонические колонки, ничего не удаляя
	existing := make(map[string]bool, len(cols))
	for _, c := range cols {
		existing[c.Name] = true
	}
	pos := len(cols)
	for _, name := range model.DefaultColumnNames {
		if existing[name] {
			continue
		}
		created, err := s.columns.Create(ctx, model.Column{Name: name, Position: pos, UserID: userID})
		if err != nil {
			return BoardView{}, err
		}
		cols = append(cols, created)
		pos++
	}

	switch sortBy {
	case "priority", "created_at", "due_date":
	default:
		sortBy = "due_date"
	}

	tasks, err := s.tasks.ListByUser(ctx, userID, model.TaskFilter{SortBy: sortBy})
	if err != nil {
		return BoardView{}, err
	}

	// Внутри колонок всегда сортируем по дедлайну, пустые дедлайны в конце
	byDue := make([]model.Task, len(tasks))
	copy(byDue, tasks)
	sort.SliceStable(byDue, func(i, j int) bool {
		a, b := byDue[i].DueDate, byDue[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	byColumn := make(map[int64][]model.Task)
	for _, t := range byDue {
		if t.ColumnID != nil {
			byColumn[*t.ColumnID] = append(byColumn[*t.ColumnID], t)
		}
	}

	views := make([]ColumnView, 0, len(cols))
	for _, c := range cols {
		views = append(views, ColumnView{Column: c, Tasks: byColumn[c.ID]})
	}

	return BoardView{
		Columns: views,
		Tasks:   tasks,
		Stats:   ComputeStats(tasks, time.Now()),
		SortBy:  sortBy,
	}, nil
}

func (s *BoardService) AddTask(ctx context.Context, userID int64, in AddTaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, ErrValidation
	}

	// Некорректная дата не ошибка, просто задача без дедлайна
	var due *time.Time
	if in.DueRaw != "" {
		if parsed, err := time.ParseInLocation(DueDateLayout, in.DueRaw, time.Local); err == nil {
			due = &parsed
		}
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	if err := s.EnsureDefaultColumns(ctx, userID); err != nil {
		return model.Task{}, err
	}

	columnID, err := s.resolveColumn(ctx, userID, in.ColumnID)
	if err != nil {
		return model.Task{}, err
	}

	return s.tasks.Create(ctx, model.Task{
		Title:       title,
		Description: in.Description,
		DueDate:     due,
		Priority:    priority,
		ReminderSet: in.Reminder,
		Status:      "todo",
		UserID:      userID,
		ColumnID:    columnID,
	})
}

// resolveColumn: чужая или несуществующая колонка заменяется первой по позиции
func (s *BoardService) resolveColumn(ctx context.Context, userID, columnID int64) (*int64, error) {
	if columnID != 0 {
		col, err := s.columns.Get(ctx, columnID)
		if err == nil && col.UserID == userID {
			return &col.ID, nil
		}
		if err != nil && !errors.Is(err, repo.ErrorNotFound) {
			return nil, err
		}
	}

	cols, err := s.columns.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, nil
	}
	return &cols[0].ID, nil
}

func (s *BoardService) AddColumn(ctx context.Context, userID int64, name string) (model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Column{}, ErrValidation
	}

	count, err := s.columns.CountByUser(ctx, userID)
	if err != nil {
		return model.Column{}, err
	}

	return s.columns.Create(ctx, model.Column{
		Name:     name,
		Position: count,
		UserID:   userID,
	})
}

func (s *BoardService) MoveTask(ctx context.Context, userID, taskID, columnID int64) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	col, err := s.columns.Get(ctx, columnID)
	if err != nil {
		return err
	}
	if col.UserID != userID { // чужие колонки выглядят как несуществующие
		return repo.ErrorNotFound
	}

	task.ColumnID = &col.ID
	task.Status = strings.ToLower(col.Name)
	_, err = s.tasks.Update(ctx, task)
	return err
}

// SetStatus принимает любую строку, без проверки по enum
func (s *BoardService) SetStatus(ctx context.Context, userID, taskID int64, status string) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	task.Status = status
	_, err = s.tasks.Update(ctx, task)
	return err
}

func (s *BoardService) ToggleComplete(ctx context.Context, userID, taskID int64) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	task.Complete = !task.Complete
	_, err = s.tasks.Update(ctx, task)
	return err
}

func (s *BoardService) ToggleReminder(ctx context.Context, userID, taskID int64) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	task.ReminderSet = !task.ReminderSet
	_, err = s.tasks.Update(ctx, task)
	return err
}

func (s *BoardService) EditTask(ctx context.Context, userID, taskID int64, in EditTaskInput) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	var due *time.Time
	if in.DueRaw != "" {
		if parsed, err := time.ParseInLocation(DueDateLayout, in.DueRaw, time.Local); err == nil {
			due = &parsed
		}
	}

	task.Title = in.Title
	task.Description = in.Description
	task.DueDate = due
	task.Priority = in.Priority
	_, err = s.tasks.Update(ctx, task)
	return err
}

func (s *BoardService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if _, err := s.ownedTask(ctx, userID, taskID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}

func (s *BoardService) DeleteColumn(ctx context.Context, userID, columnID int64) error {
	col, err := s.columns.Get(ctx, columnID)
	if err != nil {
		return err
	}
	if col.UserID != userID {
		return ErrForbidden
	}
	if model.IsDefaultColumnName(col.Name) {
		return ErrProtectedColumn
	}
	return s.columns.Delete(ctx, columnID)
}

func (s *BoardService) ownedTask(ctx context.Context, userID, taskID int64) (model.Task, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return model.Task{}, err
	}
	if task.UserID != userID {
		return model.Task{}, ErrForbidden
	}
	return task, nil
}
