package repo

import (
	"context"

	"github.com/Cdiksha/Smart-ToDo/internal/model"
)

// UserRepository определяет интерфейс для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// ColumnRepository определяет интерфейс для работы с колонками
type ColumnRepository interface {
	Create(ctx context.Context, c model.Column) (model.Column, error)
	Get(ctx context.Context, id int64) (model.Column, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Column, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	ListByUser(ctx context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id int64) error
	ListArmedReminders(ctx context.Context) ([]model.Task, error)
	DisarmReminder(ctx context.Context, id int64) error
}
