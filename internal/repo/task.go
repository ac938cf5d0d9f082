package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cdiksha/Smart-ToDo/internal/model"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{
		pool: pool,
	}
}

const taskColumns = "id, title, description, due_date, priority, complete, reminder_set, status, user_id, column_id, created_at"

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority,
		&t.Complete, &t.ReminderSet, &t.Status, &t.UserID, &t.ColumnID, &t.CreatedAt,
	)
	return t, err
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	created, err := scanTask(r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, due_date, priority, reminder_set, status, user_id, column_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns+`
	`, t.Title, t.Description, t.DueDate, t.Priority, t.ReminderSet, t.Status, t.UserID, t.ColumnID))
	return created, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1
	`, id))

	if err == pgx.ErrNoRows {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) ListByUser(ctx context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error) {
	// Сортировка приоритетов: High < Medium < Low < все остальное
	order := "due_date ASC NULLS LAST, id"
	switch filter.SortBy {
	case "priority":
		order = `CASE priority
			WHEN 'High' THEN 0
			WHEN 'Medium' THEN 1
			WHEN 'Low' THEN 2
			ELSE 3
		END, id`
	case "created_at":
		order = "created_at DESC, id DESC"
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		  AND ($2::boolean IS NULL OR complete = $2)
		ORDER BY `+order,
		userID, filter.Complete)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	updated, err := scanTask(r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, priority = $5,
		    complete = $6, reminder_set = $7, status = $8, column_id = $9
		WHERE id = $1
		RETURNING `+taskColumns+`
	`, t.ID, t.Title, t.Description, t.DueDate, t.Priority, t.Complete, t.ReminderSet, t.Status, t.ColumnID))

	if err == pgx.ErrNoRows {
		return updated, ErrorNotFound
	}
	return updated, err
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) ListArmedReminders(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE reminder_set AND NOT complete
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) DisarmReminder(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "UPDATE tasks SET reminder_set = FALSE WHERE id = $1", id)
	return err
}
