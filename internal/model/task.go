package model

import "time"

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Complete    bool       `json:"complete"`
	ReminderSet bool       `json:"reminder_set"`
	Status      string     `json:"status"`
	UserID      int64      `json:"user_id"`
	ColumnID    *int64     `json:"column_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TaskFilter struct {
	Complete *bool
	SortBy   string // priority | created_at | due_date
}

type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// Overdue - есть дедлайн, он в прошлом и задача не завершена
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Complete
}
