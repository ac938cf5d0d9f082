package model

import "time"

// DefaultColumnNames - канонические колонки, их нельзя удалять
var DefaultColumnNames = []string{"To Do", "In Progress", "Completed", "Pending", "Done"}

type Column struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func IsDefaultColumnName(name string) bool {
	for _, n := range DefaultColumnNames {
		if n == name {
			return true
		}
	}
	return false
}
