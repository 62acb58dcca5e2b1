package models

import (
	"time"
)

type TodoStatus string

const (
	StatusNotStarted TodoStatus = "NotStarted"
	StatusInProgress TodoStatus = "InProgress"
	StatusCompleted  TodoStatus = "Completed"
)

// ParseTodoStatus проверяет, что строка — допустимый статус.
// Переходы между статусами свободные, последовательность не навязывается.
func ParseTodoStatus(s string) (TodoStatus, bool) {
	switch TodoStatus(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return TodoStatus(s), true
	}
	return "", false
}

type Todo struct {
	ID          uint       `gorm:"primaryKey"`
	Name        string     `gorm:"not null"`
	Description string
	DueDate     time.Time
	Status      TodoStatus `gorm:"default:'NotStarted'"`
	Priority    int
	Tags        string // теги через запятую
	UserID      uint   `gorm:"not null"`
	TeamID      *uint  // nil — личная задача
	IsShared    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Связи
	User User  `gorm:"foreignKey:UserID"`
	Team *Team `gorm:"foreignKey:TeamID"`
}
