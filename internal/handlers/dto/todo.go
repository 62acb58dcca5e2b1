package dto

import (
	"time"

	"github.com/thereayou/teamtodo/internal/models"
)

type CreateTodoRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    int       `json:"priority"`
	Tags        string    `json:"tags"`
	TeamID      *uint     `json:"team_id"`
}

// UpdateTodoRequest — частичное обновление, nil-поля не трогаем
type UpdateTodoRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
	Priority    *int       `json:"priority"`
	Tags        *string    `json:"tags"`
}

type TodoResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	Tags        string    `json:"tags"`
	UserID      uint      `json:"user_id"`
	TeamID      *uint     `json:"team_id,omitempty"`
	IsShared    bool      `json:"is_shared"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewTodoResponse(todo *models.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Name:        todo.Name,
		Description: todo.Description,
		DueDate:     todo.DueDate,
		Status:      string(todo.Status),
		Priority:    todo.Priority,
		Tags:        todo.Tags,
		UserID:      todo.UserID,
		TeamID:      todo.TeamID,
		IsShared:    todo.IsShared,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// TodoDeletedPayload — полезная нагрузка события TodoDeleted
type TodoDeletedPayload struct {
	ID uint `json:"id"`
}
