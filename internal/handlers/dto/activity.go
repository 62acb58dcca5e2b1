package dto

import (
	"time"

	"github.com/thereayou/teamtodo/internal/models"
)

type CreateActivityRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
	TeamID      *uint  `json:"team_id"`
	TodoID      *uint  `json:"todo_id"`
}

type ActivityResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	TeamID      *uint     `json:"team_id,omitempty"`
	TeamName    string    `json:"team_name,omitempty"`
	TodoID      *uint     `json:"todo_id,omitempty"`
	TodoName    string    `json:"todo_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewActivityResponse(activity *models.Activity) ActivityResponse {
	resp := ActivityResponse{
		ID:          activity.ID,
		Type:        string(activity.Type),
		Description: activity.Description,
		UserID:      activity.UserID,
		Username:    activity.User.Username,
		TeamID:      activity.TeamID,
		TodoID:      activity.TodoID,
		CreatedAt:   activity.CreatedAt,
	}

	if activity.Team != nil {
		resp.TeamName = activity.Team.Name
	}
	if activity.Todo != nil {
		resp.TodoName = activity.Todo.Name
	}

	return resp
}
