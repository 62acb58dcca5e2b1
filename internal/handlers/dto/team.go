package dto

import (
	"github.com/thereayou/teamtodo/internal/models"
)

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type TeamResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id"`
	OwnerName   string `json:"owner_name,omitempty"`
	MemberCount int    `json:"member_count"`
}

func NewTeamResponse(team *models.Team) TeamResponse {
	return TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		OwnerID:     team.OwnerID,
		OwnerName:   team.Owner.Username,
		MemberCount: len(team.Members),
	}
}

type TeamMemberResponse struct {
	TeamID   uint   `json:"team_id"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MemberLeftPayload — полезная нагрузка события MemberLeft
type MemberLeftPayload struct {
	UserID uint `json:"user_id"`
}
