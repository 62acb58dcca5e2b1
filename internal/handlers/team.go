package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thereayou/teamtodo/internal/handlers/dto"
	"github.com/thereayou/teamtodo/internal/middleware"
	"github.com/thereayou/teamtodo/internal/models"
	"github.com/thereayou/teamtodo/internal/services"
	ws "github.com/thereayou/teamtodo/internal/websocket"
)

type TeamHandler struct {
	teams    services.TeamStore
	users    services.UserStore
	authz    *services.AuthorizationService
	activity *services.ActivityService
	hub      EventPublisher
}

func NewTeamHandler(teams services.TeamStore, users services.UserStore, authz *services.AuthorizationService, activity *services.ActivityService, hub EventPublisher) *TeamHandler {
	return &TeamHandler{teams: teams, users: users, authz: authz, activity: activity, hub: hub}
}

// GetMyTeams возвращает команды пользователя
func (h *TeamHandler) GetMyTeams(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	teams, err := h.teams.GetUserTeams(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get teams"})
		return
	}

	result := make([]dto.TeamResponse, len(teams))
	for i := range teams {
		result[i] = dto.NewTeamResponse(&teams[i])
	}

	c.JSON(http.StatusOK, gin.H{"teams": result})
}

// CreateTeam создает команду, создатель становится участником с ролью Owner
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
		CreatedAt:   time.Now(),
	}

	if err := h.teams.CreateTeam(team); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create team"})
		return
	}

	desc := "Created team '" + team.Name + "'"
	if _, err := h.activity.LogActivity(userID, models.ActivityTeamCreated, desc, &team.ID, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewTeamResponse(team))
}

// GetTeam возвращает команду с участниками. Только для участников.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	teamID, ok := parseTeamID(c)
	if !ok {
		return
	}

	isMember, err := h.authz.IsTeamMember(userID, teamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this team"})
		return
	}

	team, err := h.teams.GetTeam(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get team"})
		}
		return
	}

	members := make([]dto.TeamMemberResponse, len(team.Members))
	for i, m := range team.Members {
		members[i] = dto.TeamMemberResponse{
			TeamID:   m.TeamID,
			UserID:   m.UserID,
			Username: m.User.Username,
			Role:     m.Role.String(),
		}
	}

	response := dto.NewTeamResponse(team)
	c.JSON(http.StatusOK, gin.H{"team": response, "members": members})
}

// AddMember добавляет участника. Доступно Admin и Owner.
func (h *TeamHandler) AddMember(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	teamID, ok := parseTeamID(c)
	if !ok {
		return
	}

	isAdmin, err := h.authz.IsTeamAdmin(userID, teamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "only team admins can perform this action"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := models.ParseTeamRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	if _, err := h.teams.GetTeamMember(req.UserID, teamID); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user is already a member of this team"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check membership"})
		return
	}

	user, err := h.users.GetUser(req.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	member := &models.TeamMember{
		TeamID: teamID,
		UserID: req.UserID,
		Role:   role,
	}

	if err := h.teams.AddTeamMember(member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		return
	}

	desc := "Added member '" + user.Username + "' to team"
	if _, err := h.activity.LogActivity(userID, models.ActivityMemberJoined, desc, &teamID, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
		return
	}

	h.hub.Publish(ws.TeamRoom(teamID), ws.EventMemberJoined, dto.TeamMemberResponse{
		TeamID:   teamID,
		UserID:   user.ID,
		Username: user.Username,
		Role:     role.String(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "member added successfully"})
}

// RemoveMember убирает участника. Доступно Admin и Owner.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	teamID, ok := parseTeamID(c)
	if !ok {
		return
	}

	memberID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	isAdmin, err := h.authz.IsTeamAdmin(userID, teamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "only team admins can perform this action"})
		return
	}

	if _, err := h.teams.GetTeamMember(uint(memberID), teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check membership"})
		}
		return
	}

	if err := h.teams.RemoveTeamMember(teamID, uint(memberID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove member"})
		return
	}

	if _, err := h.activity.LogActivity(userID, models.ActivityMemberLeft, "Removed member from team", &teamID, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
		return
	}

	h.hub.Publish(ws.TeamRoom(teamID), ws.EventMemberLeft, dto.MemberLeftPayload{UserID: uint(memberID)})

	c.JSON(http.StatusOK, gin.H{"message": "member removed successfully"})
}

func parseTeamID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return 0, false
	}
	return uint(id), true
}
