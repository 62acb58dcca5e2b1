package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/teamtodo/internal/handlers/dto"
	"github.com/thereayou/teamtodo/internal/middleware"
	"github.com/thereayou/teamtodo/internal/models"
	"github.com/thereayou/teamtodo/internal/services"
	ws "github.com/thereayou/teamtodo/internal/websocket"
)

type ActivityHandler struct {
	feed     services.ActivityFeedStore
	teams    services.TeamStore
	authz    *services.AuthorizationService
	activity *services.ActivityService
	hub      EventPublisher
}

func NewActivityHandler(feed services.ActivityFeedStore, teams services.TeamStore, authz *services.AuthorizationService, activity *services.ActivityService, hub EventPublisher) *ActivityHandler {
	return &ActivityHandler{feed: feed, teams: teams, authz: authz, activity: activity, hub: hub}
}

// GetActivities возвращает ленту действий. Фильтр по команде требует
// членства; без него видны свои действия и действия своих команд.
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	filter := services.ActivityFilter{ScopeUserID: userID}

	if teamParam := c.Query("team_id"); teamParam != "" {
		teamID, err := strconv.ParseUint(teamParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team_id"})
			return
		}

		isMember, err := h.authz.IsTeamMember(userID, uint(teamID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
			return
		}
		if !isMember {
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this team"})
			return
		}

		id := uint(teamID)
		filter.TeamID = &id
	} else {
		teamIDs, err := h.teams.GetUserTeamIDs(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get teams"})
			return
		}
		filter.ScopeTeamIDs = teamIDs
	}

	if userParam := c.Query("user_id"); userParam != "" {
		uid, err := strconv.ParseUint(userParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		id := uint(uid)
		filter.UserID = &id
	}

	filter.Type = c.Query("type")

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		filter.FromDate = &parsed
	}

	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		filter.ToDate = &parsed
	}

	activities, err := h.feed.GetActivities(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get activities"})
		return
	}

	result := make([]dto.ActivityResponse, len(activities))
	for i := range activities {
		result[i] = dto.NewActivityResponse(&activities[i])
	}

	c.JSON(http.StatusOK, gin.H{"activities": result})
}

// CreateActivity пишет запись в журнал вручную. Командная запись
// требует членства и уходит подписчикам комнаты событием ActivityAdded.
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TeamID != nil {
		isMember, err := h.authz.IsTeamMember(userID, *req.TeamID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
			return
		}
		if !isMember {
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this team"})
			return
		}
	}

	activity, err := h.activity.LogActivity(userID, models.ActivityType(req.Type), req.Description, req.TeamID, req.TodoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
		return
	}

	if activity.TeamID != nil {
		h.hub.Publish(ws.TeamRoom(*activity.TeamID), ws.EventActivityAdded, dto.NewActivityResponse(activity))
	}

	c.JSON(http.StatusCreated, dto.NewActivityResponse(activity))
}
