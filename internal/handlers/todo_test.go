package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thereayou/teamtodo/internal/middleware"
	"github.com/thereayou/teamtodo/internal/models"
	"github.com/thereayou/teamtodo/internal/services"
	ws "github.com/thereayou/teamtodo/internal/websocket"
)

// testRouter собирает gin с подставным userID в контексте
func testRouter(userID uint, register func(r *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	group := r.Group("/", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	register(group)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func memberRow(userID, teamID uint, role models.TeamRole) *models.TeamMember {
	return &models.TeamMember{TeamID: teamID, UserID: userID, Role: role}
}

func TestTodoHandler_CreateTodo(t *testing.T) {
	teamID := uint(5)

	t.Run("Viewer не может создать общую задачу: отказ без мутаций и рассылки", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		teams.On("GetTeamMember", uint(2), teamID).Return(memberRow(2, teamID, models.RoleViewer), nil)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.POST("/todos", h.CreateTodo) })

		w := doJSON(t, r, http.MethodPost, "/todos", gin.H{"name": "X", "team_id": teamID})

		assert.Equal(t, http.StatusForbidden, w.Code)
		todos.AssertNotCalled(t, "CreateTodo", mock.Anything)
		activities.AssertNotCalled(t, "CreateActivity", mock.Anything)
		assert.Empty(t, pub.events())
	})

	t.Run("не-участник не может создать общую задачу", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		teams.On("GetTeamMember", uint(2), teamID).Return(nil, gorm.ErrRecordNotFound)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.POST("/todos", h.CreateTodo) })

		w := doJSON(t, r, http.MethodPost, "/todos", gin.H{"name": "X", "team_id": teamID})

		assert.Equal(t, http.StatusForbidden, w.Code)
		todos.AssertNotCalled(t, "CreateTodo", mock.Anything)
		assert.Empty(t, pub.events())
	})

	t.Run("Member создает общую задачу: активность и событие TodoCreated", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		teams.On("GetTeamMember", uint(2), teamID).Return(memberRow(2, teamID, models.RoleMember), nil)
		todos.On("CreateTodo", mock.AnythingOfType("*models.Todo")).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Todo).ID = 10
		}).Return(nil)
		activities.On("CreateActivity", mock.MatchedBy(func(a *models.Activity) bool {
			return a.Type == models.ActivityTodoCreated && a.TeamID != nil && *a.TeamID == teamID
		})).Return(nil)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.POST("/todos", h.CreateTodo) })

		w := doJSON(t, r, http.MethodPost, "/todos", gin.H{"name": "X", "team_id": teamID})

		require.Equal(t, http.StatusCreated, w.Code)
		todos.AssertExpectations(t)
		activities.AssertExpectations(t)

		events := pub.events()
		require.Len(t, events, 1)
		assert.Equal(t, "team_5", events[0].Room)
		assert.Equal(t, ws.EventTodoCreated, events[0].Event)
	})

	t.Run("личная задача: активность есть, рассылки нет", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		todos.On("CreateTodo", mock.AnythingOfType("*models.Todo")).Return(nil)
		activities.On("CreateActivity", mock.MatchedBy(func(a *models.Activity) bool {
			return a.Type == models.ActivityTodoCreated && a.TeamID == nil
		})).Return(nil)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.POST("/todos", h.CreateTodo) })

		w := doJSON(t, r, http.MethodPost, "/todos", gin.H{"name": "X"})

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, pub.events())
	})

	t.Run("пустое имя отклоняется до мутаций", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.POST("/todos", h.CreateTodo) })

		w := doJSON(t, r, http.MethodPost, "/todos", gin.H{"description": "no name"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		todos.AssertNotCalled(t, "CreateTodo", mock.Anything)
	})
}

func TestTodoHandler_UpdateTodo(t *testing.T) {
	teamID := uint(5)

	t.Run("Member не может менять чужую общую задачу", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		shared := &models.Todo{ID: 10, Name: "X", UserID: 1, TeamID: &teamID, IsShared: true, Status: models.StatusNotStarted}
		todos.On("GetTodo", uint(10)).Return(shared, nil)
		teams.On("GetTeamMember", uint(2), teamID).Return(memberRow(2, teamID, models.RoleMember), nil)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.PUT("/todos/:id", h.UpdateTodo) })

		w := doJSON(t, r, http.MethodPut, "/todos/10", gin.H{"status": "Completed"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		todos.AssertNotCalled(t, "UpdateTodo", mock.Anything)
		assert.Empty(t, pub.events())
	})

	t.Run("Admin меняет чужую общую задачу: событие TodoUpdated", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		shared := &models.Todo{ID: 10, Name: "X", UserID: 1, TeamID: &teamID, IsShared: true, Status: models.StatusNotStarted}
		todos.On("GetTodo", uint(10)).Return(shared, nil)
		teams.On("GetTeamMember", uint(2), teamID).Return(memberRow(2, teamID, models.RoleAdmin), nil)
		todos.On("UpdateTodo", mock.AnythingOfType("*models.Todo")).Return(nil)
		activities.On("CreateActivity", mock.MatchedBy(func(a *models.Activity) bool {
			return a.Type == models.ActivityTodoUpdated
		})).Return(nil)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.PUT("/todos/:id", h.UpdateTodo) })

		w := doJSON(t, r, http.MethodPut, "/todos/10", gin.H{"status": "Completed"})

		require.Equal(t, http.StatusOK, w.Code)

		events := pub.events()
		require.Len(t, events, 1)
		assert.Equal(t, ws.EventTodoUpdated, events[0].Event)
		assert.Equal(t, "team_5", events[0].Room)
	})

	t.Run("недопустимый статус отклоняется", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		own := &models.Todo{ID: 10, Name: "X", UserID: 2, Status: models.StatusNotStarted}
		todos.On("GetTodo", uint(10)).Return(own, nil)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.PUT("/todos/:id", h.UpdateTodo) })

		w := doJSON(t, r, http.MethodPut, "/todos/10", gin.H{"status": "Done"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		todos.AssertNotCalled(t, "UpdateTodo", mock.Anything)
	})

	t.Run("чужая задача неотличима от несуществующей", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		foreign := &models.Todo{ID: 10, Name: "X", UserID: 1}
		todos.On("GetTodo", uint(10)).Return(foreign, nil)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.PUT("/todos/:id", h.UpdateTodo) })

		w := doJSON(t, r, http.MethodPut, "/todos/10", gin.H{"name": "Y"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTodoHandler_DeleteTodo(t *testing.T) {
	teamID := uint(5)

	t.Run("удаление общей задачи: событие TodoDeleted с id", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		shared := &models.Todo{ID: 10, Name: "X", UserID: 2, TeamID: &teamID, IsShared: true}
		todos.On("GetTodo", uint(10)).Return(shared, nil)
		teams.On("GetTeamMember", uint(2), teamID).Return(memberRow(2, teamID, models.RoleMember), nil)
		todos.On("DeleteTodo", uint(10)).Return(nil)
		activities.On("CreateActivity", mock.MatchedBy(func(a *models.Activity) bool {
			return a.Type == models.ActivityTodoDeleted
		})).Return(nil)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.DELETE("/todos/:id", h.DeleteTodo) })

		w := doJSON(t, r, http.MethodDelete, "/todos/10", nil)

		require.Equal(t, http.StatusOK, w.Code)

		events := pub.events()
		require.Len(t, events, 1)
		assert.Equal(t, ws.EventTodoDeleted, events[0].Event)
	})

	t.Run("сбой журнала после удаления — 500, но рассылки нет", func(t *testing.T) {
		todos := new(MockTodoStore)
		teams := new(MockTeamStore)
		activities := new(MockActivityStore)
		pub := &fakePublisher{}

		shared := &models.Todo{ID: 10, Name: "X", UserID: 2, TeamID: &teamID, IsShared: true}
		todos.On("GetTodo", uint(10)).Return(shared, nil)
		teams.On("GetTeamMember", uint(2), teamID).Return(memberRow(2, teamID, models.RoleMember), nil)
		todos.On("DeleteTodo", uint(10)).Return(nil)
		activities.On("CreateActivity", mock.Anything).Return(gorm.ErrInvalidDB)

		h := NewTodoHandler(todos, services.NewAuthorizationService(teams), services.NewActivityService(activities), pub)
		r := testRouter(2, func(g *gin.RouterGroup) { g.DELETE("/todos/:id", h.DeleteTodo) })

		w := doJSON(t, r, http.MethodDelete, "/todos/10", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, pub.events())
	})
}
