package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thereayou/teamtodo/internal/handlers/dto"
	"github.com/thereayou/teamtodo/internal/middleware"
	"github.com/thereayou/teamtodo/internal/models"
	"github.com/thereayou/teamtodo/internal/services"
	ws "github.com/thereayou/teamtodo/internal/websocket"
)

type TodoHandler struct {
	todos    services.TodoStore
	authz    *services.AuthorizationService
	activity *services.ActivityService
	hub      EventPublisher
}

func NewTodoHandler(todos services.TodoStore, authz *services.AuthorizationService, activity *services.ActivityService, hub EventPublisher) *TodoHandler {
	return &TodoHandler{todos: todos, authz: authz, activity: activity, hub: hub}
}

// GetTodos возвращает свои задачи плюс общие задачи команд пользователя.
// Поддерживает фильтры status и due_date и сортировку sort_by/order.
func (h *TodoHandler) GetTodos(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	own, err := h.todos.GetUserTodos(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todos"})
		return
	}

	shared, err := h.todos.GetSharedTodos(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todos"})
		return
	}

	// Объединяем без дублей: общая задача может быть и своей
	seen := make(map[uint]bool, len(own))
	todos := make([]models.Todo, 0, len(own)+len(shared))
	for _, t := range append(own, shared...) {
		if !seen[t.ID] {
			seen[t.ID] = true
			todos = append(todos, t)
		}
	}

	if status := c.Query("status"); status != "" {
		parsed, ok := models.ParseTodoStatus(status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		filtered := todos[:0]
		for _, t := range todos {
			if t.Status == parsed {
				filtered = append(filtered, t)
			}
		}
		todos = filtered
	}

	if dueDate := c.Query("due_date"); dueDate != "" {
		parsed, err := time.Parse("2006-01-02", dueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date, expected YYYY-MM-DD"})
			return
		}

		filtered := todos[:0]
		for _, t := range todos {
			y1, m1, d1 := t.DueDate.Date()
			y2, m2, d2 := parsed.Date()
			if y1 == y2 && m1 == m2 && d1 == d2 {
				filtered = append(filtered, t)
			}
		}
		todos = filtered
	}

	sortTodos(todos, c.Query("sort_by"), c.Query("order"))

	result := make([]dto.TodoResponse, len(todos))
	for i := range todos {
		result[i] = dto.NewTodoResponse(&todos[i])
	}

	c.JSON(http.StatusOK, gin.H{"todos": result})
}

func sortTodos(todos []models.Todo, sortBy, order string) {
	desc := strings.EqualFold(order, "desc")

	var less func(a, b *models.Todo) bool
	switch strings.ToLower(sortBy) {
	case "duedate", "due_date":
		less = func(a, b *models.Todo) bool { return a.DueDate.Before(b.DueDate) }
	case "status":
		less = func(a, b *models.Todo) bool { return a.Status < b.Status }
	case "name":
		less = func(a, b *models.Todo) bool { return a.Name < b.Name }
	default:
		// По умолчанию новые сверху
		sort.SliceStable(todos, func(i, j int) bool {
			return todos[i].CreatedAt.After(todos[j].CreatedAt)
		})
		return
	}

	sort.SliceStable(todos, func(i, j int) bool {
		if desc {
			return less(&todos[j], &todos[i])
		}
		return less(&todos[i], &todos[j])
	})
}

// GetTodo возвращает задачу, если она своя или общая в команде пользователя
func (h *TodoHandler) GetTodo(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	todo, ok := h.loadAccessibleTodo(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewTodoResponse(todo))
}

// CreateTodo создает личную или общую задачу. Общую может создать
// только участник команды с ролью не ниже Member.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo := &models.Todo{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      models.StatusNotStarted,
		Priority:    req.Priority,
		Tags:        req.Tags,
		UserID:      userID,
	}

	if req.TeamID != nil {
		role, err := h.authz.RoleOf(userID, *req.TeamID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
			return
		}

		if role == models.RoleNone {
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this team"})
			return
		}

		if !role.AtLeast(models.RoleMember) {
			c.JSON(http.StatusForbidden, gin.H{"error": "viewers cannot create shared todos"})
			return
		}

		todo.TeamID = req.TeamID
		todo.IsShared = true
	}

	if err := h.todos.CreateTodo(todo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}

	if todo.TeamID != nil {
		desc := fmt.Sprintf("Created shared todo '%s' in team", todo.Name)
		if _, err := h.activity.LogActivity(userID, models.ActivityTodoCreated, desc, todo.TeamID, &todo.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
			return
		}

		h.hub.Publish(ws.TeamRoom(*todo.TeamID), ws.EventTodoCreated, dto.NewTodoResponse(todo))
	} else {
		desc := fmt.Sprintf("Created personal todo '%s'", todo.Name)
		if _, err := h.activity.LogActivity(userID, models.ActivityTodoCreated, desc, nil, &todo.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
			return
		}
	}

	c.JSON(http.StatusCreated, dto.NewTodoResponse(todo))
}

// UpdateTodo частично обновляет задачу. Чужую общую задачу может менять
// только Admin или Owner команды.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	todo, ok := h.loadAccessibleTodo(c, userID)
	if !ok {
		return
	}

	canModify, err := h.authz.CanModifyTodo(userID, todo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return
	}
	if !canModify {
		c.JSON(http.StatusForbidden, gin.H{"error": "only team admins can modify shared todos"})
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Обновляем только переданные поля
	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		todo.Name = *req.Name
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.DueDate != nil {
		todo.DueDate = *req.DueDate
	}
	if req.Status != nil {
		status, ok := models.ParseTodoStatus(*req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		todo.Status = status
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.Tags != nil {
		todo.Tags = *req.Tags
	}

	if err := h.todos.UpdateTodo(todo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		return
	}

	if todo.TeamID != nil {
		desc := fmt.Sprintf("Updated shared todo '%s' in team", todo.Name)
		if _, err := h.activity.LogActivity(userID, models.ActivityTodoUpdated, desc, todo.TeamID, &todo.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
			return
		}

		h.hub.Publish(ws.TeamRoom(*todo.TeamID), ws.EventTodoUpdated, dto.NewTodoResponse(todo))
	} else {
		desc := fmt.Sprintf("Updated personal todo '%s'", todo.Name)
		if _, err := h.activity.LogActivity(userID, models.ActivityTodoUpdated, desc, nil, &todo.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewTodoResponse(todo))
}

// DeleteTodo удаляет задачу по тем же правилам, что и UpdateTodo
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	todo, ok := h.loadAccessibleTodo(c, userID)
	if !ok {
		return
	}

	canModify, err := h.authz.CanModifyTodo(userID, todo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return
	}
	if !canModify {
		c.JSON(http.StatusForbidden, gin.H{"error": "only team admins can delete shared todos"})
		return
	}

	if err := h.todos.DeleteTodo(todo.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		return
	}

	if todo.TeamID != nil {
		desc := fmt.Sprintf("Deleted shared todo '%s' from team", todo.Name)
		if _, err := h.activity.LogActivity(userID, models.ActivityTodoDeleted, desc, todo.TeamID, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
			return
		}

		h.hub.Publish(ws.TeamRoom(*todo.TeamID), ws.EventTodoDeleted, dto.TodoDeletedPayload{ID: todo.ID})
	} else {
		desc := fmt.Sprintf("Deleted personal todo '%s'", todo.Name)
		if _, err := h.activity.LogActivity(userID, models.ActivityTodoDeleted, desc, nil, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "todo deleted successfully"})
}

// loadAccessibleTodo достает задачу из пути запроса и проверяет доступ.
// Недоступная чужая задача неотличима от несуществующей — 404 в обоих случаях.
func (h *TodoHandler) loadAccessibleTodo(c *gin.Context, userID uint) (*models.Todo, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return nil, false
	}

	todo, err := h.todos.GetTodo(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todo"})
		}
		return nil, false
	}

	canAccess, err := h.authz.CanAccessTodo(userID, todo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return nil, false
	}
	if !canAccess {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return nil, false
	}

	return todo, true
}
