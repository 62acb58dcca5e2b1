package services

import (
	"time"

	"github.com/thereayou/teamtodo/internal/models"
)

// Интерфейсы хранилища, которые реализует database.Database.
// Хендлеры и сервисы зависят от них, а не от конкретной БД.

type UserStore interface {
	SaveUser(user *models.User) error
	GetUser(id uint) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
}

type TodoStore interface {
	CreateTodo(todo *models.Todo) error
	GetTodo(id uint) (*models.Todo, error)
	GetUserTodos(userID uint) ([]models.Todo, error)
	GetSharedTodos(userID uint) ([]models.Todo, error)
	UpdateTodo(todo *models.Todo) error
	DeleteTodo(id uint) error
}

type TeamStore interface {
	CreateTeam(team *models.Team) error
	GetTeam(id uint) (*models.Team, error)
	GetUserTeams(userID uint) ([]models.Team, error)
	GetTeamMember(userID, teamID uint) (*models.TeamMember, error)
	AddTeamMember(member *models.TeamMember) error
	RemoveTeamMember(teamID, userID uint) error
	GetUserTeamIDs(userID uint) ([]uint, error)
}

// MembershipStore — минимум, который нужен проверкам прав
type MembershipStore interface {
	GetTeamMember(userID, teamID uint) (*models.TeamMember, error)
}

type ActivityStore interface {
	CreateActivity(activity *models.Activity) error
}

// ActivityFilter — параметры выборки ленты действий
type ActivityFilter struct {
	TeamID   *uint
	UserID   *uint
	Type     string
	FromDate *time.Time
	ToDate   *time.Time

	// Scope ограничивает ленту действиями самого пользователя
	// и его команд, когда фильтр по команде не задан
	ScopeUserID  uint
	ScopeTeamIDs []uint
}

type ActivityFeedStore interface {
	GetActivities(filter ActivityFilter) ([]models.Activity, error)
}
