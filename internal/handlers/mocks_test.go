package handlers

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/thereayou/teamtodo/internal/models"
	"github.com/thereayou/teamtodo/internal/services"
	ws "github.com/thereayou/teamtodo/internal/websocket"
)

type MockTodoStore struct {
	mock.Mock
}

func (m *MockTodoStore) CreateTodo(todo *models.Todo) error {
	args := m.Called(todo)
	return args.Error(0)
}

func (m *MockTodoStore) GetTodo(id uint) (*models.Todo, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodoStore) GetUserTodos(userID uint) ([]models.Todo, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Todo), args.Error(1)
}

func (m *MockTodoStore) GetSharedTodos(userID uint) ([]models.Todo, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Todo), args.Error(1)
}

func (m *MockTodoStore) UpdateTodo(todo *models.Todo) error {
	args := m.Called(todo)
	return args.Error(0)
}

func (m *MockTodoStore) DeleteTodo(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockTeamStore struct {
	mock.Mock
}

func (m *MockTeamStore) CreateTeam(team *models.Team) error {
	args := m.Called(team)
	return args.Error(0)
}

func (m *MockTeamStore) GetTeam(id uint) (*models.Team, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamStore) GetUserTeams(userID uint) ([]models.Team, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamStore) GetTeamMember(userID, teamID uint) (*models.TeamMember, error) {
	args := m.Called(userID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockTeamStore) AddTeamMember(member *models.TeamMember) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockTeamStore) RemoveTeamMember(teamID, userID uint) error {
	args := m.Called(teamID, userID)
	return args.Error(0)
}

func (m *MockTeamStore) GetUserTeamIDs(userID uint) ([]uint, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserStore) GetUser(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetAllUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockActivityStore struct {
	mock.Mock
}

func (m *MockActivityStore) CreateActivity(activity *models.Activity) error {
	args := m.Called(activity)
	return args.Error(0)
}

type MockActivityFeedStore struct {
	mock.Mock
}

func (m *MockActivityFeedStore) GetActivities(filter services.ActivityFilter) ([]models.Activity, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Activity), args.Error(1)
}

// fakePublisher запоминает опубликованные события вместо рассылки
type fakePublisher struct {
	mu        sync.Mutex
	published []publishedEvent
}

type publishedEvent struct {
	Room    string
	Event   ws.EventName
	Payload interface{}
}

func (p *fakePublisher) Publish(room string, event ws.EventName, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedEvent{Room: room, Event: event, Payload: payload})
}

func (p *fakePublisher) events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.published...)
}
