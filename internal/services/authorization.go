package services

import (
	"errors"

	"github.com/thereayou/teamtodo/internal/models"
	"gorm.io/gorm"
)

// AuthorizationService отвечает на вопросы о членстве и ролях.
// Все методы только читают, состояние не меняют.
type AuthorizationService struct {
	store MembershipStore
}

func NewAuthorizationService(store MembershipStore) *AuthorizationService {
	return &AuthorizationService{store: store}
}

// RoleOf возвращает роль пользователя в команде. Отсутствие строки членства —
// это RoleNone, а не Viewer: не-участник не получает даже прав наблюдателя.
func (s *AuthorizationService) RoleOf(userID, teamID uint) (models.TeamRole, error) {
	member, err := s.store.GetTeamMember(userID, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoleNone, nil
		}
		return models.RoleNone, err
	}
	return member.Role, nil
}

func (s *AuthorizationService) IsTeamMember(userID, teamID uint) (bool, error) {
	role, err := s.RoleOf(userID, teamID)
	if err != nil {
		return false, err
	}
	return role != models.RoleNone, nil
}

// IsTeamAdmin — true для Admin и Owner
func (s *AuthorizationService) IsTeamAdmin(userID, teamID uint) (bool, error) {
	role, err := s.RoleOf(userID, teamID)
	if err != nil {
		return false, err
	}
	return role.AtLeast(models.RoleAdmin), nil
}

func (s *AuthorizationService) IsTeamOwner(userID, teamID uint) (bool, error) {
	role, err := s.RoleOf(userID, teamID)
	if err != nil {
		return false, err
	}
	return role == models.RoleOwner, nil
}

// CanAccessTodo: свою задачу видит владелец, общую — любой участник команды
func (s *AuthorizationService) CanAccessTodo(userID uint, todo *models.Todo) (bool, error) {
	if todo.UserID == userID {
		return true, nil
	}

	if todo.TeamID != nil {
		return s.IsTeamMember(userID, *todo.TeamID)
	}

	return false, nil
}

// CanModifyTodo: свою задачу меняет владелец, чужую общую — только Admin и выше
func (s *AuthorizationService) CanModifyTodo(userID uint, todo *models.Todo) (bool, error) {
	if todo.UserID == userID {
		return true, nil
	}

	if todo.TeamID != nil {
		role, err := s.RoleOf(userID, *todo.TeamID)
		if err != nil {
			return false, err
		}
		return role.AtLeast(models.RoleAdmin), nil
	}

	return false, nil
}
