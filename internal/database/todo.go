package database

import (
	"github.com/thereayou/teamtodo/internal/models"
)

func (d *Database) CreateTodo(todo *models.Todo) error {
	return d.db.Create(todo).Error
}

func (d *Database) GetTodo(id uint) (*models.Todo, error) {
	var todo models.Todo
	if err := d.db.Preload("Team").First(&todo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// GetUserTodos возвращает личные задачи пользователя
func (d *Database) GetUserTodos(userID uint) ([]models.Todo, error) {
	var todos []models.Todo
	if err := d.db.Where("user_id = ?", userID).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// GetSharedTodos возвращает общие задачи команд, где пользователь состоит
func (d *Database) GetSharedTodos(userID uint) ([]models.Todo, error) {
	var todos []models.Todo
	err := d.db.
		Joins("JOIN team_members tm ON tm.team_id = todos.team_id").
		Where("todos.team_id IS NOT NULL AND tm.user_id = ?", userID).
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (d *Database) UpdateTodo(todo *models.Todo) error {
	return d.db.Save(todo).Error
}

func (d *Database) DeleteTodo(id uint) error {
	return d.db.Delete(&models.Todo{}, "id = ?", id).Error
}
