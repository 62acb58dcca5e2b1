package database

import (
	"github.com/thereayou/teamtodo/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) GetUser(id uint) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := d.db.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
