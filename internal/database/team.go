package database

import (
	"github.com/thereayou/teamtodo/internal/models"
	"gorm.io/gorm"
)

// CreateTeam создает команду и сразу добавляет владельца участником с ролью Owner
func (d *Database) CreateTeam(team *models.Team) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		member := models.TeamMember{
			TeamID: team.ID,
			UserID: team.OwnerID,
			Role:   models.RoleOwner,
		}

		return tx.Create(&member).Error
	})
}

func (d *Database) GetTeam(id uint) (*models.Team, error) {
	var team models.Team
	err := d.db.
		Preload("Owner").
		Preload("Members").
		Preload("Members.User").
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetUserTeams возвращает команды, в которых пользователь состоит
func (d *Database) GetUserTeams(userID uint) ([]models.Team, error) {
	var teams []models.Team
	err := d.db.
		Joins("JOIN team_members tm ON tm.team_id = teams.id").
		Where("tm.user_id = ?", userID).
		Preload("Owner").
		Preload("Members").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GetTeamMember возвращает строку членства пары (пользователь, команда).
// Отсутствие строки — gorm.ErrRecordNotFound, не Viewer.
func (d *Database) GetTeamMember(userID, teamID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := d.db.Where("user_id = ? AND team_id = ?", userID, teamID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *Database) AddTeamMember(member *models.TeamMember) error {
	return d.db.Create(member).Error
}

func (d *Database) RemoveTeamMember(teamID, userID uint) error {
	return d.db.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&models.TeamMember{}).Error
}

// GetUserTeamIDs возвращает id команд пользователя
func (d *Database) GetUserTeamIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := d.db.Model(&models.TeamMember{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
