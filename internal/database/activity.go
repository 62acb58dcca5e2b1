package database

import (
	"github.com/thereayou/teamtodo/internal/models"
	"github.com/thereayou/teamtodo/internal/services"
)

const activityFeedLimit = 50

func (d *Database) CreateActivity(activity *models.Activity) error {
	return d.db.Create(activity).Error
}

// GetActivities возвращает ленту действий: новые сверху, не больше 50 записей
func (d *Database) GetActivities(filter services.ActivityFilter) ([]models.Activity, error) {
	query := d.db.Model(&models.Activity{}).
		Preload("User").
		Preload("Team").
		Preload("Todo")

	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	} else {
		// Без фильтра по команде — свои действия плюс действия своих команд
		if len(filter.ScopeTeamIDs) > 0 {
			query = query.Where("user_id = ? OR team_id IN ?", filter.ScopeUserID, filter.ScopeTeamIDs)
		} else {
			query = query.Where("user_id = ?", filter.ScopeUserID)
		}
	}

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}

	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	var activities []models.Activity
	err := query.
		Order("created_at DESC").
		Limit(activityFeedLimit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	return activities, nil
}
