package services

import (
	"time"

	"github.com/thereayou/teamtodo/internal/models"
)

// ActivityService пишет журнал действий. Записи только добавляются;
// ошибка хранилища уходит вызывающему как есть, без ретраев —
// полнота журнала важнее удобства.
type ActivityService struct {
	store ActivityStore
}

func NewActivityService(store ActivityStore) *ActivityService {
	return &ActivityService{store: store}
}

func (s *ActivityService) LogActivity(userID uint, activityType models.ActivityType, description string, teamID, todoID *uint) (*models.Activity, error) {
	activity := &models.Activity{
		Type:        activityType,
		Description: description,
		UserID:      userID,
		TeamID:      teamID,
		TodoID:      todoID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateActivity(activity); err != nil {
		return nil, err
	}

	return activity, nil
}
