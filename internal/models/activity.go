package models

import (
	"time"
)

type ActivityType string

const (
	ActivityTodoCreated   ActivityType = "TodoCreated"
	ActivityTodoUpdated   ActivityType = "TodoUpdated"
	ActivityTodoCompleted ActivityType = "TodoCompleted"
	ActivityTodoDeleted   ActivityType = "TodoDeleted"
	ActivityMemberJoined  ActivityType = "MemberJoined"
	ActivityMemberLeft    ActivityType = "MemberLeft"
	ActivityTeamCreated   ActivityType = "TeamCreated"
)

// Activity — запись журнала действий. После создания не изменяется и не удаляется.
type Activity struct {
	ID          uint         `gorm:"primaryKey"`
	Type        ActivityType `gorm:"not null"`
	Description string
	UserID      uint  `gorm:"not null"`
	TeamID      *uint // nil — личное действие
	TodoID      *uint
	CreatedAt   time.Time

	// Связи
	User User  `gorm:"foreignKey:UserID"`
	Team *Team `gorm:"foreignKey:TeamID"`
	Todo *Todo `gorm:"foreignKey:TodoID"`
}
