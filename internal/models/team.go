package models

import (
	"time"
)

// TeamRole — роль участника команды. Меньшее значение — больше привилегий:
// Owner > Admin > Member > Viewer. RoleNone — отдельный маркер "не участник",
// он не совпадает с Viewer и не проходит ни одну проверку прав.
type TeamRole int

const (
	RoleOwner TeamRole = iota
	RoleAdmin
	RoleMember
	RoleViewer
	RoleNone
)

// AtLeast сообщает, дотягивает ли роль до порога min.
func (r TeamRole) AtLeast(min TeamRole) bool {
	return r != RoleNone && r <= min
}

func (r TeamRole) String() string {
	switch r {
	case RoleOwner:
		return "Owner"
	case RoleAdmin:
		return "Admin"
	case RoleMember:
		return "Member"
	case RoleViewer:
		return "Viewer"
	}
	return "None"
}

func ParseTeamRole(s string) (TeamRole, bool) {
	switch s {
	case "Owner":
		return RoleOwner, true
	case "Admin":
		return RoleAdmin, true
	case "Member":
		return RoleMember, true
	case "Viewer":
		return RoleViewer, true
	}
	return RoleNone, false
}

type Team struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	OwnerID     uint `gorm:"not null"`
	CreatedAt   time.Time

	// Связи
	Owner       User         `gorm:"foreignKey:OwnerID"`
	Members     []TeamMember `gorm:"foreignKey:TeamID"`
	SharedTodos []Todo       `gorm:"foreignKey:TeamID"`
}

// TeamMember — ровно одна строка на пару (пользователь, команда).
type TeamMember struct {
	ID     uint     `gorm:"primaryKey"`
	TeamID uint     `gorm:"not null;uniqueIndex:idx_team_user"`
	UserID uint     `gorm:"not null;uniqueIndex:idx_team_user"`
	Role   TeamRole `gorm:"not null"`

	Team Team `gorm:"foreignKey:TeamID"`
	User User `gorm:"foreignKey:UserID"`
}
