package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time

	// Связи
	Todos           []Todo       `gorm:"foreignKey:UserID"`
	TeamMemberships []TeamMember `gorm:"foreignKey:UserID"`
	Activities      []Activity   `gorm:"foreignKey:UserID"`
}
