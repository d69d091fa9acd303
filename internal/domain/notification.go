package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationAchievement = "achievement"
	NotificationInfo        = "info"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;index"`
	Type    string
	Title   string
	Message string
	Read    bool `gorm:"default:false"`

	CreatedAt time.Time `gorm:"index"`
}
