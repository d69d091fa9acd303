package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string    `gorm:"uniqueIndex"`
	Name     string
	Password string `json:"-"`
	Avatar   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Избранное пользователя (многие-ко-многим через составной ключ)
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	VideoID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// История просмотров. Дубликаты схлопываем — при повторном просмотре
// запись поднимается наверх (ViewedAt обновляется).
type HistoryEntry struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	VideoID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ViewedAt time.Time `gorm:"index"`
}
