package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Video struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"index"`
	VideoURL    string
	CoverURL    string
	CategoryID  uuid.UUID `gorm:"type:uuid;index"`
	Description string
	Duration    int    // минуты
	Level       string // "Principiante", "Intermedio", "Avanzado"
	Instructor  string
	Tags        datatypes.JSON `gorm:"type:jsonb"`

	// Агрегаты. AverageRating/TotalRatings пересчитываются при каждой оценке.
	Views         int64   `gorm:"default:0"`
	Completions   int64   `gorm:"default:0"`
	AverageRating float64 `gorm:"default:0"`
	TotalRatings  int64   `gorm:"default:0"`

	Ratings []Rating `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Оценка уникальна для пары (пользователь, видео) — повторная перезаписывает.
type Rating struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Value   int
	Comment string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex"`
	Description string
	Color       string // hex, например "#E50914"
	Icon        string `gorm:"default:'CategoryIcon'"`
	Slug        string `gorm:"uniqueIndex"`
	Order       int    `gorm:"default:0"`
	Active      bool   `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Производная статистика категории. Не хранится, считается по запросу.
type CategoryStats struct {
	TotalVideos    int     `json:"totalVideos"`
	TotalViews     int64   `json:"totalViews"`
	CompletionRate float64 `json:"completionRate"`
}
