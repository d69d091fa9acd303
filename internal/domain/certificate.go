package domain

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;index"`
	VideoID  uuid.UUID `gorm:"type:uuid;index"`
	URL      string
	IssuedAt time.Time

	CreatedAt time.Time
}

// Данные для фиксированного макета сертификата.
type CertificateData struct {
	StudentName    string
	CourseName     string
	CompletionDate time.Time
}
