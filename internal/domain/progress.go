package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Запись прогресса уникальна для пары (пользователь, видео).
// Percent монотонный: откат возможен только явным reset.
// Completed — защёлка для completion edge: переход <100 -> 100
// срабатывает ровно один раз, пока флаг не сброшен.
type ProgressRecord struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	VideoID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Percent     int  `gorm:"default:0"`
	Completed   bool `gorm:"default:false"`
	LastWatched time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Apply применяет событие плеера к записи. Возвращает true ровно один раз
// на переход <100 -> 100. Откат без reset — ошибка, запись не трогаем.
// Вызывающий обязан держать запись под блокировкой по ключу.
func (p *ProgressRecord) Apply(percent int, reset bool, now time.Time) (bool, error) {
	if percent < 0 || percent > 100 {
		return false, fmt.Errorf("%w: percent %d outside [0,100]", ErrInvalidProgress, percent)
	}
	if !reset && percent < p.Percent {
		return false, fmt.Errorf("%w: percent %d below stored %d without reset", ErrInvalidProgress, percent, p.Percent)
	}

	completedNow := percent == 100 && !p.Completed

	p.Percent = percent
	if reset && percent < 100 {
		// Авторитетный откат снимает защёлку: новое завершение
		// снова даст edge
		p.Completed = false
	} else if percent == 100 {
		p.Completed = true
	}
	p.LastWatched = now

	return completedNow, nil
}
