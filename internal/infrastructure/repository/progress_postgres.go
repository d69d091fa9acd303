package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eduflix-api/internal/domain"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Get(ctx context.Context, userID, videoID uuid.UUID) (*domain.ProgressRecord, error) {
	var rec domain.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return &rec, nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ProgressRecord, error) {
	var records []domain.ProgressRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return records, nil
}

// Apply — compare-and-set по ключу (user, video): строка берётся под
// блокировку, правило монотонности применяет сама запись. Конкурентные
// дубли события 100 дадут edge только одному из них.
func (r *ProgressRepository) Apply(ctx context.Context, userID, videoID uuid.UUID, percent int, reset bool) (bool, error) {
	var completedNow bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec domain.ProgressRecord
		created := false

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND video_id = ?", userID, videoID).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Первое событие плеера для пары — создаём запись
			rec = domain.ProgressRecord{UserID: userID, VideoID: videoID}
			created = true
		} else if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}

		edge, err := rec.Apply(percent, reset, time.Now())
		if err != nil {
			return err
		}
		completedNow = edge

		if created {
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
			}
			return nil
		}
		err = tx.Model(&domain.ProgressRecord{}).
			Where("user_id = ? AND video_id = ?", userID, videoID).
			Updates(map[string]interface{}{
				"percent":      rec.Percent,
				"completed":    rec.Completed,
				"last_watched": rec.LastWatched,
			}).Error
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return completedNow, nil
}

func (r *ProgressRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.ProgressRecord{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
