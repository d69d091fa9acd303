package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduflix-api/internal/domain"
)

type LibraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// ToggleFavorite возвращает true, если видео стало избранным.
func (r *LibraryRepository) ToggleFavorite(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fav domain.Favorite
		err := tx.Where("user_id = ? AND video_id = ?", userID, videoID).First(&fav).Error
		switch {
		case err == nil:
			return tx.Where("user_id = ? AND video_id = ?", userID, videoID).
				Delete(&domain.Favorite{}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			added = true
			return tx.Create(&domain.Favorite{UserID: userID, VideoID: videoID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return added, nil
}

func (r *LibraryRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var favorites []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	ids := make([]uuid.UUID, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.VideoID)
	}
	return ids, nil
}

// AddHistory: повторный просмотр поднимает запись наверх, а не плодит дубли.
func (r *LibraryRepository) AddHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry domain.HistoryEntry
		err := tx.Where("user_id = ? AND video_id = ?", userID, videoID).First(&entry).Error
		switch {
		case err == nil:
			return tx.Model(&domain.HistoryEntry{}).
				Where("user_id = ? AND video_id = ?", userID, videoID).
				Update("viewed_at", time.Now()).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&domain.HistoryEntry{
				UserID:   userID,
				VideoID:  videoID,
				ViewedAt: time.Now(),
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *LibraryRepository) ListHistory(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var entries []domain.HistoryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.VideoID)
	}
	return ids, nil
}

func (r *LibraryRepository) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.HistoryEntry{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
