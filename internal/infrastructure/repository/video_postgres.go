package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"eduflix-api/internal/domain"
)

const listCacheTTL = 10 * time.Minute

type VideoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) *VideoRepository {
	return &VideoRepository{db: db, rdb: rdb}
}

// List с кешем в Redis: ключ строится из фильтров, живёт 10 минут —
// каталог меняется редко.
func (r *VideoRepository) List(ctx context.Context, search, category string, limit, offset int) ([]domain.Video, int64, error) {
	key := fmt.Sprintf("videos:list:%s:%s:%d:%d", search, category, limit, offset)

	if val, err := r.rdb.Get(ctx, key).Result(); err == nil {
		var cached struct {
			Videos []domain.Video
			Total  int64
		}
		if json.Unmarshal([]byte(val), &cached) == nil {
			return cached.Videos, cached.Total, nil
		}
	}

	var videos []domain.Video
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Video{})
	if search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category_id = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	cacheData := struct {
		Videos []domain.Video
		Total  int64
	}{videos, total}
	if data, err := json.Marshal(cacheData); err == nil {
		r.rdb.Set(ctx, key, data, listCacheTTL)
	}

	return videos, total, nil
}

func (r *VideoRepository) GetVideo(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) ListAll(ctx context.Context) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&videos).Error
	return videos, err
}

func (r *VideoRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&videos).Error
	return videos, err
}

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *VideoRepository) Update(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

// Delete сносит видео вместе с оценками (каскад) и прогрессом по нему.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&domain.ProgressRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Video{}, "id = ?", id).Error
	})
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *VideoRepository) IncrementCompletions(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("completions", gorm.Expr("completions + 1")).Error
}

// Rate перезаписывает оценку пары (пользователь, видео) и пересчитывает
// агрегаты в той же транзакции.
func (r *VideoRepository) Rate(ctx context.Context, rating *domain.Rating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Rating
		err := tx.Where("user_id = ? AND video_id = ?", rating.UserID, rating.VideoID).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Value = rating.Value
			existing.Comment = rating.Comment
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(rating).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var ratings []domain.Rating
		if err := tx.Where("video_id = ?", rating.VideoID).Find(&ratings).Error; err != nil {
			return err
		}
		var sum int
		for _, rt := range ratings {
			sum += rt.Value
		}
		average := 0.0
		if len(ratings) > 0 {
			average = float64(sum) / float64(len(ratings))
		}

		return tx.Model(&domain.Video{}).
			Where("id = ?", rating.VideoID).
			Updates(map[string]interface{}{
				"average_rating": average,
				"total_ratings":  len(ratings),
			}).Error
	})
}

func (r *VideoRepository) Related(ctx context.Context, videoID, categoryID uuid.UUID, limit int) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ?", categoryID, videoID).
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (r *VideoRepository) Popular(ctx context.Context, limit int) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).
		Order("views desc").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}
