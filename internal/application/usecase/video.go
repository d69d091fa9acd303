package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
	"eduflix-api/internal/infrastructure/repository"
	"eduflix-api/internal/pkg/logger"
)

type VideoUseCase struct {
	repo *repository.VideoRepository
	log  *logger.Logger
}

func NewVideoUseCase(repo *repository.VideoRepository, log *logger.Logger) *VideoUseCase {
	return &VideoUseCase{repo: repo, log: log}
}

func (uc *VideoUseCase) List(ctx context.Context, search, category string, page, limit int) ([]domain.Video, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return uc.repo.List(ctx, search, category, limit, (page-1)*limit)
}

// Get отдаёт видео и инкрементирует просмотры.
func (uc *VideoUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := uc.repo.GetVideo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: video %s", domain.ErrNotFound, id)
	}
	if err := uc.repo.IncrementViews(ctx, id); err != nil {
		uc.log.Warn("failed to increment views", "videoId", id, "error", err)
	}
	return video, nil
}

func (uc *VideoUseCase) Create(ctx context.Context, video *domain.Video) error {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	return uc.repo.Create(ctx, video)
}

func (uc *VideoUseCase) Update(ctx context.Context, video *domain.Video) error {
	if _, err := uc.repo.GetVideo(ctx, video.ID); err != nil {
		return fmt.Errorf("%w: video %s", domain.ErrNotFound, video.ID)
	}
	return uc.repo.Update(ctx, video)
}

// Delete удаляет видео вместе с оценками и прогрессом по нему.
func (uc *VideoUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.repo.GetVideo(ctx, id); err != nil {
		return fmt.Errorf("%w: video %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

// Rate — одна оценка на пару (пользователь, видео), повторная перезаписывает.
// Агрегаты пересчитываются тут же.
func (uc *VideoUseCase) Rate(ctx context.Context, userID, videoID uuid.UUID, value int, comment string) (*domain.Video, error) {
	if _, err := uc.repo.GetVideo(ctx, videoID); err != nil {
		return nil, fmt.Errorf("%w: video %s", domain.ErrNotFound, videoID)
	}
	if err := uc.repo.Rate(ctx, &domain.Rating{
		UserID:  userID,
		VideoID: videoID,
		Value:   value,
		Comment: comment,
	}); err != nil {
		return nil, err
	}
	return uc.repo.GetVideo(ctx, videoID)
}

func (uc *VideoUseCase) Related(ctx context.Context, id uuid.UUID) ([]domain.Video, error) {
	video, err := uc.repo.GetVideo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: video %s", domain.ErrNotFound, id)
	}
	return uc.repo.Related(ctx, video.ID, video.CategoryID, recommendationLimit)
}

func (uc *VideoUseCase) Popular(ctx context.Context) ([]domain.Video, error) {
	return uc.repo.Popular(ctx, 10)
}
