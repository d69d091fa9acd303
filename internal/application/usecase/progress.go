package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
	"eduflix-api/internal/pkg/logger"
)

// ProgressStore — персистентный прогресс по парам (пользователь, видео).
// Apply обязан быть атомарным по ключу: применяет процент только если он
// не меньше сохранённого (или стоит reset) и возвращает completedNow=true
// ровно один раз на переход <100 -> 100.
type ProgressStore interface {
	Get(ctx context.Context, userID, videoID uuid.UUID) (*domain.ProgressRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ProgressRecord, error)
	Apply(ctx context.Context, userID, videoID uuid.UUID, percent int, reset bool) (bool, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// VideoCatalog — каталог видео, инжектируется снаружи.
type VideoCatalog interface {
	ListAll(ctx context.Context) ([]domain.Video, error)
	GetVideo(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	IncrementCompletions(ctx context.Context, videoID uuid.UUID) error
}

type CategoryCatalog interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type ProgressUseCase struct {
	store   ProgressStore
	catalog VideoCatalog
	log     *logger.Logger
}

func NewProgressUseCase(store ProgressStore, catalog VideoCatalog, log *logger.Logger) *ProgressUseCase {
	return &ProgressUseCase{store: store, catalog: catalog, log: log}
}

// Update применяет событие плеера. На completion edge инкрементирует
// счётчик завершений видео — один раз на переход.
func (uc *ProgressUseCase) Update(ctx context.Context, userID, videoID uuid.UUID, percent int, reset bool) (*domain.ProgressRecord, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: percent %d outside [0,100]", domain.ErrInvalidProgress, percent)
	}

	if _, err := uc.catalog.GetVideo(ctx, videoID); err != nil {
		return nil, fmt.Errorf("%w: video %s", domain.ErrNotFound, videoID)
	}

	completedNow, err := uc.store.Apply(ctx, userID, videoID, percent, reset)
	if err != nil {
		return nil, err
	}

	if completedNow {
		// Статистика видео: edge уже отфильтрован стором, дубля не будет
		if err := uc.catalog.IncrementCompletions(ctx, videoID); err != nil {
			uc.log.Error("failed to increment completions", "videoId", videoID, "error", err)
		}
	}

	return uc.store.Get(ctx, userID, videoID)
}

func (uc *ProgressUseCase) Get(ctx context.Context, userID, videoID uuid.UUID) (*domain.ProgressRecord, error) {
	return uc.store.Get(ctx, userID, videoID)
}

// LookupFor строит снапшот прогресса пользователя для чистых функций
// ComputeUserStats / Recommend.
func (uc *ProgressUseCase) LookupFor(ctx context.Context, userID uuid.UUID) (ProgressLookup, error) {
	records, err := uc.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byVideo := make(map[uuid.UUID]int, len(records))
	for _, r := range records {
		byVideo[r.VideoID] = r.Percent
	}
	return func(videoID uuid.UUID) (int, bool) {
		p, ok := byVideo[videoID]
		return p, ok
	}, nil
}
