package usecase

import (
	"context"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
	"eduflix-api/internal/pkg/logger"
)

type LibraryStore interface {
	ToggleFavorite(ctx context.Context, userID, videoID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AddHistory(ctx context.Context, userID, videoID uuid.UUID) error
	ListHistory(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) error
}

// LibraryUseCase — личная библиотека: избранное, история, агрегаты,
// рекомендации. Агрегаты собираются чистыми функциями по снапшоту прогресса.
type LibraryUseCase struct {
	lib        LibraryStore
	catalog    VideoCatalog
	categories CategoryCatalog
	progress   *ProgressUseCase
	log        *logger.Logger
}

func NewLibraryUseCase(lib LibraryStore, catalog VideoCatalog, categories CategoryCatalog, progress *ProgressUseCase, log *logger.Logger) *LibraryUseCase {
	return &LibraryUseCase{lib: lib, catalog: catalog, categories: categories, progress: progress, log: log}
}

func (uc *LibraryUseCase) Stats(ctx context.Context, userID uuid.UUID) (domain.UserStats, error) {
	videos, err := uc.catalog.ListAll(ctx)
	if err != nil {
		return domain.UserStats{}, err
	}
	categories, err := uc.categories.ListCategories(ctx)
	if err != nil {
		return domain.UserStats{}, err
	}
	lookup, err := uc.progress.LookupFor(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	return ComputeUserStats(videos, categories, lookup), nil
}

func (uc *LibraryUseCase) Recommendations(ctx context.Context, userID uuid.UUID) (domain.RecommendationSet, error) {
	videos, err := uc.catalog.ListAll(ctx)
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	history, err := uc.lib.ListHistory(ctx, userID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	favorites, err := uc.lib.ListFavorites(ctx, userID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	lookup, err := uc.progress.LookupFor(ctx, userID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	return Recommend(history, favorites, videos, lookup), nil
}

func (uc *LibraryUseCase) ToggleFavorite(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	if _, err := uc.catalog.GetVideo(ctx, videoID); err != nil {
		return false, domain.ErrNotFound
	}
	return uc.lib.ToggleFavorite(ctx, userID, videoID)
}

func (uc *LibraryUseCase) FavoriteVideos(ctx context.Context, userID uuid.UUID) ([]domain.Video, error) {
	ids, err := uc.lib.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.expand(ctx, ids)
}

func (uc *LibraryUseCase) HistoryVideos(ctx context.Context, userID uuid.UUID) ([]domain.Video, error) {
	ids, err := uc.lib.ListHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.expand(ctx, ids)
}

func (uc *LibraryUseCase) AddToHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	return uc.lib.AddHistory(ctx, userID, videoID)
}

// ClearHistory сносит историю вместе со всем прогрессом пользователя —
// единственный способ удалить записи прогресса.
func (uc *LibraryUseCase) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	if err := uc.lib.ClearHistory(ctx, userID); err != nil {
		return err
	}
	return uc.progress.store.DeleteByUser(ctx, userID)
}

// expand разворачивает id в видео, сохраняя порядок списка.
// Удалённые из каталога видео молча пропускаются.
func (uc *LibraryUseCase) expand(ctx context.Context, ids []uuid.UUID) ([]domain.Video, error) {
	videos, err := uc.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	out := make([]domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}
