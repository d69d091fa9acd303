package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
	"eduflix-api/internal/infrastructure/repository"
	"eduflix-api/internal/pkg/logger"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type CategoryUseCase struct {
	repo   *repository.CategoryRepository
	videos *repository.VideoRepository
	log    *logger.Logger
}

func NewCategoryUseCase(repo *repository.CategoryRepository, videos *repository.VideoRepository, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, videos: videos, log: log}
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]domain.Category, error) {
	return uc.repo.ListCategories(ctx)
}

func (uc *CategoryUseCase) Create(ctx context.Context, cat *domain.Category) error {
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	cat.Slug = slugify(cat.Name)
	return uc.repo.Create(ctx, cat)
}

func (uc *CategoryUseCase) Update(ctx context.Context, cat *domain.Category) error {
	if _, err := uc.repo.GetCategory(ctx, cat.ID); err != nil {
		return fmt.Errorf("%w: category %s", domain.ErrNotFound, cat.ID)
	}
	cat.Slug = slugify(cat.Name)
	return uc.repo.Update(ctx, cat)
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.repo.GetCategory(ctx, id); err != nil {
		return fmt.Errorf("%w: category %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

// Stats пересчитывает производную статистику категории по запросу,
// ничего не сохраняя.
func (uc *CategoryUseCase) Stats(ctx context.Context, id uuid.UUID) (*domain.CategoryStats, error) {
	if _, err := uc.repo.GetCategory(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: category %s", domain.ErrNotFound, id)
	}

	videos, err := uc.videos.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &domain.CategoryStats{TotalVideos: len(videos)}
	var completions int64
	for _, v := range videos {
		stats.TotalViews += v.Views
		completions += v.Completions
	}
	// Без просмотров рейтинг завершаемости не определён — отдаём 0
	if stats.TotalViews > 0 {
		stats.CompletionRate = float64(completions) / float64(stats.TotalViews) * 100
	}
	return stats, nil
}

func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
