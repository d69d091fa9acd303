package usecase

import (
	"github.com/google/uuid"

	"eduflix-api/internal/domain"
)

// ProgressLookup отдаёт процент просмотра видео для текущего пользователя.
// false — записи прогресса нет.
type ProgressLookup func(videoID uuid.UUID) (int, bool)

// ComputeUserStats считает агрегаты по всему каталогу. Чистая функция:
// никаких side effects, одинаковый вход — одинаковый выход.
func ComputeUserStats(videos []domain.Video, categories []domain.Category, lookup ProgressLookup) domain.UserStats {
	stats := domain.UserStats{
		CategoriesProgress: make([]domain.CategoryProgress, 0, len(categories)),
	}

	var progressSum float64
	for _, v := range videos {
		percent, ok := lookup(v.ID)
		if !ok {
			continue
		}
		if percent == 100 {
			stats.CompletedCourses++
		}
		stats.TotalMinutes += float64(v.Duration) * float64(percent) / 100
		progressSum += float64(percent)
	}

	// Пустой каталог — 0, а не NaN
	if len(videos) > 0 {
		stats.TotalProgress = progressSum / float64(len(videos))
	}

	for _, cat := range categories {
		total := 0
		completed := 0
		for _, v := range videos {
			if v.CategoryID != cat.ID {
				continue
			}
			total++
			if percent, ok := lookup(v.ID); ok && percent == 100 {
				completed++
			}
		}

		progress := 0.0
		if total > 0 {
			progress = float64(completed) / float64(total) * 100
		}

		stats.CategoriesProgress = append(stats.CategoriesProgress, domain.CategoryProgress{
			Name:     cat.Name,
			Progress: progress,
			Color:    cat.Color,
		})
	}

	return stats
}
