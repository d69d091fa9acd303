package usecase

import (
	"sort"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
)

const recommendationLimit = 4

// Recommend строит три независимых списка рекомендаций. Чистая функция,
// на пустом каталоге возвращает три пустых списка, без ошибок.
// favorites пока в ранжировании не участвует.
func Recommend(history []uuid.UUID, favorites []uuid.UUID, catalog []domain.Video, lookup ProgressLookup) domain.RecommendationSet {
	set := domain.RecommendationSet{
		BasedOnHistory:  []domain.Video{},
		BasedOnProgress: []domain.Video{},
		Trending:        []domain.Video{},
	}
	if len(catalog) == 0 {
		return set
	}

	byID := make(map[uuid.UUID]domain.Video, len(catalog))
	for _, v := range catalog {
		byID[v.ID] = v
	}

	inHistory := make(map[uuid.UUID]bool, len(history))
	for _, id := range history {
		inHistory[id] = true
	}

	// Самая частая категория в истории. При равенстве побеждает та,
	// которая первой набрала максимум в порядке обхода истории.
	var topCategory uuid.UUID
	topCount := 0
	counts := make(map[uuid.UUID]int)
	for _, id := range history {
		v, ok := byID[id]
		if !ok {
			continue
		}
		counts[v.CategoryID]++
		if counts[v.CategoryID] > topCount {
			topCount = counts[v.CategoryID]
			topCategory = v.CategoryID
		}
	}

	if topCount > 0 {
		for _, v := range catalog {
			if v.CategoryID != topCategory || inHistory[v.ID] {
				continue
			}
			set.BasedOnHistory = append(set.BasedOnHistory, v)
			if len(set.BasedOnHistory) == recommendationLimit {
				break
			}
		}
	}

	// Начатые, но не завершённые: 0 и 100 исключаются
	inProgress := make([]domain.Video, 0)
	percents := make(map[uuid.UUID]int)
	for _, v := range catalog {
		if percent, ok := lookup(v.ID); ok && percent > 0 && percent < 100 {
			inProgress = append(inProgress, v)
			percents[v.ID] = percent
		}
	}
	sort.SliceStable(inProgress, func(i, j int) bool {
		return percents[inProgress[i].ID] > percents[inProgress[j].ID]
	})
	if len(inProgress) > recommendationLimit {
		inProgress = inProgress[:recommendationLimit]
	}
	set.BasedOnProgress = inProgress

	// Популярное: по количеству оценок, при равенстве сохраняем порядок каталога
	trending := make([]domain.Video, len(catalog))
	copy(trending, catalog)
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].TotalRatings > trending[j].TotalRatings
	})
	if len(trending) > recommendationLimit {
		trending = trending[:recommendationLimit]
	}
	set.Trending = trending

	return set
}
