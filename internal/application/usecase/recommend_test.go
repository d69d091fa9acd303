package usecase

import (
	"testing"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
)

func TestRecommendEmptyCatalog(t *testing.T) {
	history := []uuid.UUID{uuid.New(), uuid.New()}
	favorites := []uuid.UUID{uuid.New()}

	set := Recommend(history, favorites, nil, emptyLookup)

	if len(set.BasedOnHistory) != 0 || len(set.BasedOnProgress) != 0 || len(set.Trending) != 0 {
		t.Fatalf("expected three empty lists, got %+v", set)
	}
}

func TestRecommendBasedOnHistory(t *testing.T) {
	catA := uuid.New()
	catB := uuid.New()

	watchedA1 := domain.Video{ID: uuid.New(), CategoryID: catA}
	watchedA2 := domain.Video{ID: uuid.New(), CategoryID: catA}
	watchedB := domain.Video{ID: uuid.New(), CategoryID: catB}
	freshA1 := domain.Video{ID: uuid.New(), CategoryID: catA}
	freshA2 := domain.Video{ID: uuid.New(), CategoryID: catA}
	freshB := domain.Video{ID: uuid.New(), CategoryID: catB}

	catalog := []domain.Video{watchedA1, watchedA2, watchedB, freshA1, freshA2, freshB}
	history := []uuid.UUID{watchedA1.ID, watchedB.ID, watchedA2.ID}

	set := Recommend(history, nil, catalog, emptyLookup)

	if len(set.BasedOnHistory) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(set.BasedOnHistory))
	}
	for _, v := range set.BasedOnHistory {
		if v.CategoryID != catA {
			t.Fatalf("expected only category A videos, got %+v", v)
		}
		if v.ID == watchedA1.ID || v.ID == watchedA2.ID {
			t.Fatalf("already watched video must be excluded")
		}
	}
}

func TestRecommendHistoryTieBreak(t *testing.T) {
	catA := uuid.New()
	catB := uuid.New()

	watchedB := domain.Video{ID: uuid.New(), CategoryID: catB}
	watchedA := domain.Video{ID: uuid.New(), CategoryID: catA}
	freshA := domain.Video{ID: uuid.New(), CategoryID: catA}
	freshB := domain.Video{ID: uuid.New(), CategoryID: catB}

	catalog := []domain.Video{watchedA, watchedB, freshA, freshB}
	// По одному просмотру в каждой категории: побеждает первая в истории
	history := []uuid.UUID{watchedB.ID, watchedA.ID}

	set := Recommend(history, nil, catalog, emptyLookup)

	if len(set.BasedOnHistory) != 1 || set.BasedOnHistory[0].ID != freshB.ID {
		t.Fatalf("tie must resolve to first-encountered category, got %+v", set.BasedOnHistory)
	}
}

func TestRecommendBasedOnProgressExcludesDoneAndUnstarted(t *testing.T) {
	vDone := domain.Video{ID: uuid.New()}
	vFresh := domain.Video{ID: uuid.New()}
	vHalf := domain.Video{ID: uuid.New()}
	vAlmost := domain.Video{ID: uuid.New()}
	vZero := domain.Video{ID: uuid.New()}

	catalog := []domain.Video{vDone, vFresh, vHalf, vAlmost, vZero}
	lookup := mapLookup(map[uuid.UUID]int{
		vDone.ID:   100,
		vHalf.ID:   50,
		vAlmost.ID: 90,
		vZero.ID:   0,
	})

	set := Recommend(nil, nil, catalog, lookup)

	if len(set.BasedOnProgress) != 2 {
		t.Fatalf("expected 2 in-progress videos, got %d", len(set.BasedOnProgress))
	}
	// Сортировка по убыванию прогресса
	if set.BasedOnProgress[0].ID != vAlmost.ID || set.BasedOnProgress[1].ID != vHalf.ID {
		t.Fatalf("expected descending progress order, got %+v", set.BasedOnProgress)
	}
}

func TestRecommendTrendingStableAndCapped(t *testing.T) {
	videos := make([]domain.Video, 6)
	for i := range videos {
		videos[i] = domain.Video{ID: uuid.New(), TotalRatings: 10}
	}
	hot := domain.Video{ID: uuid.New(), TotalRatings: 99}
	catalog := append([]domain.Video{videos[0], videos[1]}, hot)
	catalog = append(catalog, videos[2:]...)

	set := Recommend(nil, nil, catalog, emptyLookup)

	if len(set.Trending) != recommendationLimit {
		t.Fatalf("expected %d trending, got %d", recommendationLimit, len(set.Trending))
	}
	if set.Trending[0].ID != hot.ID {
		t.Fatalf("expected most rated first, got %+v", set.Trending[0])
	}
	// При равных оценках сохраняется порядок каталога
	if set.Trending[1].ID != videos[0].ID || set.Trending[2].ID != videos[1].ID {
		t.Fatalf("expected catalog order for equal ratings, got %+v", set.Trending)
	}
}

func TestRecommendListsAreIndependent(t *testing.T) {
	cat := uuid.New()
	watched := domain.Video{ID: uuid.New(), CategoryID: cat, TotalRatings: 50}
	half := domain.Video{ID: uuid.New(), CategoryID: cat, TotalRatings: 40}

	catalog := []domain.Video{watched, half}
	lookup := mapLookup(map[uuid.UUID]int{half.ID: 60})

	set := Recommend([]uuid.UUID{watched.ID}, nil, catalog, lookup)

	// half попадает и в basedOnHistory, и в basedOnProgress, и в trending
	if len(set.BasedOnHistory) != 1 || set.BasedOnHistory[0].ID != half.ID {
		t.Fatalf("expected half in history list, got %+v", set.BasedOnHistory)
	}
	if len(set.BasedOnProgress) != 1 || set.BasedOnProgress[0].ID != half.ID {
		t.Fatalf("expected half in progress list, got %+v", set.BasedOnProgress)
	}
	if len(set.Trending) != 2 {
		t.Fatalf("expected full trending list, got %+v", set.Trending)
	}
}
