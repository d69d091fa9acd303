package usecase

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
)

func emptyLookup(uuid.UUID) (int, bool) { return 0, false }

func mapLookup(m map[uuid.UUID]int) ProgressLookup {
	return func(id uuid.UUID) (int, bool) {
		p, ok := m[id]
		return p, ok
	}
}

func TestComputeUserStatsEmptyProgress(t *testing.T) {
	cat := domain.Category{ID: uuid.New(), Name: "Frontend", Color: "#E50914"}
	videos := []domain.Video{
		{ID: uuid.New(), CategoryID: cat.ID, Duration: 10},
		{ID: uuid.New(), CategoryID: cat.ID, Duration: 20},
	}

	stats := ComputeUserStats(videos, []domain.Category{cat}, emptyLookup)

	if stats.CompletedCourses != 0 {
		t.Fatalf("expected 0 completed, got %d", stats.CompletedCourses)
	}
	if stats.TotalMinutes != 0 {
		t.Fatalf("expected 0 minutes, got %v", stats.TotalMinutes)
	}
	if stats.TotalProgress != 0 {
		t.Fatalf("expected 0 total progress, got %v", stats.TotalProgress)
	}
	if len(stats.CategoriesProgress) != 1 || stats.CategoriesProgress[0].Progress != 0 {
		t.Fatalf("expected zero category progress, got %+v", stats.CategoriesProgress)
	}
}

func TestComputeUserStatsEmptyCatalogNoNaN(t *testing.T) {
	emptyCat := domain.Category{ID: uuid.New(), Name: "Vacía"}

	stats := ComputeUserStats(nil, []domain.Category{emptyCat}, emptyLookup)

	if math.IsNaN(stats.TotalProgress) || stats.TotalProgress != 0 {
		t.Fatalf("expected 0 total progress on empty catalog, got %v", stats.TotalProgress)
	}
	if len(stats.CategoriesProgress) != 1 {
		t.Fatalf("expected entry for category without videos, got %+v", stats.CategoriesProgress)
	}
	if math.IsNaN(stats.CategoriesProgress[0].Progress) || stats.CategoriesProgress[0].Progress != 0 {
		t.Fatalf("category without videos must report 0, got %v", stats.CategoriesProgress[0].Progress)
	}
}

func TestComputeUserStatsSingleCompleted(t *testing.T) {
	cat := domain.Category{ID: uuid.New(), Name: "Backend"}
	done := domain.Video{ID: uuid.New(), CategoryID: cat.ID, Duration: 30}
	videos := []domain.Video{
		done,
		{ID: uuid.New(), CategoryID: cat.ID, Duration: 15},
		{ID: uuid.New(), CategoryID: cat.ID, Duration: 45},
		{ID: uuid.New(), CategoryID: cat.ID, Duration: 60},
	}

	stats := ComputeUserStats(videos, []domain.Category{cat}, mapLookup(map[uuid.UUID]int{done.ID: 100}))

	if stats.CompletedCourses != 1 {
		t.Fatalf("expected 1 completed, got %d", stats.CompletedCourses)
	}
	want := 100.0 / float64(len(videos))
	if stats.TotalProgress != want {
		t.Fatalf("expected total progress %v, got %v", want, stats.TotalProgress)
	}
}

func TestComputeUserStatsRollupScenario(t *testing.T) {
	catX := domain.Category{ID: uuid.New(), Name: "X", Color: "#00FF00"}
	a := domain.Video{ID: uuid.New(), CategoryID: catX.ID, Duration: 10}
	b := domain.Video{ID: uuid.New(), CategoryID: catX.ID, Duration: 20}

	lookup := mapLookup(map[uuid.UUID]int{a.ID: 100, b.ID: 50})
	stats := ComputeUserStats([]domain.Video{a, b}, []domain.Category{catX}, lookup)

	if stats.TotalMinutes != 20 {
		t.Fatalf("expected 20 total minutes, got %v", stats.TotalMinutes)
	}
	if stats.TotalProgress != 75 {
		t.Fatalf("expected 75 total progress, got %v", stats.TotalProgress)
	}
	if stats.CategoriesProgress[0].Progress != 50 {
		t.Fatalf("expected 50%% in category X, got %v", stats.CategoriesProgress[0].Progress)
	}
	if stats.CompletedCourses != 1 {
		t.Fatalf("expected 1 completed, got %d", stats.CompletedCourses)
	}
}

func TestComputeUserStatsDeterministic(t *testing.T) {
	cat := domain.Category{ID: uuid.New(), Name: "DevOps"}
	v := domain.Video{ID: uuid.New(), CategoryID: cat.ID, Duration: 40}
	lookup := mapLookup(map[uuid.UUID]int{v.ID: 70})

	first := ComputeUserStats([]domain.Video{v}, []domain.Category{cat}, lookup)
	second := ComputeUserStats([]domain.Video{v}, []domain.Category{cat}, lookup)

	if first.TotalMinutes != second.TotalMinutes || first.TotalProgress != second.TotalProgress {
		t.Fatalf("expected identical output for identical input: %+v vs %+v", first, second)
	}
}
