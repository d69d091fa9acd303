package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
)

func TestProgressUpdateCompletionEdgeIncrementsOnce(t *testing.T) {
	video := &domain.Video{ID: uuid.New(), Title: "Go desde cero", Duration: 30}
	catalog := newFakeCatalog(video)
	store := newFakeProgressStore()
	uc := NewProgressUseCase(store, catalog, testLogger())

	userID := uuid.New()
	ctx := context.Background()

	if _, err := uc.Update(ctx, userID, video.ID, 60, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Update(ctx, userID, video.ID, 100, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Update(ctx, userID, video.ID, 100, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if catalog.completions[video.ID] != 1 {
		t.Fatalf("expected exactly one completion increment, got %d", catalog.completions[video.ID])
	}

	rec, err := uc.Get(ctx, userID, video.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Percent != 100 || !rec.Completed {
		t.Fatalf("expected completed record, got %+v", rec)
	}
}

func TestProgressUpdateOutOfOrderKeepsStored(t *testing.T) {
	video := &domain.Video{ID: uuid.New(), Duration: 10}
	store := newFakeProgressStore()
	uc := NewProgressUseCase(store, newFakeCatalog(video), testLogger())

	userID := uuid.New()
	ctx := context.Background()

	if _, err := uc.Update(ctx, userID, video.ID, 80, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Запоздавший ретрай со старым процентом
	_, err := uc.Update(ctx, userID, video.ID, 40, false)
	if !errors.Is(err, domain.ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}

	rec, err := uc.Get(ctx, userID, video.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Percent != 80 {
		t.Fatalf("expected stored 80, got %d", rec.Percent)
	}
}

func TestProgressUpdateRejectsInvalidPercent(t *testing.T) {
	video := &domain.Video{ID: uuid.New()}
	uc := NewProgressUseCase(newFakeProgressStore(), newFakeCatalog(video), testLogger())

	_, err := uc.Update(context.Background(), uuid.New(), video.ID, 120, false)
	if !errors.Is(err, domain.ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}
}

func TestProgressUpdateUnknownVideo(t *testing.T) {
	uc := NewProgressUseCase(newFakeProgressStore(), newFakeCatalog(), testLogger())

	_, err := uc.Update(context.Background(), uuid.New(), uuid.New(), 50, false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProgressLookupSnapshot(t *testing.T) {
	v1 := &domain.Video{ID: uuid.New()}
	v2 := &domain.Video{ID: uuid.New()}
	store := newFakeProgressStore()
	uc := NewProgressUseCase(store, newFakeCatalog(v1, v2), testLogger())

	userID := uuid.New()
	ctx := context.Background()

	if _, err := uc.Update(ctx, userID, v1.ID, 30, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lookup, err := uc.LookupFor(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, ok := lookup(v1.ID); !ok || p != 30 {
		t.Fatalf("expected 30 for v1, got %d ok=%v", p, ok)
	}
	if _, ok := lookup(v2.ID); ok {
		t.Fatalf("v2 must have no record")
	}
}
