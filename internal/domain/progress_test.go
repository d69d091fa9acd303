package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestProgressApplyCompletionEdgeOnce(t *testing.T) {
	rec := ProgressRecord{UserID: uuid.New(), VideoID: uuid.New()}
	now := time.Now()

	edge, err := rec.Apply(60, false, now)
	if err != nil || edge {
		t.Fatalf("expected no edge at 60, got edge=%v err=%v", edge, err)
	}

	edge, err = rec.Apply(100, false, now)
	if err != nil || !edge {
		t.Fatalf("expected edge at first 100, got edge=%v err=%v", edge, err)
	}

	edge, err = rec.Apply(100, false, now)
	if err != nil || edge {
		t.Fatalf("repeated 100 must not fire edge again, got edge=%v err=%v", edge, err)
	}
}

func TestProgressApplyDoubleHundredFiresOnce(t *testing.T) {
	rec := ProgressRecord{}
	now := time.Now()

	fired := 0
	for i := 0; i < 2; i++ {
		edge, err := rec.Apply(100, false, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if edge {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("expected exactly one edge, got %d", fired)
	}
}

func TestProgressApplyNoRegressWithoutReset(t *testing.T) {
	rec := ProgressRecord{}
	now := time.Now()

	if _, err := rec.Apply(80, false, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := rec.Apply(40, false, now)
	if !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}
	if rec.Percent != 80 {
		t.Fatalf("stored percent must stay at 80, got %d", rec.Percent)
	}
}

func TestProgressApplyResetAllowsRegress(t *testing.T) {
	rec := ProgressRecord{}
	now := time.Now()

	if _, err := rec.Apply(100, false, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := rec.Apply(10, true, now); err != nil {
		t.Fatalf("reset must allow regress, got %v", err)
	}
	if rec.Percent != 10 || rec.Completed {
		t.Fatalf("expected percent 10 and cleared latch, got %+v", rec)
	}

	// После сброса защёлки завершение снова даёт edge
	edge, err := rec.Apply(100, false, now)
	if err != nil || !edge {
		t.Fatalf("expected edge after reset, got edge=%v err=%v", edge, err)
	}
}

func TestProgressApplyRejectsOutOfRange(t *testing.T) {
	rec := ProgressRecord{Percent: 50}
	now := time.Now()

	for _, percent := range []int{-1, 101, 1000} {
		_, err := rec.Apply(percent, false, now)
		if !errors.Is(err, ErrInvalidProgress) {
			t.Fatalf("percent %d: expected ErrInvalidProgress, got %v", percent, err)
		}
	}
	if rec.Percent != 50 {
		t.Fatalf("record must stay untouched, got %d", rec.Percent)
	}
}

func TestProgressApplyEqualPercentIsIdempotent(t *testing.T) {
	rec := ProgressRecord{}
	now := time.Now()

	if _, err := rec.Apply(70, false, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edge, err := rec.Apply(70, false, now.Add(time.Minute))
	if err != nil || edge {
		t.Fatalf("equal percent must be accepted without edge, got edge=%v err=%v", edge, err)
	}
}
