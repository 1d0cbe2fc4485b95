package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

func TestFindSlot_PastDate(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
	}{
		{"in the past", now.Add(-time.Hour)},
		{"exactly now", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindSlot(Candidate{Start: tt.start, DurationMinutes: 30, Recurrence: models.Once()}, nil, now)
			var pastErr *PastDateError
			if !errors.As(err, &pastErr) {
				t.Fatalf("FindSlot error = %v, want PastDateError", err)
			}
		})
	}
}

func TestFindSlot_InvalidRange(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	end := models.NewDate(2024, time.May, 19)

	_, err := FindSlot(Candidate{
		Start:           start,
		DurationMinutes: 30,
		Recurrence:      models.Recurrence{Kind: models.RecurrenceDaily, End: &end},
	}, nil, now)

	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("FindSlot error = %v, want InvalidRangeError", err)
	}
}

func TestFindSlot_NoConflict(t *testing.T) {
	now := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)
	existing := []models.TaskDefinition{
		defWith("morning", time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), 60, models.Daily()),
	}

	start := time.Date(2024, time.January, 2, 11, 0, 0, 0, time.UTC)
	got, err := FindSlot(Candidate{Start: start, DurationMinutes: 45, Recurrence: models.Once()}, existing, now)
	if err != nil {
		t.Fatalf("FindSlot: %v", err)
	}
	if !got.Equal(start) {
		t.Errorf("FindSlot = %v, want requested start %v", got, start)
	}
}

func TestFindSlot_AbutmentIsNotConflict(t *testing.T) {
	now := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)
	existing := []models.TaskDefinition{
		defWith("block", time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), 60, models.Daily()),
	}

	// Starting exactly when the existing occurrence ends is fine.
	start := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)
	got, err := FindSlot(Candidate{Start: start, DurationMinutes: 30, Recurrence: models.Once()}, existing, now)
	if err != nil {
		t.Fatalf("FindSlot: %v", err)
	}
	if !got.Equal(start) {
		t.Errorf("FindSlot = %v, want %v", got, start)
	}

	// Ending exactly when the existing occurrence starts is fine too.
	start = time.Date(2024, time.January, 2, 8, 30, 0, 0, time.UTC)
	got, err = FindSlot(Candidate{Start: start, DurationMinutes: 30, Recurrence: models.Once()}, existing, now)
	if err != nil {
		t.Fatalf("FindSlot: %v", err)
	}
	if !got.Equal(start) {
		t.Errorf("FindSlot = %v, want %v", got, start)
	}
}

func TestFindSlot_ChainedConflictSuggestsPastBothBlocks(t *testing.T) {
	// A occupies 09:00-10:30, B occupies 10:30-11:00. A 60-minute
	// candidate at 09:30 conflicts with A; 10:30 would still collide
	// with B, so the suggestion must be 11:00.
	now := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)
	existing := []models.TaskDefinition{
		defWith("A", time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), 90, models.Daily()),
		defWith("B", time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC), 30, models.Daily()),
	}

	start := time.Date(2024, time.January, 8, 9, 30, 0, 0, time.UTC)
	_, err := FindSlot(Candidate{Start: start, DurationMinutes: 60, Recurrence: models.Once()}, existing, now)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("FindSlot error = %v, want ConflictError", err)
	}
	if conflict.TaskName != "A" {
		t.Errorf("blocking task = %q, want %q", conflict.TaskName, "A")
	}
	want := time.Date(2024, time.January, 8, 11, 0, 0, 0, time.UTC)
	if !conflict.NextAvailable.Equal(want) {
		t.Errorf("NextAvailable = %v, want %v", conflict.NextAvailable, want)
	}
}

func TestFindSlot_WeeklyExistingOnlyBlocksMatchingWeekday(t *testing.T) {
	now := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)
	existing := []models.TaskDefinition{
		// Mondays only.
		defWith("planning", time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), 60, models.Weekly(time.Monday)),
	}

	// Tuesday at the same hour is free.
	tuesday := time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)
	if _, err := FindSlot(Candidate{Start: tuesday, DurationMinutes: 60, Recurrence: models.Once()}, existing, now); err != nil {
		t.Errorf("Tuesday slot should be free, got %v", err)
	}

	// The following Monday is blocked.
	monday := time.Date(2024, time.January, 8, 9, 30, 0, 0, time.UTC)
	var conflict *ConflictError
	if _, err := FindSlot(Candidate{Start: monday, DurationMinutes: 60, Recurrence: models.Once()}, existing, now); !errors.As(err, &conflict) {
		t.Errorf("Monday slot should conflict, got %v", err)
	}
}

func TestFindSlot_PausedExistingDoesNotBlock(t *testing.T) {
	now := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)
	blocked := defWith("retro", time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), 60, models.Daily())
	blocked.Pauses = []models.PauseInterval{
		{Start: models.NewDate(2024, time.January, 5), End: models.NewDate(2024, time.January, 10)},
	}

	start := time.Date(2024, time.January, 7, 9, 0, 0, 0, time.UTC)
	got, err := FindSlot(Candidate{Start: start, DurationMinutes: 60, Recurrence: models.Once()}, []models.TaskDefinition{blocked}, now)
	if err != nil {
		t.Fatalf("paused existing definition should not block: %v", err)
	}
	if !got.Equal(start) {
		t.Errorf("FindSlot = %v, want %v", got, start)
	}
}

func TestFindSlot_EndDatedExistingDoesNotBlock(t *testing.T) {
	now := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)
	ended := defWith("old habit", time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), 60, models.Daily())
	end := models.NewDate(2024, time.January, 5)
	ended.Recurrence.End = &end

	start := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	if _, err := FindSlot(Candidate{Start: start, DurationMinutes: 60, Recurrence: models.Once()}, []models.TaskDefinition{ended}, now); err != nil {
		t.Errorf("end-dated definition should not block, got %v", err)
	}
}
