package availability

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

const sampleSettings = `
work_hours:
  monday:
    start: "09:00"
    end: "17:00"
  wednesday:
    start: "10:00"
    end: "16:00"
holidays:
  - "2024-12-25"
  - "2024-01-01"
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "availability.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestChecker_Allows(t *testing.T) {
	checker, err := NewChecker(writeSettings(t, sampleSettings))
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}

	tests := []struct {
		name     string
		ts       time.Time
		duration time.Duration
		want     bool
	}{
		// 2024-01-08 is a Monday.
		{"inside monday window", time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC), time.Hour, true},
		{"starts before window", time.Date(2024, time.January, 8, 8, 30, 0, 0, time.UTC), time.Hour, false},
		{"runs past window end", time.Date(2024, time.January, 8, 16, 30, 0, 0, time.UTC), time.Hour, false},
		{"ends exactly at window end", time.Date(2024, time.January, 8, 16, 0, 0, 0, time.UTC), time.Hour, true},
		{"weekday with no hours", time.Date(2024, time.January, 9, 10, 0, 0, 0, time.UTC), time.Hour, false},
		{"holiday rejected", time.Date(2024, time.December, 25, 10, 0, 0, 0, time.UTC), time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := checker.Allows(tt.ts, tt.duration)
			if got != tt.want {
				t.Errorf("Allows(%v) = %v (%s), want %v", tt.ts, got, reason, tt.want)
			}
			if !got && reason == "" {
				t.Error("rejection should carry a reason")
			}
		})
	}
}

func TestChecker_MissingFileIsPermissive(t *testing.T) {
	checker, err := NewChecker(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	if ok, _ := checker.Allows(time.Date(2024, time.January, 6, 3, 0, 0, 0, time.UTC), time.Hour); !ok {
		t.Error("missing settings file should allow everything")
	}
}

func TestChecker_NoWorkHoursStillChecksHolidays(t *testing.T) {
	checker, err := NewChecker(writeSettings(t, "holidays:\n  - \"2024-07-04\"\n"))
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	if ok, _ := checker.Allows(time.Date(2024, time.July, 4, 10, 0, 0, 0, time.UTC), time.Hour); ok {
		t.Error("holiday should be rejected even without work hours")
	}
	if ok, _ := checker.Allows(time.Date(2024, time.July, 5, 10, 0, 0, 0, time.UTC), time.Hour); !ok {
		t.Error("non-holiday should be allowed without work hours")
	}
}

func TestChecker_IsHoliday(t *testing.T) {
	checker, err := NewChecker(writeSettings(t, sampleSettings))
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	if !checker.IsHoliday(models.NewDate(2024, time.December, 25)) {
		t.Error("2024-12-25 should be a holiday")
	}
	if checker.IsHoliday(models.NewDate(2024, time.December, 26)) {
		t.Error("2024-12-26 should not be a holiday")
	}
}

func TestChecker_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad holiday", "holidays:\n  - \"not a date\"\n"},
		{"bad window", "work_hours:\n  monday:\n    start: \"nine\"\n    end: \"17:00\"\n"},
		{"bad yaml", ": not yaml ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewChecker(writeSettings(t, tt.content)); err == nil {
				t.Error("NewChecker should reject invalid settings")
			}
		})
	}
}

func TestChecker_Reload(t *testing.T) {
	path := writeSettings(t, sampleSettings)
	checker, err := NewChecker(path)
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}

	monday := time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)
	if ok, _ := checker.Allows(monday, time.Hour); !ok {
		t.Fatal("monday should be allowed before reload")
	}

	if err := os.WriteFile(path, []byte("work_hours:\n  friday:\n    start: \"09:00\"\n    end: \"12:00\"\n"), 0644); err != nil {
		t.Fatalf("rewrite settings: %v", err)
	}
	if err := checker.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if ok, _ := checker.Allows(monday, time.Hour); ok {
		t.Error("monday should be rejected after reload removed its hours")
	}
}
