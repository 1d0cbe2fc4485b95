package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dev-sekhar/deepwork1/internal/config"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

func TestResolveDefinition(t *testing.T) {
	defs := []models.TaskDefinition{
		{ID: "aaaa1111-0000-0000-0000-000000000000", Name: "Write chapter"},
		{ID: "bbbb2222-0000-0000-0000-000000000000", Name: "Email triage"},
		{ID: "bbbb3333-0000-0000-0000-000000000000", Name: "Review"},
	}

	tests := []struct {
		name    string
		key     string
		wantID  string
		wantErr bool
	}{
		{"full id", "aaaa1111-0000-0000-0000-000000000000", "aaaa1111-0000-0000-0000-000000000000", false},
		{"id prefix", "aaaa", "aaaa1111-0000-0000-0000-000000000000", false},
		{"exact name", "Email triage", "bbbb2222-0000-0000-0000-000000000000", false},
		{"name case insensitive", "email triage", "bbbb2222-0000-0000-0000-000000000000", false},
		{"ambiguous prefix", "bbbb", "", true},
		{"no match", "zzzz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := resolveDefinition(defs, tt.key)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveDefinition(%q) succeeded, want error", tt.key)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveDefinition(%q): %v", tt.key, err)
			}
			if def.ID != tt.wantID {
				t.Errorf("resolveDefinition(%q).ID = %s, want %s", tt.key, def.ID, tt.wantID)
			}
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays("mon, Wednesday,fri")
	if err != nil {
		t.Fatalf("parseWeekdays: %v", err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(days) != len(want) {
		t.Fatalf("got %d weekdays, want %d", len(days), len(want))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("weekday[%d] = %v, want %v", i, days[i], want[i])
		}
	}

	if _, err := parseWeekdays("mon,funday"); err == nil {
		t.Error("expected error for unknown weekday")
	}
}

func TestOpenWatchedChecker_PicksUpFileEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "availability.yaml")
	settings := "work_hours:\n  monday:\n    start: \"09:00\"\n    end: \"17:00\"\n"
	if err := os.WriteFile(path, []byte(settings), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	cfg := config.Default()
	cfg.Paths.AvailabilityFile = path

	checker, stop, err := openWatchedChecker(cfg)
	if err != nil {
		t.Fatalf("openWatchedChecker: %v", err)
	}
	defer stop()

	// 2024-01-08 is a Monday, inside the window.
	monday := time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)
	if ok, _ := checker.Allows(monday, time.Hour); !ok {
		t.Fatal("monday should be allowed before the file changes")
	}

	if err := os.WriteFile(path, []byte("holidays:\n  - \"2024-01-08\"\n"), 0644); err != nil {
		t.Fatalf("rewrite settings: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if ok, _ := checker.Allows(monday, time.Hour); !ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("watched checker did not pick up the settings change")
}

func TestShortID(t *testing.T) {
	if got := shortID("aaaa1111-0000"); got != "aaaa1111" {
		t.Errorf("shortID = %q, want aaaa1111", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID should keep short ids, got %q", got)
	}
}

func TestBuildRecurrence(t *testing.T) {
	reset := func() {
		scheduleDaily = false
		scheduleWeekly = ""
		scheduleMonthly = false
		scheduleUntil = ""
	}
	defer reset()

	reset()
	rec, err := buildRecurrence()
	if err != nil {
		t.Fatalf("buildRecurrence: %v", err)
	}
	if rec.IsRepeating() {
		t.Error("no flags should mean a once-off session")
	}

	reset()
	scheduleWeekly = "tue,thu"
	scheduleUntil = "2026-12-31"
	rec, err = buildRecurrence()
	if err != nil {
		t.Fatalf("buildRecurrence: %v", err)
	}
	if rec.Kind != models.RecurrenceWeekly || len(rec.Weekdays) != 2 {
		t.Errorf("got %+v, want weekly tue/thu", rec)
	}
	if rec.End == nil || rec.End.String() != "2026-12-31" {
		t.Errorf("End = %v, want 2026-12-31", rec.End)
	}

	reset()
	scheduleDaily = true
	scheduleMonthly = true
	if _, err := buildRecurrence(); err == nil {
		t.Error("conflicting repeat flags should error")
	}

	reset()
	scheduleUntil = "2026-12-31"
	if _, err := buildRecurrence(); err == nil {
		t.Error("--until without a repeat flag should error")
	}
}
