package availability

import (
	"os"
	"testing"
	"time"
)

func TestChecker_WatchReloadsOnChange(t *testing.T) {
	path := writeSettings(t, sampleSettings)
	checker, err := NewChecker(path)
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}

	stop := checker.Watch()
	defer stop()

	// 2024-01-08 is a Monday, inside the sample window.
	monday := time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)
	if ok, _ := checker.Allows(monday, time.Hour); !ok {
		t.Fatal("monday should be allowed before the file changes")
	}

	if err := os.WriteFile(path, []byte("work_hours:\n  friday:\n    start: \"09:00\"\n    end: \"12:00\"\n"), 0644); err != nil {
		t.Fatalf("rewrite settings: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if ok, _ := checker.Allows(monday, time.Hour); !ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("watcher did not pick up the settings change")
}
