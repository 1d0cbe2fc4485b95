// Package availability answers "is this time schedulable" from the
// user's working-hours and holiday settings. It is a precondition layer
// consulted before the conflict resolver; the schedule engine itself
// knows nothing about business hours or holidays.
package availability

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// WorkWindow is a daily availability window in "15:04" wall-clock form.
// An empty window means the whole weekday is unavailable.
type WorkWindow struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Settings is the on-disk shape of the availability file.
type Settings struct {
	// WorkHours maps lowercase weekday names ("monday") to windows.
	// Weekdays absent from the map are unavailable.
	WorkHours map[string]WorkWindow `yaml:"work_hours"`
	// Holidays lists dates ("2006-01-02") with no availability at all.
	Holidays []string `yaml:"holidays"`
}

// Checker evaluates availability predicates against loaded settings.
// Safe for concurrent use; Reload may swap settings under readers.
type Checker struct {
	mu       sync.RWMutex
	path     string
	settings Settings
	holidays map[string]bool
}

// NewChecker loads the settings file at path. A missing file yields a
// permissive checker (always available): availability is an opt-in
// constraint, not a requirement for scheduling.
func NewChecker(path string) (*Checker, error) {
	c := &Checker{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the settings file.
func (c *Checker) Reload() error {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		c.mu.Lock()
		c.settings = Settings{}
		c.holidays = nil
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read availability file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse availability file: %w", err)
	}

	holidays := make(map[string]bool, len(s.Holidays))
	for _, h := range s.Holidays {
		if _, err := models.ParseDate(h); err != nil {
			return fmt.Errorf("holiday %q: %w", h, err)
		}
		holidays[h] = true
	}
	for day, w := range s.WorkHours {
		if _, err := parseWall(w.Start); err != nil {
			return fmt.Errorf("work hours %s start: %w", day, err)
		}
		if _, err := parseWall(w.End); err != nil {
			return fmt.Errorf("work hours %s end: %w", day, err)
		}
	}

	c.mu.Lock()
	c.settings = s
	c.holidays = holidays
	c.mu.Unlock()
	return nil
}

// IsHoliday reports whether the date is a configured holiday.
func (c *Checker) IsHoliday(d models.Date) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.holidays[d.String()]
}

// Allows reports whether a session starting at ts and running for the
// duration fits the configured availability. The second return value
// explains a rejection.
func (c *Checker) Allows(ts time.Time, duration time.Duration) (bool, string) {
	date := models.DateOf(ts)
	if c.IsHoliday(date) {
		return false, fmt.Sprintf("%s is a holiday", date)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.settings.WorkHours) == 0 {
		// No configured hours: everything is available.
		return true, ""
	}

	day := strings.ToLower(date.Weekday().String())
	window, ok := c.settings.WorkHours[day]
	if !ok {
		return false, fmt.Sprintf("no working hours on %s", date.Weekday())
	}

	start, _ := parseWall(window.Start)
	end, _ := parseWall(window.End)
	sessionStart := minutesOf(ts)
	sessionEnd := sessionStart + int(duration.Minutes())
	if sessionStart < start || sessionEnd > end {
		return false, fmt.Sprintf("outside working hours %s-%s", window.Start, window.End)
	}
	return true, ""
}

// parseWall parses a "15:04" wall-clock string into minutes after
// midnight.
func parseWall(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func minutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
