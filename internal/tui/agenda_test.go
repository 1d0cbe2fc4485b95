package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

func TestAgenda_RenderDay(t *testing.T) {
	date := models.NewDate(2024, time.March, 4)
	occ := schedule.Occurrence{
		Def: models.TaskDefinition{
			Name:            "Write chapter",
			DurationMinutes: 90,
			AnchorStart:     time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
		},
		Date:   date,
		Status: models.StatusPending,
	}

	out := NewAgenda().RenderDay(date, []schedule.Occurrence{occ})

	for _, want := range []string{"2024-03-04", "Monday", "09:00", "10:30", "Write chapter"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderDay output missing %q:\n%s", want, out)
		}
	}
}

func TestAgenda_RenderDayPausedBadge(t *testing.T) {
	date := models.NewDate(2024, time.March, 6)
	occ := schedule.Occurrence{
		Def: models.TaskDefinition{
			Name:            "Daily review",
			DurationMinutes: 30,
			AnchorStart:     time.Date(2024, time.March, 1, 17, 0, 0, 0, time.UTC),
		},
		Date:   date,
		Status: models.StatusPaused,
	}

	out := NewAgenda().RenderDay(date, []schedule.Occurrence{occ})
	if !strings.Contains(out, "⏸") {
		t.Errorf("paused occurrence should carry the paused badge:\n%s", out)
	}
}

func TestAgenda_RenderDayEmpty(t *testing.T) {
	out := NewAgenda().RenderDay(models.NewDate(2024, time.March, 5), nil)
	if !strings.Contains(out, "nothing scheduled") {
		t.Errorf("empty day should say so:\n%s", out)
	}
}

func TestAgenda_RenderRangeGroupsByDate(t *testing.T) {
	from := models.NewDate(2024, time.March, 4)
	to := models.NewDate(2024, time.March, 5)
	snapshot := []schedule.Occurrence{
		{
			Def: models.TaskDefinition{
				Name:            "Daily review",
				DurationMinutes: 30,
				AnchorStart:     time.Date(2024, time.March, 1, 17, 0, 0, 0, time.UTC),
			},
			Date:   from,
			Status: models.StatusCompleted,
		},
		{
			Def: models.TaskDefinition{
				Name:            "Daily review",
				DurationMinutes: 30,
				AnchorStart:     time.Date(2024, time.March, 1, 17, 0, 0, 0, time.UTC),
			},
			Date:   to,
			Status: models.StatusPending,
		},
	}

	out := NewAgenda().RenderRange(from, to, snapshot)

	if !strings.Contains(out, "2024-03-04") || !strings.Contains(out, "2024-03-05") {
		t.Errorf("range output should include both date headers:\n%s", out)
	}
	if strings.Count(out, "Daily review") != 2 {
		t.Errorf("expected one row per day:\n%s", out)
	}
}
