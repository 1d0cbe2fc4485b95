package schedule

import (
	"sort"
	"time"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// OccursOn reports whether the definition produces an occurrence on the
// given calendar date.
//
// A monthly definition anchored on day 31 never occurs in a shorter
// month; the day-of-month comparison is literal and nothing rolls over
// to the last day. That is intentional, not an oversight.
func OccursOn(def *models.TaskDefinition, date models.Date) bool {
	if def.PausedOn(date) {
		return false
	}
	return matchesRule(def, date)
}

// matchesRule reports whether the recurrence rule alone puts an
// occurrence on the date, disregarding pause intervals.
func matchesRule(def *models.TaskDefinition, date models.Date) bool {
	if def.Cancelled {
		return false
	}
	if end := def.Recurrence.End; end != nil && date.After(*end) {
		return false
	}

	anchor := def.AnchorDate()
	if def.Recurrence.Kind == models.RecurrenceOnce {
		return date.Equal(anchor)
	}
	// Repeating definitions never occur before their anchor.
	if date.Before(anchor) {
		return false
	}

	switch def.Recurrence.Kind {
	case models.RecurrenceDaily:
		return true
	case models.RecurrenceWeekly:
		return def.Recurrence.OccursOnWeekday(date.Weekday())
	case models.RecurrenceMonthly:
		return date.Day == anchor.Day
	default:
		return false
	}
}

// OccurrencesOn filters the definitions down to those occurring on the
// date, sorted ascending by the anchor's time-of-day. The sort is
// stable, so definitions at the same time keep their input order.
func OccurrencesOn(defs []models.TaskDefinition, date models.Date) []models.TaskDefinition {
	var out []models.TaskDefinition
	for _, def := range defs {
		if OccursOn(&def, date) {
			out = append(out, def)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return minuteOfDay(out[i].AnchorStart) < minuteOfDay(out[j].AnchorStart)
	})
	return out
}

// Occurrence is one row of a derived schedule snapshot: a definition,
// the date it occurs on, and its effective status on that date.
type Occurrence struct {
	Def    models.TaskDefinition
	Date   models.Date
	Status models.Status
}

// Snapshot expands the definitions over the inclusive date range and
// overlays effective status per occurrence. Rows are ordered by date,
// then by anchor time-of-day.
func Snapshot(defs []models.TaskDefinition, from, to models.Date, now time.Time) []Occurrence {
	var out []Occurrence
	for date := from; !date.After(to); date = date.AddDays(1) {
		for _, def := range OccurrencesOn(defs, date) {
			out = append(out, Occurrence{
				Def:    def,
				Date:   date,
				Status: EffectiveStatus(&def, date, now),
			})
		}
	}
	return out
}

// SnapshotWithPaused expands like Snapshot but keeps dates where a
// repeating definition is silenced only by a pause interval. Those rows
// carry StatusPaused, so agenda views can show paused sessions instead
// of silently dropping them. Paused once-off definitions stay hidden.
func SnapshotWithPaused(defs []models.TaskDefinition, from, to models.Date, now time.Time) []Occurrence {
	var out []Occurrence
	for date := from; !date.After(to); date = date.AddDays(1) {
		var day []models.TaskDefinition
		for _, def := range defs {
			if OccursOn(&def, date) || pausedOccurrence(&def, date) {
				day = append(day, def)
			}
		}
		sort.SliceStable(day, func(i, j int) bool {
			return minuteOfDay(day[i].AnchorStart) < minuteOfDay(day[j].AnchorStart)
		})
		for _, def := range day {
			out = append(out, Occurrence{
				Def:    def,
				Date:   date,
				Status: EffectiveStatus(&def, date, now),
			})
		}
	}
	return out
}

// pausedOccurrence reports whether a repeating definition would occur
// on the date but for a pause interval.
func pausedOccurrence(def *models.TaskDefinition, date models.Date) bool {
	return def.Recurrence.IsRepeating() && def.PausedOn(date) && matchesRule(def, date)
}

// minuteOfDay collapses a timestamp to its minute offset within the day.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
