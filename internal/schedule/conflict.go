package schedule

import (
	"sort"
	"time"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// Candidate is a proposed new schedule entry, checked against the
// existing definitions before it becomes a TaskDefinition.
type Candidate struct {
	// Start is the requested first occurrence.
	Start time.Time
	// DurationMinutes is the requested session length.
	DurationMinutes int
	// Recurrence is the requested repeat rule.
	Recurrence models.Recurrence
}

// Duration returns the candidate length as a time.Duration.
func (c Candidate) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// interval is an occupied half-open time range on the candidate's date.
type interval struct {
	start, end time.Time
	taskName   string
}

// FindSlot validates the candidate against the existing schedule.
//
// It returns the candidate's own start when nothing overlaps. On overlap
// it returns a ConflictError naming the first blocking definition and
// carrying the earliest start, past all blocking occurrences, at which
// the candidate's full duration fits. The suggestion is advisory;
// nothing is rescheduled automatically.
//
// Preconditions: the start must be strictly after now (PastDateError)
// and a recurrence end date must not precede the start's calendar date
// (InvalidRangeError).
func FindSlot(candidate Candidate, existing []models.TaskDefinition, now time.Time) (time.Time, error) {
	if !candidate.Start.After(now) {
		return time.Time{}, &PastDateError{Start: candidate.Start, Now: now}
	}
	date := models.DateOf(candidate.Start)
	if end := candidate.Recurrence.End; end != nil && end.Before(date) {
		return time.Time{}, &InvalidRangeError{Start: date, End: *end}
	}

	// Project every definition occurring on the candidate's date onto
	// that date: the occurrence keeps the definition's anchor
	// time-of-day on every repeat date.
	var busy []interval
	for i := range existing {
		def := &existing[i]
		if !OccursOn(def, date) {
			continue
		}
		start := date.At(def.AnchorStart)
		busy = append(busy, interval{
			start:    start,
			end:      start.Add(def.Duration()),
			taskName: def.Name,
		})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].start.Before(busy[j].start) })

	candStart := candidate.Start
	candEnd := candStart.Add(candidate.Duration())

	blocker, ok := firstOverlap(busy, candStart, candEnd)
	if !ok {
		return candidate.Start, nil
	}

	// Greedy probe: advance past each blocking interval until the full
	// duration fits. Each step moves strictly forward through a finite
	// sorted set, so this terminates.
	proposed := blocker.end
	for {
		next, found := firstOverlap(busy, proposed, proposed.Add(candidate.Duration()))
		if !found {
			break
		}
		proposed = next.end
	}

	return time.Time{}, &ConflictError{TaskName: blocker.taskName, NextAvailable: proposed}
}

// firstOverlap returns the earliest-sorted interval overlapping the
// half-open range [start, end). Exact abutment is not an overlap.
func firstOverlap(busy []interval, start, end time.Time) (interval, bool) {
	for _, iv := range busy {
		if start.Before(iv.end) && end.After(iv.start) {
			return iv, true
		}
	}
	return interval{}, false
}
