package schedule

import (
	"fmt"
	"time"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// Lifecycle mutations. Each takes a definition by value and returns an
// updated copy for the caller to persist; the input is never modified.
// None of them read the clock; where a mutation is time-sensitive the
// reference time is an explicit parameter.

// CancelOnce soft-deletes a once-off definition. Idempotent. Recurring
// definitions are rejected; they are removed by end-dating instead.
func CancelOnce(def models.TaskDefinition) (models.TaskDefinition, error) {
	if def.Recurrence.IsRepeating() {
		return def, fmt.Errorf("cancel applies only to once-off tasks; end-date %q instead", def.Name)
	}
	out := def.Clone()
	out.Cancelled = true
	return out, nil
}

// EndRecurring end-dates a recurring definition as of the given date.
// An existing earlier end date is kept; end-dating never extends a
// definition. Past occurrences and their completion records stay
// visible in history.
func EndRecurring(def models.TaskDefinition, asOf models.Date) (models.TaskDefinition, error) {
	if !def.Recurrence.IsRepeating() {
		return def, fmt.Errorf("end-dating applies only to recurring tasks; cancel %q instead", def.Name)
	}
	out := def.Clone()
	if out.Recurrence.End == nil || asOf.Before(*out.Recurrence.End) {
		end := asOf
		out.Recurrence.End = &end
	}
	return out, nil
}

// AddPause appends a pause interval. The interval is stored exactly as
// submitted: overlapping or duplicate intervals are kept verbatim and
// never coalesced.
func AddPause(def models.TaskDefinition, interval models.PauseInterval) (models.TaskDefinition, error) {
	if interval.End.Before(interval.Start) {
		return def, &InvalidRangeError{Start: interval.Start, End: interval.End}
	}
	out := def.Clone()
	out.Pauses = append(out.Pauses, interval)
	return out, nil
}

// UnpauseNow shortens the most recently added pause interval to end at
// now's calendar date. It only ever touches the last-added interval,
// even when an earlier one is the interval currently in effect, and it
// is a no-op when the last interval already ended.
func UnpauseNow(def models.TaskDefinition, now time.Time) models.TaskDefinition {
	if len(def.Pauses) == 0 {
		return def.Clone()
	}
	out := def.Clone()
	last := &out.Pauses[len(out.Pauses)-1]
	today := models.DateOf(now)
	if today.Before(last.End) {
		last.End = today
		if last.End.Before(last.Start) {
			last.End = last.Start
		}
	}
	return out
}

// RecordCompletion upserts the completion record for an occurrence
// date, replacing any existing entry for that date. For once-off
// definitions it also sets the coarse status to completed.
func RecordCompletion(def models.TaskDefinition, date models.Date, feedback *models.Feedback, now time.Time) models.TaskDefinition {
	out := def.Clone()
	if out.Completions == nil {
		out.Completions = make(map[string]models.Completion, 1)
	}
	out.Completions[date.String()] = models.Completion{
		Date:        date,
		CompletedAt: now,
		Feedback:    feedback,
	}
	if !out.Recurrence.IsRepeating() {
		out.Status = models.StatusCompleted
	}
	return out
}
