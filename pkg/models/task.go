package models

import (
	"fmt"
	"time"
)

// Status is the coarse lifecycle flag of a task definition. It is
// authoritative only for once-off definitions; recurring definitions
// track completion per occurrence date instead.
type Status string

const (
	// StatusPending indicates the definition has not been completed.
	StatusPending Status = "pending"
	// StatusCompleted indicates a once-off definition was completed.
	StatusCompleted Status = "completed"
	// StatusPaused is an effective per-occurrence state, never stored.
	StatusPaused Status = "paused"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusPaused:
		return true
	default:
		return false
	}
}

// PauseInterval is a closed, inclusive date range during which a
// recurring definition produces no occurrences. Intervals are stored
// exactly as submitted; overlapping or adjacent intervals are never
// merged.
type PauseInterval struct {
	// Start is the first paused date.
	Start Date `json:"start"`
	// End is the last paused date. Start <= End always holds.
	End Date `json:"end"`
	// Reason is the user-supplied explanation, if any.
	Reason string `json:"reason,omitempty"`
}

// Contains reports whether the date falls within the interval,
// inclusive on both ends.
func (p PauseInterval) Contains(d Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Feedback is an optional rating recorded alongside a completion.
type Feedback struct {
	// Rating is a 1-5 focus quality score.
	Rating int `json:"rating"`
	// Notes is free-form reflection text.
	Notes string `json:"notes,omitempty"`
}

// Completion records that one occurrence of a definition was finished.
type Completion struct {
	// Date is the occurrence's local calendar date.
	Date Date `json:"date"`
	// CompletedAt is when the completion was recorded.
	CompletedAt time.Time `json:"completed_at"`
	// Feedback is the optional rating record.
	Feedback *Feedback `json:"feedback,omitempty"`
}

// TaskDefinition is the persistent, user-authored scheduling entity.
// A definition is expanded into concrete occurrences per calendar date;
// it is mutated in place by lifecycle operations and never physically
// deleted (cancellation and end-dating are the only removal paths).
type TaskDefinition struct {
	// ID is the opaque unique identifier, immutable once assigned.
	ID string `json:"id"`
	// Name is the non-empty display name.
	Name string `json:"name"`
	// DurationMinutes is the session length, always positive.
	DurationMinutes int `json:"duration_minutes"`
	// Kind is the session flavor.
	Kind TaskKind `json:"kind"`
	// DeepWork carries the goal and ritual for deep work definitions.
	DeepWork *DeepWorkDetails `json:"deep_work,omitempty"`
	// Chat is the transcript for AI-assisted definitions.
	Chat []ChatMessage `json:"chat,omitempty"`
	// AnchorStart marks the first occurrence. For repeating definitions
	// only its time-of-day (and day-of-month for monthly) applies to
	// later occurrences.
	AnchorStart time.Time `json:"anchor_start"`
	// Recurrence is the repeat rule.
	Recurrence Recurrence `json:"recurrence"`
	// Cancelled is the soft-delete flag, meaningful only for once-off
	// definitions.
	Cancelled bool `json:"cancelled,omitempty"`
	// Pauses lists paused date ranges, in submission order.
	Pauses []PauseInterval `json:"pauses,omitempty"`
	// Status is the coarse lifecycle flag, authoritative for once-off
	// definitions only.
	Status Status `json:"status"`
	// Completions maps occurrence dates (DateLayout strings) to their
	// completion records. At most one entry per date.
	Completions map[string]Completion `json:"completions,omitempty"`
	// CreatedAt is when the definition was created.
	CreatedAt time.Time `json:"created_at"`
}

// AnchorDate returns the calendar date of the first occurrence.
func (t *TaskDefinition) AnchorDate() Date {
	return DateOf(t.AnchorStart)
}

// Duration returns the session length as a time.Duration.
func (t *TaskDefinition) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}

// CompletionOn returns the completion recorded for the date, if any.
func (t *TaskDefinition) CompletionOn(d Date) (Completion, bool) {
	c, ok := t.Completions[d.String()]
	return c, ok
}

// PausedOn reports whether the date lies within any pause interval.
func (t *TaskDefinition) PausedOn(d Date) bool {
	for _, p := range t.Pauses {
		if p.Contains(d) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the definition. Lifecycle operations
// mutate the clone and leave the receiver untouched.
func (t *TaskDefinition) Clone() TaskDefinition {
	out := *t
	if t.DeepWork != nil {
		dw := *t.DeepWork
		dw.Ritual = append([]string(nil), t.DeepWork.Ritual...)
		out.DeepWork = &dw
	}
	out.Chat = append([]ChatMessage(nil), t.Chat...)
	out.Pauses = append([]PauseInterval(nil), t.Pauses...)
	if t.Recurrence.End != nil {
		end := *t.Recurrence.End
		out.Recurrence.End = &end
	}
	out.Recurrence.Weekdays = append([]time.Weekday(nil), t.Recurrence.Weekdays...)
	if t.Completions != nil {
		out.Completions = make(map[string]Completion, len(t.Completions))
		for k, v := range t.Completions {
			if v.Feedback != nil {
				fb := *v.Feedback
				v.Feedback = &fb
			}
			out.Completions[k] = v
		}
	}
	return out
}

// Validate checks structural invariants of the definition.
func (t *TaskDefinition) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name must not be empty")
	}
	if t.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive, got %d", t.DurationMinutes)
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("unknown task kind %q", t.Kind)
	}
	if !t.Recurrence.Kind.Valid() {
		return fmt.Errorf("unknown recurrence kind %q", t.Recurrence.Kind)
	}
	if t.AnchorStart.IsZero() {
		return fmt.Errorf("anchor start must be set")
	}
	if t.Recurrence.Kind == RecurrenceWeekly && len(t.Recurrence.Weekdays) == 0 {
		return fmt.Errorf("weekly recurrence needs at least one weekday")
	}
	if end := t.Recurrence.End; end != nil && end.Before(t.AnchorDate()) {
		return fmt.Errorf("recurrence end %s precedes anchor date %s", end, t.AnchorDate())
	}
	for i, p := range t.Pauses {
		if p.End.Before(p.Start) {
			return fmt.Errorf("pause interval %d: end %s precedes start %s", i, p.End, p.Start)
		}
	}
	return nil
}
