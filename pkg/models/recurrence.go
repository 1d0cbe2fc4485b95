package models

import "time"

// RecurrenceKind identifies how a task definition repeats.
type RecurrenceKind string

const (
	// RecurrenceOnce indicates a single, non-repeating occurrence.
	RecurrenceOnce RecurrenceKind = "once"
	// RecurrenceDaily repeats every calendar day.
	RecurrenceDaily RecurrenceKind = "daily"
	// RecurrenceWeekly repeats on a fixed set of weekdays.
	RecurrenceWeekly RecurrenceKind = "weekly"
	// RecurrenceMonthly repeats on the anchor's day of the month.
	RecurrenceMonthly RecurrenceKind = "monthly"
)

// Valid returns true if the kind is a known value.
func (k RecurrenceKind) Valid() bool {
	switch k {
	case RecurrenceOnce, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// Recurrence describes the repeat rule of a task definition.
type Recurrence struct {
	// Kind selects the repeat rule.
	Kind RecurrenceKind `json:"kind"`
	// Weekdays is the set of weekdays a weekly definition occurs on.
	// Only meaningful when Kind is RecurrenceWeekly.
	Weekdays []time.Weekday `json:"weekdays,omitempty"`
	// End is the last date on which occurrences may be generated.
	// Nil means no end date. Never meaningful for RecurrenceOnce.
	End *Date `json:"end,omitempty"`
}

// Once returns a non-repeating recurrence.
func Once() Recurrence {
	return Recurrence{Kind: RecurrenceOnce}
}

// Daily returns a daily recurrence.
func Daily() Recurrence {
	return Recurrence{Kind: RecurrenceDaily}
}

// Weekly returns a weekly recurrence on the given weekdays.
func Weekly(days ...time.Weekday) Recurrence {
	return Recurrence{Kind: RecurrenceWeekly, Weekdays: days}
}

// Monthly returns a monthly recurrence on the anchor's day of month.
func Monthly() Recurrence {
	return Recurrence{Kind: RecurrenceMonthly}
}

// IsRepeating reports whether the recurrence produces more than one
// occurrence.
func (r Recurrence) IsRepeating() bool {
	return r.Kind != RecurrenceOnce && r.Kind != ""
}

// OccursOnWeekday reports whether the weekday is in the weekly set.
func (r Recurrence) OccursOnWeekday(day time.Weekday) bool {
	for _, d := range r.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
