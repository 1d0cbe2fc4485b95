package schedule

import (
	"fmt"
	"time"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// PastDateError indicates a candidate start that is not strictly after
// the reference time. It is surfaced to the user and never retried
// automatically.
type PastDateError struct {
	// Start is the rejected candidate start.
	Start time.Time
	// Now is the reference time the start was compared against.
	Now time.Time
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("start %s is not after %s", e.Start.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

// InvalidRangeError indicates an end date or pause end that precedes
// its start.
type InvalidRangeError struct {
	// Start is the beginning of the rejected range.
	Start models.Date
	// End is the end of the rejected range.
	End models.Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("range end %s precedes start %s", e.End, e.Start)
}

// ConflictError is the normal negative result of FindSlot: the candidate
// overlaps an existing occurrence. It carries an advisory alternative;
// the caller decides whether to accept it or resubmit with a new time.
type ConflictError struct {
	// TaskName is the display name of the first blocking definition.
	TaskName string
	// NextAvailable is the earliest start at which the candidate's full
	// duration fits after the blocking occurrences.
	NextAvailable time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicts with %q, next available %s", e.TaskName, e.NextAvailable.Format("15:04"))
}
