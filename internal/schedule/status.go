package schedule

import (
	"time"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// EffectiveStatus computes the per-occurrence state of a definition on a
// date. It never mutates the definition.
//
// The paused branch is reachable only for views that bypass OccursOn's
// filtering, such as an upcoming list that keeps paused recurring items
// visible. The now parameter is part of the read-path contract; status
// today does not depend on it but callers always have it in hand.
func EffectiveStatus(def *models.TaskDefinition, date models.Date, now time.Time) models.Status {
	if def.PausedOn(date) {
		return models.StatusPaused
	}
	if _, ok := def.CompletionOn(date); ok {
		return models.StatusCompleted
	}
	// Legacy path for once-off definitions completed before per-date
	// records existed.
	if def.Recurrence.Kind == models.RecurrenceOnce && def.Status == models.StatusCompleted {
		return models.StatusCompleted
	}
	return models.StatusPending
}
