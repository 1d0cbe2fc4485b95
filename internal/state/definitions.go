package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// Definition CRUD operations. Definitions round-trip whole: the caller
// reads the full list, runs the engine, and writes one updated
// definition back. List order is insertion order (rowid), which the
// expander relies on for its stable tie-break.

// CreateDefinition inserts a new definition with its pause intervals
// and completions.
func (db *DB) CreateDefinition(def *models.TaskDefinition) error {
	return db.Transaction(func(tx *sql.Tx) error {
		deepWork, chat, weekdays, err := marshalPayloads(def)
		if err != nil {
			return err
		}

		var recurrenceEnd *string
		if def.Recurrence.End != nil {
			s := def.Recurrence.End.String()
			recurrenceEnd = &s
		}

		_, err = tx.Exec(`
			INSERT INTO definitions (id, name, duration_minutes, kind, deep_work, chat,
				anchor_start, recurrence_kind, weekdays, recurrence_end, cancelled, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, def.ID, def.Name, def.DurationMinutes, string(def.Kind), deepWork, chat,
			formatTime(def.AnchorStart), string(def.Recurrence.Kind), weekdays, recurrenceEnd,
			boolToInt(def.Cancelled), string(def.Status), formatTime(def.CreatedAt))
		if err != nil {
			return fmt.Errorf("create definition: %w", err)
		}

		return writeChildren(tx, def)
	})
}

// UpdateDefinition replaces a stored definition with the given one.
// Pause intervals and completions are rewritten wholesale; the engine's
// mutators return complete updated definitions, not deltas.
func (db *DB) UpdateDefinition(def *models.TaskDefinition) error {
	return db.Transaction(func(tx *sql.Tx) error {
		deepWork, chat, weekdays, err := marshalPayloads(def)
		if err != nil {
			return err
		}

		var recurrenceEnd *string
		if def.Recurrence.End != nil {
			s := def.Recurrence.End.String()
			recurrenceEnd = &s
		}

		res, err := tx.Exec(`
			UPDATE definitions SET name = ?, duration_minutes = ?, kind = ?, deep_work = ?, chat = ?,
				anchor_start = ?, recurrence_kind = ?, weekdays = ?, recurrence_end = ?, cancelled = ?, status = ?
			WHERE id = ?
		`, def.Name, def.DurationMinutes, string(def.Kind), deepWork, chat,
			formatTime(def.AnchorStart), string(def.Recurrence.Kind), weekdays, recurrenceEnd,
			boolToInt(def.Cancelled), string(def.Status), def.ID)
		if err != nil {
			return fmt.Errorf("update definition: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update definition: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("update definition: no definition with id %s", def.ID)
		}

		if _, err := tx.Exec("DELETE FROM pause_intervals WHERE definition_id = ?", def.ID); err != nil {
			return fmt.Errorf("clear pause intervals: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM completions WHERE definition_id = ?", def.ID); err != nil {
			return fmt.Errorf("clear completions: %w", err)
		}

		return writeChildren(tx, def)
	})
}

// GetDefinition retrieves a definition by ID. Returns nil when absent.
func (db *DB) GetDefinition(id string) (*models.TaskDefinition, error) {
	defs, err := db.listDefinitions("WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, nil
	}
	return &defs[0], nil
}

// ListDefinitions lists all definitions in insertion order.
func (db *DB) ListDefinitions() ([]models.TaskDefinition, error) {
	return db.listDefinitions("")
}

func (db *DB) listDefinitions(where string, args ...any) ([]models.TaskDefinition, error) {
	rows, err := db.Query(`
		SELECT id, name, duration_minutes, kind, deep_work, chat,
			anchor_start, recurrence_kind, weekdays, recurrence_end, cancelled, status, created_at
		FROM definitions `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	var defs []models.TaskDefinition
	for rows.Next() {
		var def models.TaskDefinition
		var deepWork, chat, weekdays, recurrenceEnd sql.NullString
		var anchorStart, createdAt string
		var cancelled int

		if err := rows.Scan(&def.ID, &def.Name, &def.DurationMinutes, &def.Kind, &deepWork, &chat,
			&anchorStart, &def.Recurrence.Kind, &weekdays, &recurrenceEnd, &cancelled, &def.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}

		if deepWork.Valid && deepWork.String != "" {
			var details models.DeepWorkDetails
			if err := json.Unmarshal([]byte(deepWork.String), &details); err != nil {
				return nil, fmt.Errorf("decode deep work payload for %s: %w", def.ID, err)
			}
			def.DeepWork = &details
		}
		if chat.Valid && chat.String != "" {
			if err := json.Unmarshal([]byte(chat.String), &def.Chat); err != nil {
				return nil, fmt.Errorf("decode chat payload for %s: %w", def.ID, err)
			}
		}
		if weekdays.Valid && weekdays.String != "" {
			if err := json.Unmarshal([]byte(weekdays.String), &def.Recurrence.Weekdays); err != nil {
				return nil, fmt.Errorf("decode weekdays for %s: %w", def.ID, err)
			}
		}
		if recurrenceEnd.Valid && recurrenceEnd.String != "" {
			end, err := models.ParseDate(recurrenceEnd.String)
			if err != nil {
				return nil, fmt.Errorf("decode recurrence end for %s: %w", def.ID, err)
			}
			def.Recurrence.End = &end
		}
		def.Cancelled = cancelled != 0
		if def.AnchorStart, err = parseTime(anchorStart); err != nil {
			return nil, fmt.Errorf("decode anchor for %s: %w", def.ID, err)
		}
		if def.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("decode created_at for %s: %w", def.ID, err)
		}

		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}

	for i := range defs {
		if err := db.loadChildren(&defs[i]); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

func (db *DB) loadChildren(def *models.TaskDefinition) error {
	rows, err := db.Query(`
		SELECT start_date, end_date, reason FROM pause_intervals
		WHERE definition_id = ? ORDER BY position
	`, def.ID)
	if err != nil {
		return fmt.Errorf("load pause intervals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var startStr, endStr string
		var reason sql.NullString
		if err := rows.Scan(&startStr, &endStr, &reason); err != nil {
			return fmt.Errorf("scan pause interval: %w", err)
		}
		start, err := models.ParseDate(startStr)
		if err != nil {
			return fmt.Errorf("decode pause start for %s: %w", def.ID, err)
		}
		end, err := models.ParseDate(endStr)
		if err != nil {
			return fmt.Errorf("decode pause end for %s: %w", def.ID, err)
		}
		def.Pauses = append(def.Pauses, models.PauseInterval{Start: start, End: end, Reason: reason.String})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load pause intervals: %w", err)
	}

	crows, err := db.Query(`
		SELECT date, completed_at, rating, notes FROM completions
		WHERE definition_id = ?
	`, def.ID)
	if err != nil {
		return fmt.Errorf("load completions: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var dateStr, completedAt string
		var rating sql.NullInt64
		var notes sql.NullString
		if err := crows.Scan(&dateStr, &completedAt, &rating, &notes); err != nil {
			return fmt.Errorf("scan completion: %w", err)
		}
		date, err := models.ParseDate(dateStr)
		if err != nil {
			return fmt.Errorf("decode completion date for %s: %w", def.ID, err)
		}
		c := models.Completion{Date: date}
		if c.CompletedAt, err = parseTime(completedAt); err != nil {
			return fmt.Errorf("decode completion time for %s: %w", def.ID, err)
		}
		if rating.Valid {
			c.Feedback = &models.Feedback{Rating: int(rating.Int64), Notes: notes.String}
		}
		if def.Completions == nil {
			def.Completions = make(map[string]models.Completion)
		}
		def.Completions[dateStr] = c
	}
	return crows.Err()
}

// writeChildren inserts pause intervals and completions for a definition.
func writeChildren(tx *sql.Tx, def *models.TaskDefinition) error {
	for i, p := range def.Pauses {
		var reason *string
		if p.Reason != "" {
			reason = &p.Reason
		}
		if _, err := tx.Exec(`
			INSERT INTO pause_intervals (definition_id, position, start_date, end_date, reason)
			VALUES (?, ?, ?, ?, ?)
		`, def.ID, i, p.Start.String(), p.End.String(), reason); err != nil {
			return fmt.Errorf("write pause interval: %w", err)
		}
	}

	for dateKey, c := range def.Completions {
		var rating *int
		var notes *string
		if c.Feedback != nil {
			rating = &c.Feedback.Rating
			if c.Feedback.Notes != "" {
				notes = &c.Feedback.Notes
			}
		}
		if _, err := tx.Exec(`
			INSERT INTO completions (definition_id, date, completed_at, rating, notes)
			VALUES (?, ?, ?, ?, ?)
		`, def.ID, dateKey, formatTime(c.CompletedAt), rating, notes); err != nil {
			return fmt.Errorf("write completion: %w", err)
		}
	}
	return nil
}

func marshalPayloads(def *models.TaskDefinition) (deepWork, chat, weekdays *string, err error) {
	if def.DeepWork != nil {
		b, err := json.Marshal(def.DeepWork)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encode deep work payload: %w", err)
		}
		s := string(b)
		deepWork = &s
	}
	if len(def.Chat) > 0 {
		b, err := json.Marshal(def.Chat)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encode chat payload: %w", err)
		}
		s := string(b)
		chat = &s
	}
	if len(def.Recurrence.Weekdays) > 0 {
		b, err := json.Marshal(def.Recurrence.Weekdays)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encode weekdays: %w", err)
		}
		s := string(b)
		weekdays = &s
	}
	return deepWork, chat, weekdays, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
