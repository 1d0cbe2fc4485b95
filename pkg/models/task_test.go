package models

import (
	"testing"
	"time"
)

func validDefinition() TaskDefinition {
	return TaskDefinition{
		ID:              "def-1",
		Name:            "Write chapter",
		DurationMinutes: 90,
		Kind:            KindDeepWork,
		DeepWork:        &DeepWorkDetails{Goal: "Finish draft", Ritual: []string{"Close email", "Water"}},
		AnchorStart:     time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
		Recurrence:      Daily(),
		Status:          StatusPending,
	}
}

func TestTaskDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TaskDefinition)
		wantErr bool
	}{
		{"valid", func(d *TaskDefinition) {}, false},
		{"empty name", func(d *TaskDefinition) { d.Name = "" }, true},
		{"zero duration", func(d *TaskDefinition) { d.DurationMinutes = 0 }, true},
		{"negative duration", func(d *TaskDefinition) { d.DurationMinutes = -30 }, true},
		{"unknown kind", func(d *TaskDefinition) { d.Kind = "nap" }, true},
		{"unknown recurrence", func(d *TaskDefinition) { d.Recurrence.Kind = "fortnightly" }, true},
		{"zero anchor", func(d *TaskDefinition) { d.AnchorStart = time.Time{} }, true},
		{"weekly without weekdays", func(d *TaskDefinition) { d.Recurrence = Weekly() }, true},
		{"weekly with weekdays", func(d *TaskDefinition) { d.Recurrence = Weekly(time.Monday) }, false},
		{"end before anchor", func(d *TaskDefinition) {
			end := NewDate(2023, time.December, 31)
			d.Recurrence.End = &end
		}, true},
		{"end on anchor date", func(d *TaskDefinition) {
			end := NewDate(2024, time.January, 1)
			d.Recurrence.End = &end
		}, false},
		{"inverted pause interval", func(d *TaskDefinition) {
			d.Pauses = []PauseInterval{{Start: NewDate(2024, time.March, 7), End: NewDate(2024, time.March, 1)}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(&def)
			err := def.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPauseInterval_Contains(t *testing.T) {
	p := PauseInterval{Start: NewDate(2024, time.March, 1), End: NewDate(2024, time.March, 7)}

	tests := []struct {
		name string
		d    Date
		want bool
	}{
		{"before", NewDate(2024, time.February, 29), false},
		{"first day", NewDate(2024, time.March, 1), true},
		{"middle", NewDate(2024, time.March, 4), true},
		{"last day", NewDate(2024, time.March, 7), true},
		{"after", NewDate(2024, time.March, 8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.d); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestTaskDefinition_Clone(t *testing.T) {
	def := validDefinition()
	def.Pauses = []PauseInterval{{Start: NewDate(2024, time.March, 1), End: NewDate(2024, time.March, 7)}}
	def.Completions = map[string]Completion{
		"2024-01-02": {Date: NewDate(2024, time.January, 2), Feedback: &Feedback{Rating: 4}},
	}

	clone := def.Clone()

	clone.Pauses[0].Reason = "changed"
	clone.DeepWork.Ritual[0] = "changed"
	clone.Completions["2024-01-02"] = Completion{Date: NewDate(2024, time.January, 2)}
	if c, _ := clone.Completions["2024-01-03"]; c.Date.IsZero() {
		clone.Completions["2024-01-03"] = Completion{Date: NewDate(2024, time.January, 3)}
	}

	if def.Pauses[0].Reason == "changed" {
		t.Error("Clone shares pause interval storage with original")
	}
	if def.DeepWork.Ritual[0] == "changed" {
		t.Error("Clone shares ritual storage with original")
	}
	if def.Completions["2024-01-02"].Feedback == nil {
		t.Error("Clone shares completion map with original")
	}
	if _, ok := def.Completions["2024-01-03"]; ok {
		t.Error("Clone shares completion map with original")
	}
}

func TestTaskDefinition_PausedOn(t *testing.T) {
	def := validDefinition()
	def.Pauses = []PauseInterval{
		{Start: NewDate(2024, time.March, 1), End: NewDate(2024, time.March, 3)},
		{Start: NewDate(2024, time.March, 3), End: NewDate(2024, time.March, 5)}, // overlap kept verbatim
	}

	if !def.PausedOn(NewDate(2024, time.March, 3)) {
		t.Error("PausedOn should be true inside overlapping intervals")
	}
	if def.PausedOn(NewDate(2024, time.March, 6)) {
		t.Error("PausedOn should be false outside all intervals")
	}
}

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusCompleted, true},
		{StatusPaused, true},
		{Status(""), false},
		{Status("done"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
