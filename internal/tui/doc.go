// Package tui provides the terminal user interface for deepwork.
//
// It contains two pieces:
//   - TimerApp, a bubbletea countdown timer for running a focus session
//   - agenda rendering helpers used by the today and upcoming commands
//
// The timer is read-only apart from pause/resume. Users pause with 'p'
// and quit with 'q' or Ctrl+C.
//
// Usage:
//
//	program := tui.NewTimerProgram(tui.TimerConfig{
//	    TaskName: "Write chapter 3",
//	    Duration: 90 * time.Minute,
//	})
//	model, err := program.Run()
package tui
