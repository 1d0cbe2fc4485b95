package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TimerConfig describes the session the timer runs.
type TimerConfig struct {
	TaskName string
	Goal     string
	Ritual   []string
	Duration time.Duration
	// RefreshRate controls how often the display redraws. Zero means
	// 250ms.
	RefreshRate time.Duration
}

// tickMsg drives the countdown.
type tickMsg time.Time

// TimerApp is the bubbletea model for a running focus session.
type TimerApp struct {
	cfg      TimerConfig
	bar      progress.Model
	elapsed  time.Duration
	lastTick time.Time
	paused   bool
	quitting bool
	done     bool
	width    int

	// Styles
	titleStyle  lipgloss.Style
	goalStyle   lipgloss.Style
	ritualStyle lipgloss.Style
	clockStyle  lipgloss.Style
	pausedStyle lipgloss.Style
	doneStyle   lipgloss.Style
	helpStyle   lipgloss.Style
}

// NewTimerApp creates a timer model for the given session.
func NewTimerApp(cfg TimerConfig) *TimerApp {
	if cfg.RefreshRate <= 0 {
		cfg.RefreshRate = 250 * time.Millisecond
	}

	return &TimerApp{
		cfg: cfg,
		bar: progress.New(progress.WithDefaultGradient()),

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),

		goalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		ritualStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		clockStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),

		pausedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),

		doneStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("34")),

		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// Done reports whether the session ran to completion.
func (a *TimerApp) Done() bool {
	return a.done
}

// Elapsed returns how much session time has passed.
func (a *TimerApp) Elapsed() time.Duration {
	return a.elapsed
}

// Init implements tea.Model.
func (a *TimerApp) Init() tea.Cmd {
	a.lastTick = time.Now()
	return a.tick()
}

func (a *TimerApp) tick() tea.Cmd {
	return tea.Tick(a.cfg.RefreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (a *TimerApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		case "p", " ":
			if !a.done {
				a.paused = !a.paused
				a.lastTick = time.Now()
			}
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.bar.Width = msg.Width - 8
		if a.bar.Width > 60 {
			a.bar.Width = 60
		}

	case tickMsg:
		now := time.Time(msg)
		if !a.paused && !a.done {
			a.elapsed += now.Sub(a.lastTick)
			if a.elapsed >= a.cfg.Duration {
				a.elapsed = a.cfg.Duration
				a.done = true
			}
		}
		a.lastTick = now
		if a.done {
			return a, nil
		}
		return a, a.tick()
	}

	return a, nil
}

// View implements tea.Model.
func (a *TimerApp) View() string {
	if a.quitting {
		return "Session ended early.\n"
	}

	var b strings.Builder

	b.WriteString(a.titleStyle.Render(a.cfg.TaskName))
	b.WriteString("\n")
	if a.cfg.Goal != "" {
		b.WriteString(a.goalStyle.Render("Goal: " + a.cfg.Goal))
		b.WriteString("\n")
	}
	if len(a.cfg.Ritual) > 0 {
		for _, step := range a.cfg.Ritual {
			b.WriteString(a.ritualStyle.Render("  • " + step))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	remaining := a.cfg.Duration - a.elapsed
	if remaining < 0 {
		remaining = 0
	}
	b.WriteString(a.clockStyle.Render(formatClock(remaining)))
	b.WriteString("\n\n")

	pct := float64(0)
	if a.cfg.Duration > 0 {
		pct = float64(a.elapsed) / float64(a.cfg.Duration)
	}
	b.WriteString(a.bar.ViewAs(pct))
	b.WriteString("\n\n")

	switch {
	case a.done:
		b.WriteString(a.doneStyle.Render("Session complete! Press q to exit."))
	case a.paused:
		b.WriteString(a.pausedStyle.Render("PAUSED"))
		b.WriteString(a.helpStyle.Render("  p resume · q quit"))
	default:
		b.WriteString(a.helpStyle.Render("p pause · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// formatClock renders a duration as mm:ss, or h:mm:ss past an hour.
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// NewTimerProgram creates a bubbletea program for a focus session.
func NewTimerProgram(cfg TimerConfig) (*tea.Program, *TimerApp) {
	app := NewTimerApp(cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}
