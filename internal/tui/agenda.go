package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// Agenda renders day-by-day occurrence listings for the today and
// upcoming commands.
type Agenda struct {
	dateStyle      lipgloss.Style
	timeStyle      lipgloss.Style
	nameStyle      lipgloss.Style
	pendingStyle   lipgloss.Style
	completedStyle lipgloss.Style
	pausedStyle    lipgloss.Style
	emptyStyle     lipgloss.Style
}

// NewAgenda creates an agenda renderer.
func NewAgenda() *Agenda {
	return &Agenda{
		dateStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),

		timeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		nameStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		pendingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),

		completedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")),

		pausedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),

		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}

// RenderDay renders one date's occurrences, sorted as given.
func (a *Agenda) RenderDay(date models.Date, occurrences []schedule.Occurrence) string {
	var b strings.Builder

	header := fmt.Sprintf("%s (%s)", date.String(), date.Weekday().String())
	b.WriteString(a.dateStyle.Render(header))
	b.WriteString("\n")

	if len(occurrences) == 0 {
		b.WriteString(a.emptyStyle.Render("  nothing scheduled"))
		b.WriteString("\n")
		return b.String()
	}

	for _, occ := range occurrences {
		start := date.At(occ.Def.AnchorStart)
		end := start.Add(occ.Def.Duration())
		window := fmt.Sprintf("%s–%s", start.Format("15:04"), end.Format("15:04"))

		b.WriteString("  ")
		b.WriteString(a.timeStyle.Render(window))
		b.WriteString("  ")
		b.WriteString(a.statusBadge(occ.Status))
		b.WriteString("  ")
		b.WriteString(a.nameStyle.Render(occ.Def.Name))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderRange renders a multi-day window from a schedule snapshot.
func (a *Agenda) RenderRange(from, to models.Date, snapshot []schedule.Occurrence) string {
	byDate := make(map[models.Date][]schedule.Occurrence)
	for _, occ := range snapshot {
		byDate[occ.Date] = append(byDate[occ.Date], occ)
	}

	var b strings.Builder
	for d := from; !d.After(to); d = d.AddDays(1) {
		b.WriteString(a.RenderDay(d, byDate[d]))
		if !d.Equal(to) {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a *Agenda) statusBadge(status models.Status) string {
	switch status {
	case models.StatusCompleted:
		return a.completedStyle.Render("✓")
	case models.StatusPaused:
		return a.pausedStyle.Render("⏸")
	default:
		return a.pendingStyle.Render("○")
	}
}
